package typo

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAllowedFile(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"photo.png", true},
		{"anim.gif", true},
		{"archive.zip", false},
		{"noextension", false},
		{"", false},
		{"script.php.png", true},
		{"image.png.exe", false},
	}
	for _, tc := range cases {
		if got := AllowedFile(tc.name); got != tc.want {
			t.Errorf("AllowedFile(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSecureFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"cat.png", "cat.png"},
		{"my photo.png", "my_photo.png"},
		{"../../etc/passwd", "passwd"},
		{`..\..\boot.ini`, "boot.ini"},
		{"..hidden.png", "hidden.png"},
		{"weird<>|:*.png", "weird.png"},
	}
	for _, tc := range cases {
		if got := SecureFilename(tc.in); got != tc.want {
			t.Errorf("SecureFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStoredName(t *testing.T) {
	at := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	if got := StoredName("cat.png", at, ""); got != "20250102-150405-cat.png" {
		t.Errorf("StoredName = %q", got)
	}
	if got := StoredName("banner.jpg", at, "header-"); got != "header-20250102-150405-banner.jpg" {
		t.Errorf("StoredName with prefix = %q", got)
	}
}

// fileHeader builds a *multipart.FileHeader the way echo would hand it to
// a handler, by round-tripping through a parsed multipart request.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write part failed: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("ParseMultipartForm failed: %v", err)
	}
	files := req.MultipartForm.File["image"]
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	return files[0]
}

func TestUploaderSave(t *testing.T) {
	dir := t.TempDir()
	u := &Uploader{StaticDir: dir}

	rel, ok, err := u.Save(fileHeader(t, "test.jpg", []byte("jpg bytes")), "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !ok {
		t.Fatal("Save ok = false, want true")
	}
	if !strings.HasPrefix(rel, "uploads/") || !strings.HasSuffix(rel, ".jpg") {
		t.Errorf("rel = %q, want uploads/...jpg", rel)
	}
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "jpg bytes" {
		t.Errorf("stored bytes = %q, want original bytes untouched", data)
	}
}

func TestUploaderSaveRejectsDisallowed(t *testing.T) {
	u := &Uploader{StaticDir: t.TempDir()}
	rel, ok, err := u.Save(fileHeader(t, "malware.exe", []byte("nope")), "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if ok || rel != "" {
		t.Errorf("Save = (%q, %v), want rejection without error", rel, ok)
	}
}

func TestUploaderSaveDownscales(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 100, 50))); err != nil {
		t.Fatalf("encode test image: %v", err)
	}

	dir := t.TempDir()
	u := &Uploader{StaticDir: dir, MaxWidth: 10}
	rel, ok, err := u.Save(fileHeader(t, "wide.png", buf.Bytes()), "")
	if err != nil || !ok {
		t.Fatalf("Save = (%q, %v, %v)", rel, ok, err)
	}

	f, err := os.Open(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("open stored file: %v", err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode stored file: %v", err)
	}
	if cfg.Width != 10 || cfg.Height != 5 {
		t.Errorf("stored size = %dx%d, want 10x5", cfg.Width, cfg.Height)
	}
}

func TestUploaderRemove(t *testing.T) {
	dir := t.TempDir()
	u := &Uploader{StaticDir: dir}

	rel, ok, err := u.Save(fileHeader(t, "gone.png", []byte("x")), "")
	if err != nil || !ok {
		t.Fatalf("Save = (%q, %v, %v)", rel, ok, err)
	}
	u.Remove(rel)
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); !os.IsNotExist(err) {
		t.Errorf("file still present after Remove: %v", err)
	}

	// Removing something that is already gone must not blow up.
	u.Remove(rel)
	u.Remove("")
}
