package typo

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"
)

const (
	uploadsSubdir = "uploads"

	// headerPrefix labels stored header-image uploads; post images carry
	// no prefix.
	headerPrefix = "header-"

	storedNameLayout = "20060102-150405"

	jpegQuality = 80
)

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

// AllowedFile reports whether filename names an accepted image type: it
// must contain a dot and its lowercased final extension must be one of
// png, jpg, jpeg, gif.
func AllowedFile(filename string) bool {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(filename[i+1:])]
	return ok
}

// SecureFilename strips directory components and characters unsafe in a
// stored filename, so a client-supplied name can never traverse out of
// the upload root.
func SecureFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	return strings.TrimLeft(b.String(), ".-")
}

// StoredName derives the on-disk name for an upload: an optional prefix,
// a second-resolution timestamp token, and the sanitized original name.
// The timestamp keeps two uploads of the same file distinguishable.
func StoredName(original string, t time.Time, prefix string) string {
	return prefix + t.Format(storedNameLayout) + "-" + SecureFilename(original)
}

// Uploader writes validated image uploads under StaticDir/uploads and
// refers to them by static-relative path ("uploads/<name>").
type Uploader struct {
	StaticDir string

	// MaxWidth, when positive, downscales images wider than this before
	// writing. Zero stores the upload bytes untouched.
	MaxWidth int
}

// Save validates, names, and writes an uploaded file. It returns the
// static-relative path to store on the record. ok is false when the
// filename is not an accepted image type; that case is not an error.
func (u *Uploader) Save(fh *multipart.FileHeader, prefix string) (rel string, ok bool, err error) {
	if fh == nil || fh.Filename == "" || !AllowedFile(fh.Filename) {
		return "", false, nil
	}
	src, err := fh.Open()
	if err != nil {
		return "", false, err
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return "", false, err
	}
	if u.MaxWidth > 0 {
		if scaled, serr := downscale(data, u.MaxWidth); serr == nil {
			data = scaled
		}
	}
	dir := filepath.Join(u.StaticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, err
	}
	name := StoredName(fh.Filename, time.Now(), prefix)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", false, err
	}
	return path.Join(uploadsSubdir, name), true, nil
}

// Remove deletes a previously stored file given its static-relative path.
// Failures are ignored: a stale file on disk is preferable to failing the
// mutation that replaced it.
func (u *Uploader) Remove(rel string) {
	if rel == "" {
		return
	}
	_ = os.Remove(filepath.Join(u.StaticDir, filepath.FromSlash(rel)))
}

// downscale re-encodes an image at most maxWidth wide, keeping its
// original format. Images already narrow enough pass through unchanged.
func downscale(data []byte, maxWidth int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxWidth {
		return data, nil
	}
	newH := h * maxWidth / w
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, dst)
	case "gif":
		err = gif.Encode(&buf, dst, nil)
	default:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
