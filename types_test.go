package typo

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"
)

func TestPostRoundTrip(t *testing.T) {
	orig := NewPost("Hello", "Some **content** here", "uploads/pic.jpg")

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var got Post
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got != orig {
		t.Errorf("round trip = %+v, want %+v", got, orig)
	}
}

func TestPostRoundTripWithoutImage(t *testing.T) {
	orig := NewPost("Hello", "body", "")

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var got Post
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got != orig {
		t.Errorf("round trip = %+v, want %+v", got, orig)
	}
}

func TestPostMarshalShape(t *testing.T) {
	p := Post{ID: "1.000001", Title: "T", Content: "C", CreatedAt: "2025-01-02T15:04:05.000000"}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"id":"1.000001","title":"T","content":"C","created_at":"2025-01-02T15:04:05.000000","image_path":null}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}

func TestPostDecodeMissingRequiredField(t *testing.T) {
	var p Post
	err := json.Unmarshal([]byte(`{"content":"C"}`), &p)
	de, ok := err.(*DecodeError)
	if !ok {
		t.Fatalf("err = %v, want *DecodeError", err)
	}
	if de.Field != "title" {
		t.Errorf("Field = %q, want %q", de.Field, "title")
	}

	err = json.Unmarshal([]byte(`{"title":"T"}`), &p)
	if de, ok := err.(*DecodeError); !ok || de.Field != "content" {
		t.Errorf("err = %v, want DecodeError for content", err)
	}
}

func TestPostDecodeGeneratesDefaults(t *testing.T) {
	var p Post
	if err := json.Unmarshal([]byte(`{"title":"T","content":"C"}`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if p.ID == "" {
		t.Error("ID should be generated when absent")
	}
	if _, err := time.Parse(timeLayout, p.CreatedAt); err != nil {
		t.Errorf("CreatedAt %q does not parse: %v", p.CreatedAt, err)
	}
	if p.ImagePath != "" {
		t.Errorf("ImagePath = %q, want empty", p.ImagePath)
	}
}

func TestFormatID(t *testing.T) {
	id := FormatID(time.Unix(1759852301, 123456000))
	if id != "1759852301.123456" {
		t.Errorf("FormatID = %q, want %q", id, "1759852301.123456")
	}
	if !regexp.MustCompile(`^\d+\.\d{6}$`).MatchString(FormatID(time.Now())) {
		t.Errorf("FormatID(now) = %q, want seconds.microseconds", FormatID(time.Now()))
	}
}

func TestCustomizationRoundTrip(t *testing.T) {
	orig := Customization{HeaderImage: "uploads/header-x.png", BgStyle: "gradient2"}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var got Customization
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got != orig {
		t.Errorf("round trip = %+v, want %+v", got, orig)
	}
}

func TestCustomizationDecodeDefaults(t *testing.T) {
	var c Customization
	if err := json.Unmarshal([]byte(`{}`), &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if c.BgStyle != "gradient1" {
		t.Errorf("BgStyle = %q, want %q", c.BgStyle, "gradient1")
	}
	if c.HeaderImage != "" {
		t.Errorf("HeaderImage = %q, want empty", c.HeaderImage)
	}
}

func TestCustomizationMarshalNullHeader(t *testing.T) {
	data, err := json.Marshal(DefaultCustomization())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"header_image":null,"bg_style":"gradient1"}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}
