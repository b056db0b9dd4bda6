package typo

import (
	"encoding/json"
	"fmt"
	"time"
)

// timeLayout is the ISO-8601 layout used for created_at timestamps.
// Microsecond precision keeps the value stable through a storage round-trip.
const timeLayout = "2006-01-02T15:04:05.000000"

// DefaultBgStyle is applied when a customization record omits bg_style.
const DefaultBgStyle = "gradient1"

// DecodeError reports a post record that lacks a required field.
type DecodeError struct {
	Field string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("post record missing required field %q", e.Field)
}

// Post is a single blog entry. ImagePath is relative to the static root
// ("uploads/<name>"); empty means the post has no image.
type Post struct {
	ID        string
	Title     string
	Content   string
	CreatedAt string
	ImagePath string
}

// postWire is the JSON shape of a Post. Pointer fields distinguish an
// absent key from an empty value on decode.
type postWire struct {
	ID        *string `json:"id"`
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	CreatedAt *string `json:"created_at"`
	ImagePath *string `json:"image_path"`
}

// NewPost builds a post with a freshly generated id and creation timestamp.
func NewPost(title, content, imagePath string) Post {
	now := time.Now()
	return Post{
		ID:        FormatID(now),
		Title:     title,
		Content:   content,
		CreatedAt: now.Format(timeLayout),
		ImagePath: imagePath,
	}
}

// FormatID renders t as a Unix timestamp string with a microsecond
// fraction, e.g. "1759852301.123456". Ids are assigned once at creation
// and never reassigned.
func FormatID(t time.Time) string {
	return fmt.Sprintf("%d.%06d", t.Unix(), t.Nanosecond()/1000)
}

func (p Post) MarshalJSON() ([]byte, error) {
	w := postWire{
		ID:        &p.ID,
		Title:     &p.Title,
		Content:   &p.Content,
		CreatedAt: &p.CreatedAt,
	}
	if p.ImagePath != "" {
		w.ImagePath = &p.ImagePath
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a post record. Missing title or content is a
// DecodeError; a missing id or created_at is filled in with generated
// values so older files that omit them keep loading.
func (p *Post) UnmarshalJSON(data []byte) error {
	var w postWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Title == nil {
		return &DecodeError{Field: "title"}
	}
	if w.Content == nil {
		return &DecodeError{Field: "content"}
	}
	now := time.Now()
	p.Title = *w.Title
	p.Content = *w.Content
	if w.ID != nil {
		p.ID = *w.ID
	} else {
		p.ID = FormatID(now)
	}
	if w.CreatedAt != nil {
		p.CreatedAt = *w.CreatedAt
	} else {
		p.CreatedAt = now.Format(timeLayout)
	}
	if w.ImagePath != nil {
		p.ImagePath = *w.ImagePath
	} else {
		p.ImagePath = ""
	}
	return nil
}

// Customization holds the site-wide appearance record. It is a singleton:
// loaded once at startup and overwritten on every save, never deleted.
type Customization struct {
	HeaderImage string
	BgStyle     string
}

type customizationWire struct {
	HeaderImage *string `json:"header_image"`
	BgStyle     string  `json:"bg_style"`
}

// DefaultCustomization returns the record used when no customization file
// exists or the stored one cannot be decoded.
func DefaultCustomization() Customization {
	return Customization{BgStyle: DefaultBgStyle}
}

func (c Customization) MarshalJSON() ([]byte, error) {
	w := customizationWire{BgStyle: c.BgStyle}
	if c.HeaderImage != "" {
		w.HeaderImage = &c.HeaderImage
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a customization record, substituting the default
// background style when bg_style is absent.
func (c *Customization) UnmarshalJSON(data []byte) error {
	w := customizationWire{BgStyle: DefaultBgStyle}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c.BgStyle = w.BgStyle
	c.HeaderImage = ""
	if w.HeaderImage != nil {
		c.HeaderImage = *w.HeaderImage
	}
	return nil
}
