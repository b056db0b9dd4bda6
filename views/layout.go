package views

import (
	"bytes"
	"context"
	"html"
	"io"
	"time"

	"github.com/a-h/templ"

	typo "github.com/sofiasanjose/typo-blog-app"
)

// component wraps a buffer-building body into a templ.Component.
func component(build func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		build(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// page writes the common document shell around body.
func page(cfg typo.SiteConfig, title, bodyClass string, body func(buf *bytes.Buffer)) templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
		buf.WriteString(`<meta charset="utf-8"/>`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		buf.WriteString("<title>" + html.EscapeString(title) + " · " + html.EscapeString(cfg.Name) + "</title>")
		if cfg.Description != "" {
			buf.WriteString(`<meta name="description" content="` + html.EscapeString(cfg.Description) + `"/>`)
		}
		buf.WriteString(`<link rel="stylesheet" href="/static/style.css"/>`)
		buf.WriteString("</head><body")
		if bodyClass != "" {
			buf.WriteString(` class="` + html.EscapeString(bodyClass) + `"`)
		}
		buf.WriteString("><main>")
		writeNav(buf)
		body(buf)
		buf.WriteString("</main></body></html>")
	})
}

func writeNav(buf *bytes.Buffer) {
	buf.WriteString(`<nav><a href="/">Home</a><a href="/feed">Feed</a>` +
		`<a href="/posts/new">New post</a><a href="/customize">Customize</a></nav>`)
}

func writeFlash(buf *bytes.Buffer, flash string) {
	if flash == "" {
		return
	}
	buf.WriteString(`<p class="flash">` + html.EscapeString(flash) + `</p>`)
}

// bgClass maps a stored background style to a body CSS class. Values with
// characters outside [a-z0-9_-] fall back to the default so a stored
// style can never inject markup.
func bgClass(style string) string {
	if style == "" {
		return "bg-" + typo.DefaultBgStyle
	}
	for _, r := range style {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return "bg-" + typo.DefaultBgStyle
		}
	}
	return "bg-" + style
}

// displayDate renders a stored created_at timestamp for humans, falling
// back to the raw value if it does not parse.
func displayDate(createdAt string) string {
	t, err := time.Parse("2006-01-02T15:04:05.000000", createdAt)
	if err != nil {
		return createdAt
	}
	return t.Format("January 2, 2006")
}
