// Package views provides the default templ components for the typo blog
// application. Components are plain Go functions that build escaped HTML
// into a buffer; the application never imports this package directly —
// the composition root injects Funcs() into typo.New.
package views

import (
	"bytes"
	"html"

	"github.com/a-h/templ"

	typo "github.com/sofiasanjose/typo-blog-app"
)

// bgStyles lists the background styles offered on the customize page.
// The stored value is open-ended; these are just the built-in choices.
var bgStyles = []string{"gradient1", "gradient2", "gradient3", "plain"}

// Funcs returns the default template set for typo.New.
func Funcs() typo.ViewFuncs {
	return typo.ViewFuncs{
		Landing:     Landing,
		Feed:        Feed,
		Create:      Create,
		Edit:        Edit,
		Customize:   Customize,
		NotFound:    NotFound,
		ServerError: ServerError,
	}
}

func Landing(cfg typo.SiteConfig) templ.Component {
	return page(cfg, "Welcome", "", func(buf *bytes.Buffer) {
		buf.WriteString("<h1>" + html.EscapeString(cfg.Name) + "</h1>")
		if cfg.Description != "" {
			buf.WriteString("<p>" + html.EscapeString(cfg.Description) + "</p>")
		}
		buf.WriteString(`<p><a href="/feed">Read the feed</a></p>`)
	})
}

func Feed(cfg typo.SiteConfig, posts []typo.Post, custom typo.Customization, flash string) templ.Component {
	return page(cfg, "Feed", bgClass(custom.BgStyle), func(buf *bytes.Buffer) {
		if custom.HeaderImage != "" {
			buf.WriteString(`<header class="site-header"><img src="/static/` +
				html.EscapeString(custom.HeaderImage) + `" alt=""/></header>`)
		}
		writeFlash(buf, flash)
		if len(posts) == 0 {
			buf.WriteString(`<p>No posts yet. <a href="/posts/new">Write the first one.</a></p>`)
			return
		}
		for _, p := range posts {
			writePostCard(buf, p)
		}
	})
}

func writePostCard(buf *bytes.Buffer, p typo.Post) {
	id := html.EscapeString(p.ID)
	buf.WriteString(`<article class="post-card" id="post-` + id + `">`)
	buf.WriteString("<h2>" + html.EscapeString(p.Title) + "</h2>")
	buf.WriteString(`<p class="post-meta">` + html.EscapeString(displayDate(p.CreatedAt)) + `</p>`)
	if p.ImagePath != "" {
		buf.WriteString(`<img src="/static/` + html.EscapeString(p.ImagePath) + `" alt=""/>`)
	}
	buf.WriteString(renderContent(p.Content))
	buf.WriteString(`<form method="post" action="/posts/` + id + `/delete">`)
	buf.WriteString(`<a href="/posts/` + id + `/edit">Edit</a> `)
	buf.WriteString(`<button class="danger" type="submit">Delete</button>`)
	buf.WriteString(`</form></article>`)
}

func Create(cfg typo.SiteConfig) templ.Component {
	return page(cfg, "New post", "", func(buf *bytes.Buffer) {
		buf.WriteString("<h1>New post</h1>")
		buf.WriteString(`<form method="post" action="/posts/create" enctype="multipart/form-data">`)
		writePostFields(buf, typo.Post{})
		buf.WriteString(`<button type="submit">Publish</button></form>`)
	})
}

func Edit(cfg typo.SiteConfig, post typo.Post) templ.Component {
	return page(cfg, "Edit post", "", func(buf *bytes.Buffer) {
		buf.WriteString("<h1>Edit post</h1>")
		buf.WriteString(`<form method="post" action="/posts/` + html.EscapeString(post.ID) +
			`/update" enctype="multipart/form-data">`)
		writePostFields(buf, post)
		if post.ImagePath != "" {
			buf.WriteString(`<p class="post-meta">Current image: ` + html.EscapeString(post.ImagePath) + `</p>`)
		}
		buf.WriteString(`<button type="submit">Save</button></form>`)
	})
}

func writePostFields(buf *bytes.Buffer, post typo.Post) {
	buf.WriteString(`<label for="title">Title</label>`)
	buf.WriteString(`<input type="text" id="title" name="title" value="` + html.EscapeString(post.Title) + `" required/>`)
	buf.WriteString(`<label for="content">Content</label>`)
	buf.WriteString(`<textarea id="content" name="content" required>` + html.EscapeString(post.Content) + `</textarea>`)
	buf.WriteString(`<label for="image">Image</label>`)
	buf.WriteString(`<input type="file" id="image" name="image" accept=".png,.jpg,.jpeg,.gif"/>`)
}

func Customize(cfg typo.SiteConfig, custom typo.Customization, flash string) templ.Component {
	return page(cfg, "Customize", bgClass(custom.BgStyle), func(buf *bytes.Buffer) {
		buf.WriteString("<h1>Customize</h1>")
		writeFlash(buf, flash)
		buf.WriteString(`<form method="post" action="/customize" enctype="multipart/form-data">`)
		buf.WriteString(`<label for="header_image">Header image</label>`)
		if custom.HeaderImage != "" {
			buf.WriteString(`<p class="site-header"><img src="/static/` +
				html.EscapeString(custom.HeaderImage) + `" alt=""/></p>`)
		}
		buf.WriteString(`<input type="file" id="header_image" name="header_image" accept=".png,.jpg,.jpeg,.gif"/>`)
		buf.WriteString(`<label for="bg_style">Background style</label>`)
		buf.WriteString(`<select id="bg_style" name="bg_style">`)
		for _, style := range bgStyles {
			buf.WriteString(`<option value="` + style + `"`)
			if style == custom.BgStyle {
				buf.WriteString(` selected`)
			}
			buf.WriteString(`>` + style + `</option>`)
		}
		buf.WriteString(`</select>`)
		buf.WriteString(`<button type="submit">Save</button></form>`)
	})
}

func NotFound() templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>` +
			`<title>Not found</title><link rel="stylesheet" href="/static/style.css"/></head>` +
			`<body><main><h1>404</h1><p>That page does not exist. <a href="/feed">Back to the feed.</a></p>` +
			`</main></body></html>`)
	})
}

func ServerError() templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>` +
			`<title>Server error</title><link rel="stylesheet" href="/static/style.css"/></head>` +
			`<body><main><h1>500</h1><p>Something went wrong. <a href="/feed">Back to the feed.</a></p>` +
			`</main></body></html>`)
	})
}
