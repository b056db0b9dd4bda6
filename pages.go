package typo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleLanding(c echo.Context) error {
	return Render(c, a.Views.Landing(a.Config))
}

func (a *App) handleFeed(c echo.Context) error {
	return Render(c, a.Views.Feed(a.Config, a.Store.Posts(), a.Store.Customization(), popFlash(c)))
}

func (a *App) handleCreatePage(c echo.Context) error {
	return Render(c, a.Views.Create(a.Config))
}

func (a *App) handleEditPage(c echo.Context) error {
	post, err := a.Store.Get(c.Param("id"))
	if err != nil {
		return c.String(http.StatusNotFound, "Post not found!")
	}
	return Render(c, a.Views.Edit(a.Config, post))
}

// handleCreatePostForm creates a post from form data with an optional
// image upload. Form-created posts are prepended so the newest shows
// first on the feed.
func (a *App) handleCreatePostForm(c echo.Context) error {
	title := c.FormValue("title")
	content := c.FormValue("content")

	imagePath := ""
	if fh, err := c.FormFile("image"); err == nil {
		rel, ok, err := a.Uploads.Save(fh, "")
		if err != nil {
			return err
		}
		if ok {
			imagePath = rel
		}
	}

	post := NewPost(title, content, imagePath)
	if err := a.Store.Insert(post, AtStart); err != nil {
		return err
	}
	flash(c, "Post published")
	return c.Redirect(http.StatusSeeOther, "/feed")
}

// handleUpdatePostForm updates title, content, and optionally replaces
// the image. Fields absent from the form keep their current values.
func (a *App) handleUpdatePostForm(c echo.Context) error {
	id := c.Param("id")
	post, err := a.Store.Get(id)
	if err != nil {
		return c.String(http.StatusNotFound, "Post not found!")
	}

	form, err := c.FormParams()
	if err != nil {
		return err
	}
	upd := PostUpdate{}
	if vals, present := form["title"]; present && len(vals) > 0 {
		upd.Title = &vals[0]
	}
	if vals, present := form["content"]; present && len(vals) > 0 {
		upd.Content = &vals[0]
	}

	if fh, ferr := c.FormFile("image"); ferr == nil && fh.Filename != "" && AllowedFile(fh.Filename) {
		// The old file goes first so its name can never shadow the
		// replacement; the new reference always wins.
		a.Uploads.Remove(post.ImagePath)
		rel, ok, err := a.Uploads.Save(fh, "")
		if err != nil {
			return err
		}
		if ok {
			upd.ImagePath = &rel
		}
	}

	if _, err := a.Store.Update(id, upd); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.String(http.StatusNotFound, "Post not found!")
		}
		return err
	}
	flash(c, "Post updated")
	return c.Redirect(http.StatusSeeOther, "/feed")
}

func (a *App) handleDeletePostForm(c echo.Context) error {
	if err := a.Store.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.String(http.StatusNotFound, "Post not found!")
		}
		return err
	}
	flash(c, "Post deleted")
	return c.Redirect(http.StatusSeeOther, "/feed")
}

func (a *App) handleCustomizePage(c echo.Context) error {
	return Render(c, a.Views.Customize(a.Config, a.Store.Customization(), popFlash(c)))
}

// handleCustomizeSave replaces the header image and background style.
// A disallowed header file type is silently ignored; the previous header
// file is deleted from disk once the replacement is saved.
func (a *App) handleCustomizeSave(c echo.Context) error {
	custom := a.Store.Customization()

	if fh, err := c.FormFile("header_image"); err == nil && fh.Filename != "" {
		rel, ok, err := a.Uploads.Save(fh, headerPrefix)
		if err != nil {
			return err
		}
		if ok {
			a.Uploads.Remove(custom.HeaderImage)
			custom.HeaderImage = rel
		}
	}

	if bg := c.FormValue("bg_style"); bg != "" {
		custom.BgStyle = bg
	}

	if err := a.Store.SetCustomization(custom); err != nil {
		return err
	}
	flash(c, "Customization saved")
	return c.Redirect(http.StatusSeeOther, "/customize")
}
