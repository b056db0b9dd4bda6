package typo

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// postBody is the JSON request shape for API create and update. Pointer
// fields distinguish an absent key from an empty string.
type postBody struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (a *App) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":         "ok",
		"uptime_seconds": int(time.Since(a.startedAt).Seconds()),
	})
}

func (a *App) handleListPosts(c echo.Context) error {
	return c.JSON(http.StatusOK, a.Store.Posts())
}

func (a *App) handleGetPost(c echo.Context) error {
	post, err := a.Store.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Post not found"})
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleCreatePostAPI(c echo.Context) error {
	var body postBody
	if err := c.Bind(&body); err != nil || body.Title == nil || body.Content == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Title and content are required"})
	}
	post := NewPost(*body.Title, *body.Content, "")
	if err := a.Store.Insert(post, AtEnd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

func (a *App) handleUpdatePostAPI(c echo.Context) error {
	var body postBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Title and content are required"})
	}
	post, err := a.Store.Update(c.Param("id"), PostUpdate{Title: body.Title, Content: body.Content})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Post not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleDeletePostAPI(c echo.Context) error {
	if err := a.Store.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Post not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

// httpErrorHandler is the umbrella handler: router 404s render the
// not-found page, anything 5xx is counted and answered with a generic
// body so internals never leak. API paths get the structured JSON error;
// page routes get the error template.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Metrics.RecordError(c.Request().URL.Path)
		c.Logger().Errorf("server error: %v", err)
		if strings.HasPrefix(c.Request().URL.Path, "/api/") {
			_ = c.JSON(code, map[string]string{"error": "Internal server error"})
		} else {
			_ = RenderStatus(c, code, a.Views.ServerError())
		}
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
