// Package typo is a small blog application built with Go, Echo, and templ.
// It serves a JSON API and server-rendered pages over a flat-file JSON
// store, with image uploads kept on local disk.
//
// Users provide their own templ components via the ViewFuncs struct;
// typo handles the handler logic, middleware, persistence, and metrics.
package typo

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds user-provided templ components that the application
// calls when rendering pages. This is the inversion-of-control mechanism
// that lets users own and customize all templates.
type ViewFuncs struct {
	Landing     func(cfg SiteConfig) templ.Component
	Feed        func(cfg SiteConfig, posts []Post, custom Customization, flash string) templ.Component
	Create      func(cfg SiteConfig) templ.Component
	Edit        func(cfg SiteConfig, post Post) templ.Component
	Customize   func(cfg SiteConfig, custom Customization, flash string) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the central typo application. It wires together the store,
// uploader, metrics, middleware, and user-provided templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Uploads *Uploader
	Metrics *Metrics
	Views   ViewFuncs

	customRoutes []func(*App)
	startedAt    time.Time
}

// New creates a new typo App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		startedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the store, middleware, and routes, then starts the server.
func (a *App) Start() error {
	if err := a.init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// init wires the store, uploader, metrics, middleware, and routes. Split
// from Start so tests can drive the Echo instance without a listener.
func (a *App) init() error {
	store, err := NewStore(a.Config.PostsFile, a.Config.CustomizationFile)
	if err != nil {
		return fmt.Errorf("typo: init store: %w", err)
	}
	a.Store = store
	a.Uploads = &Uploader{StaticDir: a.Config.StaticDir, MaxWidth: a.Config.MaxImageWidth}
	a.Metrics = NewMetrics()

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded default stylesheet; a file of the same name in the user's
	// static dir is served instead by the route below.
	if _, err := os.Stat(a.Config.StaticDir + "/style.css"); err != nil {
		embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
		handler := http.FileServer(http.FS(embeddedFS))
		e.GET("/static/style.css", echo.WrapHandler(http.StripPrefix("/static/", handler)))
	}
	e.Static("/static", a.Config.StaticDir)

	e.GET("/", a.handleLanding)
	e.GET("/feed", a.handleFeed)
	e.GET("/feed.xml", a.handleFeedXML)
	e.GET("/health", a.handleHealth)
	e.GET("/metrics", a.Metrics.Handler())

	e.GET("/customize", a.handleCustomizePage)
	e.POST("/customize", a.handleCustomizeSave)

	// JSON API
	e.GET("/api/posts", a.handleListPosts)
	e.POST("/api/posts", a.handleCreatePostAPI)
	e.GET("/api/posts/:id", a.handleGetPost)
	e.PUT("/api/posts/:id", a.handleUpdatePostAPI)
	e.DELETE("/api/posts/:id", a.handleDeletePostAPI)

	// Form-driven routes
	e.GET("/posts/new", a.handleCreatePage)
	e.POST("/posts/create", a.handleCreatePostForm)
	e.GET("/posts/:id/edit", a.handleEditPage)
	e.POST("/posts/:id/update", a.handleUpdatePostForm)
	e.POST("/posts/:id/delete", a.handleDeletePostForm)
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("typo: required environment variable %s is not set", key)
	}
	return v
}
