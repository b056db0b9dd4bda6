package typo

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a typo site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "Typo")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:8000")
	Description string `yaml:"description"` // Site description for meta tags and the RSS feed

	Addr              string `yaml:"addr"`               // Listen address (default ":8000")
	DataDir           string `yaml:"data_dir"`           // Directory for JSON data files (default "data")
	PostsFile         string `yaml:"posts_file"`         // Posts JSON path (default DataDir/posts.json)
	CustomizationFile string `yaml:"customization_file"` // Customization JSON path (default DataDir/customization.json)
	StaticDir         string `yaml:"static_dir"`         // Static assets root; uploads live under it (default "static")

	SessionSecret string `yaml:"session_secret"` // Flash-message cookie secret; random when unset
	CookieSecure  bool   `yaml:"cookie_secure"`  // Set true for HTTPS

	MaxUploadSize string `yaml:"max_upload_size"` // Request body limit (default "16M")
	MaxImageWidth int    `yaml:"max_image_width"` // Downscale uploads wider than this; 0 stores bytes untouched
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Typo"
	}
	if c.URL == "" {
		c.URL = "http://localhost:8000"
	}
	if c.Addr == "" {
		c.Addr = ":8000"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.PostsFile == "" {
		c.PostsFile = filepath.Join(c.DataDir, "posts.json")
	}
	if c.CustomizationFile == "" {
		c.CustomizationFile = filepath.Join(c.DataDir, "customization.json")
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "16M"
	}
	if c.SessionSecret == "" {
		// Flash cookies only; an ephemeral secret just invalidates
		// pending flashes on restart.
		buf := make([]byte, 32)
		_, _ = rand.Read(buf)
		c.SessionSecret = hex.EncodeToString(buf)
	}
}

// LoadConfig reads a YAML site configuration file.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
