// Command typo runs the blog application. Configuration comes from an
// optional YAML file, overridden by environment variables (a .env file is
// honored when present).
package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	typo "github.com/sofiasanjose/typo-blog-app"
	"github.com/sofiasanjose/typo-blog-app/views"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to YAML site config")
	flag.Parse()

	var cfg typo.SiteConfig
	if *configPath != "" {
		loaded, err := typo.LoadConfig(*configPath)
		if err != nil {
			slog.Error("loading config failed", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	cfg.Name = typo.EnvOr("SITE_NAME", cfg.Name)
	cfg.URL = strings.TrimSuffix(typo.EnvOr("SITE_URL", cfg.URL), "/")
	cfg.Description = typo.EnvOr("SITE_DESCRIPTION", cfg.Description)
	cfg.Addr = typo.EnvOr("ADDR", cfg.Addr)
	cfg.DataDir = typo.EnvOr("DATA_DIR", cfg.DataDir)
	cfg.StaticDir = typo.EnvOr("STATIC_DIR", cfg.StaticDir)
	cfg.SessionSecret = typo.EnvOr("SESSION_SECRET", cfg.SessionSecret)
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		cfg.CookieSecure = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("UPLOAD_MAX_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Error("invalid UPLOAD_MAX_WIDTH", "value", v)
			os.Exit(1)
		}
		cfg.MaxImageWidth = n
	}

	app := typo.New(cfg, views.Funcs())
	slog.Info("starting typo", "addr", app.Config.Addr, "data_dir", app.Config.DataDir)
	if err := app.Start(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
