// Command server runs the site: public pages plus the embedded admin
// API, configured through environment variables.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	sitecms "github.com/freightwave/go-sitecms"
	"github.com/freightwave/go-sitecms/internal/identity"
)

func main() {
	cfg, err := configFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	module, err := sitecms.New(cfg)
	if err != nil {
		log.Fatalf("module: %v", err)
	}
	defer module.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := module.Migrate(ctx); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := module.BuildRoutes(ctx); err != nil {
		log.Fatalf("build routes: %v", err)
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      module.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}

func configFromEnv() (sitecms.Config, error) {
	cfg := sitecms.DefaultConfig()

	setString(&cfg.Site.Name, "SITE_NAME")
	setString(&cfg.Site.BaseURL, "SITE_BASE_URL")
	setString(&cfg.Site.DefaultTitle, "SITE_DEFAULT_TITLE")
	setString(&cfg.Site.DefaultDescription, "SITE_DEFAULT_DESCRIPTION")
	setString(&cfg.Site.DefaultKeywords, "SITE_DEFAULT_KEYWORDS")
	setString(&cfg.Site.DefaultImage, "SITE_DEFAULT_IMAGE")

	setString(&cfg.Server.Addr, "SERVER_ADDR")
	setString(&cfg.Server.AdminBasePath, "ADMIN_BASE_PATH")

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.DSN, "DB_DSN")
	setBool(&cfg.Database.Debug, "DB_DEBUG")

	setString(&cfg.Auth.AdminEmail, "ADMIN_EMAIL")
	setString(&cfg.Auth.AdminPasswordHash, "ADMIN_PASSWORD_HASH")
	setString(&cfg.Auth.SessionSecret, "SESSION_SECRET")
	setDuration(&cfg.Auth.SessionTTL, "SESSION_TTL")

	// convenience for local runs: hash a plaintext password on boot
	if cfg.Auth.AdminPasswordHash == "" {
		if password := os.Getenv("ADMIN_PASSWORD"); password != "" {
			hash, err := identity.HashPassword(password)
			if err != nil {
				return cfg, err
			}
			cfg.Auth.AdminPasswordHash = hash
		}
	}
	if cfg.Auth.AdminEmail == "" && cfg.Auth.SessionSecret == "" {
		cfg.Features.Auth = false
		cfg.Auth.Enabled = false
	}

	setBool(&cfg.Features.StaticPages, "STATIC_PAGES_ENABLED")
	cfg.StaticPages.Enabled = cfg.Features.StaticPages
	setString(&cfg.StaticPages.ContentDir, "STATIC_PAGES_DIR")
	setString(&cfg.StaticPages.Pattern, "STATIC_PAGES_PATTERN")

	setBool(&cfg.Features.Cache, "CACHE_ENABLED")
	cfg.Cache.Enabled = cfg.Features.Cache
	setDuration(&cfg.Cache.DefaultTTL, "CACHE_TTL")

	if cfg.Site.BaseURL != "" {
		cfg.Features.CanonicalURLs = true
	}

	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")

	return cfg, nil
}

func setString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func setBool(target *bool, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func setDuration(target *time.Duration, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			*target = parsed
		}
	}
}
