package runtimeconfig

import (
	"errors"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrDatabaseDriverUnknown indicates an unsupported storage driver.
var ErrDatabaseDriverUnknown = errors.New("sitecms config: database driver must be sqlite or postgres")

// ErrDatabaseDSNRequired keeps postgres configuration honest.
var ErrDatabaseDSNRequired = errors.New("sitecms config: database dsn is required for the postgres driver")

// ErrSessionSecretRequired blocks startup without signing material for sessions.
var ErrSessionSecretRequired = errors.New("sitecms config: auth session secret is required when auth is enabled")

// ErrAdminCredentialRequired blocks startup without an operator credential.
var ErrAdminCredentialRequired = errors.New("sitecms config: admin email and password hash are required when auth is enabled")

// ErrSessionTTLInvalid rejects non-positive session lifetimes.
var ErrSessionTTLInvalid = errors.New("sitecms config: auth session ttl must be positive")

// ErrSiteBaseURLRequired is raised when canonical URL building is enabled without a base URL.
var ErrSiteBaseURLRequired = errors.New("sitecms config: site base url is required when canonical urls are enabled")

// ErrStaticPagesDirRequired keeps the file-backed page source configured.
var ErrStaticPagesDirRequired = errors.New("sitecms config: static pages content directory is required when static pages are enabled")

var ErrLoggingProviderUnknown = errors.New("sitecms config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("sitecms config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sitecms config: logging format is invalid")
var ErrCacheTTLInvalid = errors.New("sitecms config: cache ttl must be positive when cache is enabled")

// Config aggregates runtime options for the site module. Fields use simple
// types so host applications can populate them from any source.
type Config struct {
	Site        SiteConfig
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Content     ContentConfig
	StaticPages StaticPagesConfig
	Cache       CacheConfig
	Routes      RoutesConfig
	Logging     LoggingConfig
	Features    Features
}

// SiteConfig carries site-wide identity and SEO fallbacks.
type SiteConfig struct {
	Name               string
	BaseURL            string
	DefaultTitle       string
	DefaultDescription string
	DefaultKeywords    string
	DefaultImage       string
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string
	AdminBasePath   string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig selects the storage backend. An empty DSN with the sqlite
// driver runs in-memory; no configuration at all degrades to pure in-memory
// repositories instead of failing startup.
type DatabaseConfig struct {
	Driver string
	DSN    string
	Debug  bool
}

// AuthConfig configures the admin session boundary.
type AuthConfig struct {
	Enabled           bool
	AdminEmail        string
	AdminPasswordHash string
	SessionSecret     string
	SessionTTL        time.Duration
}

// ContentConfig captures behaviour of the content section module.
type ContentConfig struct {
	// LegacySEOSections keeps reading reserved "seo" sections as a
	// fallback when no seo record exists for a path.
	LegacySEOSections bool
}

// StaticPagesConfig points at the markdown-backed page source.
type StaticPagesConfig struct {
	Enabled    bool
	ContentDir string
	Pattern    string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// RoutesConfig wires go-urlkit for canonical URL resolution.
type RoutesConfig struct {
	RouteConfig  *urlkit.Config
	DefaultGroup string
	PageRoute    string
	PathParam    string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Auth          bool
	Cache         bool
	StaticPages   bool
	CanonicalURLs bool
	Logger        bool
}

// DefaultConfig returns opinionated defaults for a single-site deployment.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Name: "sitecms",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			AdminBasePath:   "/admin/api",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
		},
		Auth: AuthConfig{
			Enabled:    true,
			SessionTTL: 12 * time.Hour,
		},
		Content: ContentConfig{
			LegacySEOSections: true,
		},
		StaticPages: StaticPagesConfig{
			Pattern: "*.md",
		},
		Cache: CacheConfig{
			DefaultTTL: 5 * time.Minute,
		},
		Routes: RoutesConfig{
			DefaultGroup: "site",
			PageRoute:    "page",
			PathParam:    "path",
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
		Features: Features{
			Auth:   true,
			Logger: true,
		},
	}
}

// Validate reports the first configuration inconsistency found.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Database.Driver)) {
	case "", "sqlite", "memory":
	case "postgres":
		if strings.TrimSpace(c.Database.DSN) == "" {
			return ErrDatabaseDSNRequired
		}
	default:
		return ErrDatabaseDriverUnknown
	}

	if c.Features.Auth {
		if strings.TrimSpace(c.Auth.SessionSecret) == "" {
			return ErrSessionSecretRequired
		}
		if strings.TrimSpace(c.Auth.AdminEmail) == "" || strings.TrimSpace(c.Auth.AdminPasswordHash) == "" {
			return ErrAdminCredentialRequired
		}
		if c.Auth.SessionTTL <= 0 {
			return ErrSessionTTLInvalid
		}
	}

	if c.Features.CanonicalURLs && strings.TrimSpace(c.Site.BaseURL) == "" {
		return ErrSiteBaseURLRequired
	}

	if c.Features.StaticPages && strings.TrimSpace(c.StaticPages.ContentDir) == "" {
		return ErrStaticPagesDirRequired
	}

	if c.Features.Cache && c.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}

	if c.Features.Logger {
		switch strings.ToLower(strings.TrimSpace(c.Logging.Provider)) {
		case "", "gologger", "noop":
		default:
			return ErrLoggingProviderUnknown
		}
		switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
		case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
		default:
			return ErrLoggingLevelInvalid
		}
		switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
		case "", "json", "console", "pretty":
		default:
			return ErrLoggingFormatInvalid
		}
	}

	return nil
}
