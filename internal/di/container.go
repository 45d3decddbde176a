// Package di wires the site module: storage, services, routing, rendering
// and the HTTP surfaces, driven by runtimeconfig.Config. Without a
// database the container degrades to in-memory repositories so the module
// stays usable in tests and local preview.
package di

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	sitecontent "github.com/freightwave/go-sitecms/content"
	siteheaders "github.com/freightwave/go-sitecms/headers"
	internalcontent "github.com/freightwave/go-sitecms/internal/content"
	internalheaders "github.com/freightwave/go-sitecms/internal/headers"
	sitehttp "github.com/freightwave/go-sitecms/internal/http"
	"github.com/freightwave/go-sitecms/internal/identity"
	internallocations "github.com/freightwave/go-sitecms/internal/locations"
	"github.com/freightwave/go-sitecms/internal/logging"
	"github.com/freightwave/go-sitecms/internal/logging/gologger"
	internalpages "github.com/freightwave/go-sitecms/internal/pages"
	"github.com/freightwave/go-sitecms/internal/render"
	"github.com/freightwave/go-sitecms/internal/router"
	"github.com/freightwave/go-sitecms/internal/runtimeconfig"
	internalseo "github.com/freightwave/go-sitecms/internal/seo"
	"github.com/freightwave/go-sitecms/internal/staticpages"
	sitelocations "github.com/freightwave/go-sitecms/locations"
	sitepages "github.com/freightwave/go-sitecms/pages"
	"github.com/freightwave/go-sitecms/pkg/interfaces"
	siteseo "github.com/freightwave/go-sitecms/seo"
	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

// Container holds every wired dependency of the site module.
type Container struct {
	Config runtimeconfig.Config

	logProvider interfaces.LoggerProvider

	bunDB  *bun.DB
	ownsDB bool

	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	pageRepo     internalpages.Repository
	contentRepo  internalcontent.Repository
	seoRepo      internalseo.Repository
	headerRepo   internalheaders.Repository
	locationRepo internallocations.Repository

	pageSvc     sitepages.Service
	contentSvc  sitecontent.Service
	seoSvc      siteseo.Service
	headerSvc   siteheaders.Service
	locationSvc sitelocations.Service

	sessions *identity.SessionManager
	resolver *router.Resolver
	urls     *router.URLBuilder
	renderer *render.Renderer
	static   *staticpages.Library
	staticFS fs.FS

	admin  *sitehttp.AdminAPI
	public *sitehttp.PublicSite
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an externally managed database handle. The container
// will not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) { c.bunDB = db }
}

// WithCache overrides the repository cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logging backend.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) { c.logProvider = provider }
}

// WithStaticFS overrides the static page source filesystem; without it
// the configured content directory is used.
func WithStaticFS(fsys fs.FS) Option {
	return func(c *Container) { c.staticFS = fsys }
}

// NewContainer builds the container from configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureDatabase(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	if err := c.configureServices(); err != nil {
		c.closeOwnedDB()
		return nil, err
	}
	if err := c.configureAuth(); err != nil {
		c.closeOwnedDB()
		return nil, err
	}
	if err := c.configureSite(); err != nil {
		c.closeOwnedDB()
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.logProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger || strings.EqualFold(c.Config.Logging.Provider, "noop") {
		c.logProvider = noopProvider{}
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return err
	}
	c.logProvider = provider
	return nil
}

func (c *Container) configureDatabase() error {
	if c.bunDB != nil {
		return nil
	}

	driver := strings.ToLower(strings.TrimSpace(c.Config.Database.Driver))
	dsn := strings.TrimSpace(c.Config.Database.DSN)

	switch driver {
	case "", "memory":
		return nil
	case "sqlite":
		if dsn == "" {
			// no DSN means pure in-memory repositories
			return nil
		}
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return fmt.Errorf("di: open sqlite: %w", err)
		}
		c.bunDB = bun.NewDB(sqlDB, sqlitedialect.New())
		c.bunDB.SetMaxOpenConns(1)
		c.ownsDB = true
	case "postgres":
		sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		c.bunDB = bun.NewDB(sqlDB, pgdialect.New())
		c.ownsDB = true
	default:
		return runtimeconfig.ErrDatabaseDriverUnknown
	}

	if c.Config.Database.Debug {
		c.bunDB.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Features.Cache {
		return
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		if service, err := repocache.NewCacheService(cfg); err == nil {
			c.cacheService = service
		}
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB != nil {
		c.pageRepo = internalpages.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.contentRepo = internalcontent.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.seoRepo = internalseo.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.headerRepo = internalheaders.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.locationRepo = internallocations.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return
	}

	// in-memory degradation: path cascades fan out to the section and seo
	// stores, and bundle saves reach back into the page store
	contentRepo := internalcontent.NewMemoryRepository()
	seoRepo := internalseo.NewMemoryRepository()
	pageRepo := internalpages.NewMemoryRepository(contentRepo, seoRepo)
	contentRepo.AttachPageStore(pageRepo)

	c.pageRepo = pageRepo
	c.contentRepo = contentRepo
	c.seoRepo = seoRepo
	c.headerRepo = internalheaders.NewMemoryRepository()
	c.locationRepo = internallocations.NewMemoryRepository()
}

func (c *Container) configureServices() error {
	c.pageSvc = internalpages.NewService(c.pageRepo,
		internalpages.WithLogger(logging.PagesLogger(c.logProvider)))
	c.contentSvc = internalcontent.NewService(c.contentRepo,
		internalcontent.WithLogger(logging.ContentLogger(c.logProvider)))

	seoOpts := []internalseo.ServiceOption{
		internalseo.WithLogger(logging.SEOLogger(c.logProvider)),
	}
	if c.Config.Content.LegacySEOSections {
		seoOpts = append(seoOpts, internalseo.WithLegacySource(
			internalcontent.NewLegacySEOSource(c.contentRepo, nil)))
	}
	c.seoSvc = internalseo.NewService(c.seoRepo, seoOpts...)

	headerSvc, err := internalheaders.NewService(c.headerRepo,
		internalheaders.WithLogger(logging.HeadersLogger(c.logProvider)))
	if err != nil {
		return err
	}
	c.headerSvc = headerSvc

	c.locationSvc = internallocations.NewService(c.locationRepo,
		internallocations.WithLogger(logging.LocationsLogger(c.logProvider)))
	return nil
}

func (c *Container) configureAuth() error {
	if !c.Config.Features.Auth {
		return nil
	}
	sessions, err := identity.NewSessionManager(
		c.Config.Auth.AdminEmail,
		c.Config.Auth.AdminPasswordHash,
		c.Config.Auth.SessionSecret,
		c.Config.Auth.SessionTTL,
	)
	if err != nil {
		return err
	}
	c.sessions = sessions
	return nil
}

func (c *Container) configureSite() error {
	renderer, err := render.NewRenderer(render.WithLogger(logging.RenderLogger(c.logProvider)))
	if err != nil {
		return err
	}
	c.renderer = renderer

	if c.Config.Features.StaticPages {
		fsys := c.staticFS
		if fsys == nil {
			fsys = os.DirFS(c.Config.StaticPages.ContentDir)
		}
		library := staticpages.New(staticpages.WithLogger(logging.StaticPagesLogger(c.logProvider)))
		if err := library.Load(fsys, c.Config.StaticPages.Pattern); err != nil {
			return err
		}
		c.static = library
	}

	resolverOpts := []router.ResolverOption{
		router.WithLogger(logging.RouterLogger(c.logProvider)),
	}
	if c.static != nil {
		resolverOpts = append(resolverOpts, router.WithStaticLookup(c.static.RouteLookup))
	}
	c.resolver = router.NewResolver(c.pageSvc, resolverOpts...)

	if c.Config.Features.CanonicalURLs {
		manager := c.routeManager()
		c.urls = router.NewURLBuilder(router.URLBuilderOptions{
			Manager:      manager,
			DefaultGroup: c.Config.Routes.DefaultGroup,
			PageRoute:    c.Config.Routes.PageRoute,
			PathParam:    c.Config.Routes.PathParam,
		})
	}

	adminOpts := []sitehttp.AdminOption{
		sitehttp.WithBasePath(c.Config.Server.AdminBasePath),
		sitehttp.WithPageService(c.pageSvc),
		sitehttp.WithContentService(c.contentSvc),
		sitehttp.WithSEOService(c.seoSvc),
		sitehttp.WithHeaderService(c.headerSvc),
		sitehttp.WithLocationService(c.locationSvc),
		sitehttp.WithLogger(logging.HTTPLogger(c.logProvider)),
	}
	if c.sessions != nil {
		adminOpts = append(adminOpts, sitehttp.WithSessions(c.sessions))
	}
	if c.resolver != nil {
		adminOpts = append(adminOpts, sitehttp.WithRouteRefresher(c.resolver.Refresh))
	}
	c.admin = sitehttp.NewAdminAPI(adminOpts...)

	publicOpts := []sitehttp.PublicOption{
		sitehttp.WithResolver(c.resolver),
		sitehttp.WithPublicContent(c.contentSvc),
		sitehttp.WithPublicSEO(c.seoSvc),
		sitehttp.WithPublicHeaders(c.headerSvc),
		sitehttp.WithPublicLocations(c.locationSvc),
		sitehttp.WithRenderer(c.renderer),
		sitehttp.WithSiteDefaults(sitehttp.SiteDefaults{
			Name:        c.Config.Site.Name,
			Title:       c.Config.Site.DefaultTitle,
			Description: c.Config.Site.DefaultDescription,
			Keywords:    c.Config.Site.DefaultKeywords,
			Image:       c.Config.Site.DefaultImage,
		}),
		sitehttp.WithPublicLogger(logging.HTTPLogger(c.logProvider)),
	}
	if c.urls != nil {
		publicOpts = append(publicOpts, sitehttp.WithURLBuilder(c.urls))
	}
	c.public = sitehttp.NewPublicSite(publicOpts...)
	return nil
}

func (c *Container) routeManager() *urlkit.RouteManager {
	if c.Config.Routes.RouteConfig != nil {
		return urlkit.NewRouteManager(c.Config.Routes.RouteConfig)
	}

	group := c.Config.Routes.DefaultGroup
	if group == "" {
		group = "site"
	}
	route := c.Config.Routes.PageRoute
	if route == "" {
		route = "page"
	}
	param := c.Config.Routes.PathParam
	if param == "" {
		param = "path"
	}
	return urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    group,
				BaseURL: c.Config.Site.BaseURL,
				Paths:   map[string]string{route: "/:" + param},
			},
		},
	})
}

// BuildRoutes populates the route table from stored pages. Call it after
// migrations and seeding, and again whenever pages change out of band.
func (c *Container) BuildRoutes(ctx context.Context) error {
	return c.resolver.Build(ctx)
}

// Handler assembles the full HTTP surface: admin API plus public site.
func (c *Container) Handler() http.Handler {
	mux := http.NewServeMux()
	c.admin.Register(mux)
	c.public.Register(mux)
	return mux
}

// Pages exposes the page service.
func (c *Container) Pages() sitepages.Service { return c.pageSvc }

// Content exposes the content section service.
func (c *Container) Content() sitecontent.Service { return c.contentSvc }

// SEO exposes the seo record service.
func (c *Container) SEO() siteseo.Service { return c.seoSvc }

// Headers exposes the header variant service.
func (c *Container) Headers() siteheaders.Service { return c.headerSvc }

// Locations exposes the office location service.
func (c *Container) Locations() sitelocations.Service { return c.locationSvc }

// Resolver exposes the route resolver.
func (c *Container) Resolver() *router.Resolver { return c.resolver }

// Sessions exposes the session manager, nil when auth is disabled.
func (c *Container) Sessions() *identity.SessionManager { return c.sessions }

// DB exposes the database handle, nil in memory mode.
func (c *Container) DB() *bun.DB { return c.bunDB }

// Close releases resources the container owns.
func (c *Container) Close() error {
	c.closeOwnedDB()
	return nil
}

func (c *Container) closeOwnedDB() {
	if c.ownsDB && c.bunDB != nil {
		_ = c.bunDB.Close()
		c.bunDB = nil
		c.ownsDB = false
	}
}

// noopProvider satisfies interfaces.LoggerProvider when logging is off.
type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }
