// Package sitecms is a single-site CMS for a marketing website: pages
// mapped to renderable components, per-page content sections, SEO
// overrides, header variants and office locations, served over net/http
// with an embedded JSON admin API.
package sitecms

import (
	"context"
	"net/http"

	sitecontent "github.com/freightwave/go-sitecms/content"
	siteheaders "github.com/freightwave/go-sitecms/headers"
	"github.com/freightwave/go-sitecms/internal/di"
	"github.com/freightwave/go-sitecms/internal/identity"
	"github.com/freightwave/go-sitecms/internal/router"
	sitelocations "github.com/freightwave/go-sitecms/locations"
	sitepages "github.com/freightwave/go-sitecms/pages"
	siteseo "github.com/freightwave/go-sitecms/seo"
)

// PageService exports the page service contract.
type PageService = sitepages.Service

// ContentService exports the content section service contract.
type ContentService = sitecontent.Service

// SEOService exports the seo record service contract.
type SEOService = siteseo.Service

// HeaderService exports the header variant service contract.
type HeaderService = siteheaders.Service

// LocationService exports the office location service contract.
type LocationService = sitelocations.Service

// Module is the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module from configuration with optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced
// integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	return m.container.Pages()
}

// Content returns the configured content section service.
func (m *Module) Content() ContentService {
	return m.container.Content()
}

// SEO returns the configured seo record service.
func (m *Module) SEO() SEOService {
	return m.container.SEO()
}

// Headers returns the configured header variant service.
func (m *Module) Headers() HeaderService {
	return m.container.Headers()
}

// Locations returns the configured office location service.
func (m *Module) Locations() LocationService {
	return m.container.Locations()
}

// Sessions returns the admin session manager, nil when auth is disabled.
func (m *Module) Sessions() *identity.SessionManager {
	return m.container.Sessions()
}

// Resolver returns the route resolver.
func (m *Module) Resolver() *router.Resolver {
	return m.container.Resolver()
}

// Handler returns the full HTTP surface: public site plus admin API.
func (m *Module) Handler() http.Handler {
	return m.container.Handler()
}

// Migrate applies the embedded schema migrations. It is a no-op in
// memory mode.
func (m *Module) Migrate(ctx context.Context) error {
	return migrate(ctx, m.container.DB())
}

// BuildRoutes populates the route table from stored pages. Call it after
// Migrate and any seeding.
func (m *Module) BuildRoutes(ctx context.Context) error {
	return m.container.BuildRoutes(ctx)
}

// Close releases resources owned by the module.
func (m *Module) Close() error {
	return m.container.Close()
}
