// Package http exposes the module over net/http: a JSON admin API behind
// bearer sessions and the public site renderer.
package http

import (
	"context"
	"net/http"
	"strings"

	sitecontent "github.com/freightwave/go-sitecms/content"
	siteheaders "github.com/freightwave/go-sitecms/headers"
	"github.com/freightwave/go-sitecms/internal/logging"
	sitelocations "github.com/freightwave/go-sitecms/locations"
	sitepages "github.com/freightwave/go-sitecms/pages"
	"github.com/freightwave/go-sitecms/pkg/interfaces"
	siteseo "github.com/freightwave/go-sitecms/seo"
)

// AdminAPI registers the JSON endpoints backing the embedded admin panel.
type AdminAPI struct {
	basePath      string
	pages         sitepages.Service
	content       sitecontent.Service
	seo           siteseo.Service
	headers       siteheaders.Service
	locations     sitelocations.Service
	sessions      sessionManager
	refreshRoutes func(context.Context) error
	logger        interfaces.Logger
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: "/admin/api",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/admin/api").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithPageService wires the page service.
func WithPageService(service sitepages.Service) AdminOption {
	return func(api *AdminAPI) { api.pages = service }
}

// WithContentService wires the content section service.
func WithContentService(service sitecontent.Service) AdminOption {
	return func(api *AdminAPI) { api.content = service }
}

// WithSEOService wires the seo record service.
func WithSEOService(service siteseo.Service) AdminOption {
	return func(api *AdminAPI) { api.seo = service }
}

// WithHeaderService wires the header variant service.
func WithHeaderService(service siteheaders.Service) AdminOption {
	return func(api *AdminAPI) { api.headers = service }
}

// WithLocationService wires the office location service.
func WithLocationService(service sitelocations.Service) AdminOption {
	return func(api *AdminAPI) { api.locations = service }
}

// WithSessions wires credential checks and bearer verification. Without
// it every admin endpoint is reachable unauthenticated.
func WithSessions(sessions sessionManager) AdminOption {
	return func(api *AdminAPI) { api.sessions = sessions }
}

// WithRouteRefresher registers a callback run after every write that can
// change the public route table, so new and renamed pages are servable
// without a restart.
func WithRouteRefresher(refresh func(context.Context) error) AdminOption {
	return func(api *AdminAPI) { api.refreshRoutes = refresh }
}

// WithLogger attaches a structured logger.
func WithLogger(logger interfaces.Logger) AdminOption {
	return func(api *AdminAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// refreshRouteTable rebuilds the public route table after a successful
// write. The write itself already landed, so a rebuild failure is logged
// and the response stays a success; the stale table heals on the next
// write or restart.
func (api *AdminAPI) refreshRouteTable(ctx context.Context) {
	if api.refreshRoutes == nil {
		return
	}
	if err := api.refreshRoutes(ctx); err != nil {
		api.logger.Error("route table refresh failed", "error", err)
	}
}

// Register mounts every admin route on mux.
func (api *AdminAPI) Register(mux *http.ServeMux) {
	if api == nil || mux == nil {
		return
	}
	api.registerAuthRoutes(mux, api.basePath)
	api.registerPageRoutes(mux, api.basePath)
	api.registerSectionRoutes(mux, api.basePath)
	api.registerSEORoutes(mux, api.basePath)
	api.registerHeaderRoutes(mux, api.basePath)
	api.registerLocationRoutes(mux, api.basePath)
}
