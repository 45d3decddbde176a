package router

import (
	"context"
	"sync"

	"github.com/freightwave/go-sitecms/internal/logging"
	sitepages "github.com/freightwave/go-sitecms/pages"
	"github.com/freightwave/go-sitecms/pkg/interfaces"
)

// Resolver builds and serves the route table. The table is rebuilt on
// demand (admin saves call Refresh) and read lock-free-ish under an
// RWMutex on the request path.
type Resolver struct {
	pages  sitepages.Service
	static StaticLookup
	logger interfaces.Logger

	mu     sync.RWMutex
	routes map[string]Route
}

// ResolverOption configures the resolver.
type ResolverOption func(*Resolver)

// WithStaticLookup registers the static page library. Static routes take
// precedence over CMS pages on the same path.
func WithStaticLookup(lookup StaticLookup) ResolverOption {
	return func(r *Resolver) {
		r.static = lookup
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver constructs a resolver over the page service.
func NewResolver(pages sitepages.Service, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		pages:  pages,
		logger: logging.NoOp(),
		routes: make(map[string]Route),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build populates the route table from the page store. Pages carrying a
// component key outside the registry are logged and skipped; they never
// make a request fail.
func (r *Resolver) Build(ctx context.Context) error {
	records, err := r.pages.List(ctx)
	if err != nil {
		return err
	}

	routes := make(map[string]Route, len(records))
	for _, page := range records {
		if !sitepages.KnownComponentKey(page.ComponentKey) {
			r.logger.Warn("skipping page with unknown component key",
				"path", page.Path,
				"component_key", page.ComponentKey,
			)
			continue
		}
		routes[page.Path] = Route{
			Kind:         RouteKindPage,
			Path:         page.Path,
			ComponentKey: page.ComponentKey,
			Title:        page.Title,
			PageID:       page.ID,
		}
	}

	r.mu.Lock()
	r.routes = routes
	r.mu.Unlock()

	r.logger.Info("route table built", "routes", len(routes))
	return nil
}

// Refresh rebuilds the route table. Admin save workflows call it after a
// successful write.
func (r *Resolver) Refresh(ctx context.Context) error {
	return r.Build(ctx)
}

// Match resolves a request path. It never fails: static routes win, then
// CMS pages, then the not-found route carrying the requested path.
func (r *Resolver) Match(path string) Route {
	normalized, err := sitepages.NormalizePath(path)
	if err != nil {
		return Route{Kind: RouteKindNotFound, Path: path}
	}

	if r.static != nil {
		if route, ok := r.static(normalized); ok {
			return route
		}
	}

	r.mu.RLock()
	route, ok := r.routes[normalized]
	r.mu.RUnlock()
	if ok {
		return route
	}
	return Route{Kind: RouteKindNotFound, Path: normalized}
}

// Paths lists every registered route path, used by the sitemap handler.
func (r *Resolver) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.routes))
	for path := range r.routes {
		out = append(out, path)
	}
	return out
}
