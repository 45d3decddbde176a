package http

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sort"

	sitecontent "github.com/freightwave/go-sitecms/content"
	siteheaders "github.com/freightwave/go-sitecms/headers"
	"github.com/freightwave/go-sitecms/internal/logging"
	"github.com/freightwave/go-sitecms/internal/render"
	"github.com/freightwave/go-sitecms/internal/router"
	sitelocations "github.com/freightwave/go-sitecms/locations"
	sitepages "github.com/freightwave/go-sitecms/pages"
	"github.com/freightwave/go-sitecms/pkg/interfaces"
	siteseo "github.com/freightwave/go-sitecms/seo"
)

// SiteDefaults carries per-deployment SEO fallbacks applied before any
// stored override.
type SiteDefaults struct {
	Name        string
	Title       string
	Description string
	Keywords    string
	Image       string
}

// PublicSite serves every public path: resolve the route, load content,
// resolve head state, render one HTML document.
type PublicSite struct {
	resolver  *router.Resolver
	content   sitecontent.Service
	seo       siteseo.Service
	headers   siteheaders.Service
	locations sitelocations.Service
	renderer  *render.Renderer
	urls      *router.URLBuilder
	defaults  SiteDefaults
	logger    interfaces.Logger
}

// PublicOption mutates the PublicSite configuration.
type PublicOption func(*PublicSite)

// WithResolver wires the route resolver.
func WithResolver(resolver *router.Resolver) PublicOption {
	return func(site *PublicSite) { site.resolver = resolver }
}

// WithPublicContent wires the content section service.
func WithPublicContent(service sitecontent.Service) PublicOption {
	return func(site *PublicSite) { site.content = service }
}

// WithPublicSEO wires the seo resolution service.
func WithPublicSEO(service siteseo.Service) PublicOption {
	return func(site *PublicSite) { site.seo = service }
}

// WithPublicHeaders wires the header service for the active navigation.
func WithPublicHeaders(service siteheaders.Service) PublicOption {
	return func(site *PublicSite) { site.headers = service }
}

// WithPublicLocations wires the office location service.
func WithPublicLocations(service sitelocations.Service) PublicOption {
	return func(site *PublicSite) { site.locations = service }
}

// WithRenderer wires the HTML renderer.
func WithRenderer(renderer *render.Renderer) PublicOption {
	return func(site *PublicSite) { site.renderer = renderer }
}

// WithURLBuilder wires canonical URL construction for head tags and the
// sitemap.
func WithURLBuilder(urls *router.URLBuilder) PublicOption {
	return func(site *PublicSite) { site.urls = urls }
}

// WithSiteDefaults wires per-deployment SEO fallbacks.
func WithSiteDefaults(defaults SiteDefaults) PublicOption {
	return func(site *PublicSite) { site.defaults = defaults }
}

// WithPublicLogger attaches a structured logger.
func WithPublicLogger(logger interfaces.Logger) PublicOption {
	return func(site *PublicSite) {
		if logger != nil {
			site.logger = logger
		}
	}
}

// NewPublicSite constructs the public handler.
func NewPublicSite(opts ...PublicOption) *PublicSite {
	site := &PublicSite{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(site)
		}
	}
	return site
}

// Register mounts the public routes on mux. The catch-all pattern also
// covers the root path.
func (site *PublicSite) Register(mux *http.ServeMux) {
	if site == nil || mux == nil {
		return
	}
	mux.HandleFunc("GET /sitemap.xml", site.handleSitemap)
	mux.HandleFunc("GET /robots.txt", site.handleRobots)
	mux.HandleFunc("GET /{path...}", site.handlePage)
}

func (site *PublicSite) handlePage(w http.ResponseWriter, r *http.Request) {
	if site.resolver == nil || site.renderer == nil {
		http.Error(w, "site unavailable", http.StatusServiceUnavailable)
		return
	}

	route := site.resolver.Match(r.URL.Path)
	view, err := site.buildView(r, route)
	if err != nil {
		site.logger.Error("page build failed", "path", route.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := site.renderer.Render(&buf, view); err != nil {
		site.logger.Error("page render failed", "path", route.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if view.NotFound {
		w.WriteHeader(http.StatusNotFound)
	}
	_, _ = buf.WriteTo(w)
}

func (site *PublicSite) buildView(r *http.Request, route router.Route) (render.PageView, error) {
	ctx := r.Context()

	view := render.PageView{
		Title:        route.Title,
		Path:         route.Path,
		ComponentKey: route.ComponentKey,
		NotFound:     route.Kind == router.RouteKindNotFound,
	}
	if view.Title == "" {
		view.Title = site.defaults.Title
	}

	if site.headers != nil {
		active, err := site.headers.Active(ctx)
		switch {
		case err == nil:
			view.Header = &active.Content
		case errors.Is(err, siteheaders.ErrNoActiveHeader):
			// nothing configured yet, render without navigation
		default:
			return view, err
		}
	}

	meta, err := site.resolveHead(ctx, route)
	if err != nil {
		return view, err
	}
	if meta.Title != "" {
		view.Title = meta.Title
	}
	view.HeadHTML = site.renderer.HeadHTML(meta)

	switch route.Kind {
	case router.RouteKindStatic:
		view.StaticHTML = template.HTML(route.StaticHTML)
	case router.RouteKindPage:
		if site.content != nil {
			sections, err := site.content.ListByPath(ctx, route.Path)
			if err != nil {
				return view, err
			}
			_, renderable := sitecontent.Partition(sections)
			view.Sections = site.renderer.SectionViews(renderable)
		}
		if site.locations != nil && wantsLocations(route.ComponentKey) {
			list, err := site.locations.List(ctx)
			if err != nil {
				return view, err
			}
			view.Locations = list
		}
	}

	return view, nil
}

// resolveHead merges site-wide defaults with the stored override for the
// route. Not-found routes keep the plain defaults so crawlers see stable
// head state on 404s.
func (site *PublicSite) resolveHead(ctx context.Context, route router.Route) (siteseo.Metadata, error) {
	defaults := siteseo.Defaults{
		Title:       site.defaults.Title,
		Description: site.defaults.Description,
		Keywords:    site.defaults.Keywords,
		Image:       site.defaults.Image,
	}
	if route.Title != "" && site.defaults.Name != "" {
		defaults.Title = route.Title + " | " + site.defaults.Name
	} else if route.Title != "" {
		defaults.Title = route.Title
	}
	if site.urls != nil && route.Kind != router.RouteKindNotFound {
		if canonical, err := site.urls.PageURL(route.Path); err == nil {
			defaults.Canonical = canonical
			defaults.URL = canonical
		}
	}

	if site.seo == nil || route.Kind == router.RouteKindNotFound {
		return siteseo.Merge(defaults, nil), nil
	}
	return site.seo.Resolve(ctx, route.Path, defaults)
}

func wantsLocations(componentKey string) bool {
	switch componentKey {
	case sitepages.ComponentLocations, sitepages.ComponentContact:
		return true
	}
	return false
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type sitemapSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (site *PublicSite) handleSitemap(w http.ResponseWriter, r *http.Request) {
	if site.resolver == nil {
		http.Error(w, "site unavailable", http.StatusServiceUnavailable)
		return
	}

	paths := site.resolver.Paths()
	sort.Strings(paths)

	set := sitemapSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, path := range paths {
		loc := path
		if site.urls != nil {
			if built, err := site.urls.PageURL(path); err == nil {
				loc = built
			}
		}
		set.URLs = append(set.URLs, sitemapURL{Loc: loc})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = fmt.Fprint(w, xml.Header)
	_ = xml.NewEncoder(w).Encode(set)
}

func (site *PublicSite) handleRobots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	if site.urls != nil {
		if sitemap, err := site.urls.PageURL("/sitemap.xml"); err == nil {
			fmt.Fprintf(w, "Sitemap: %s\n", sitemap)
		}
	}
}
