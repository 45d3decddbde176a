package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sitecontent "github.com/freightwave/go-sitecms/content"
	internalcontent "github.com/freightwave/go-sitecms/internal/content"
	internalheaders "github.com/freightwave/go-sitecms/internal/headers"
	sitehttp "github.com/freightwave/go-sitecms/internal/http"
	internallocations "github.com/freightwave/go-sitecms/internal/locations"
	internalpages "github.com/freightwave/go-sitecms/internal/pages"
	"github.com/freightwave/go-sitecms/internal/render"
	"github.com/freightwave/go-sitecms/internal/router"
	internalseo "github.com/freightwave/go-sitecms/internal/seo"
	sitepages "github.com/freightwave/go-sitecms/pages"
	siteseo "github.com/freightwave/go-sitecms/seo"
)

type publicFixture struct {
	mux      *http.ServeMux
	resolver *router.Resolver
	pages    sitepages.Service
	content  sitecontent.Service
	seo      siteseo.Service
}

func newPublicFixture(t *testing.T) *publicFixture {
	t.Helper()
	ctx := context.Background()

	contentRepo := internalcontent.NewMemoryRepository()
	seoRepo := internalseo.NewMemoryRepository()
	pageRepo := internalpages.NewMemoryRepository(contentRepo, seoRepo)
	contentRepo.AttachPageStore(pageRepo)

	clock := func() time.Time { return time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC) }

	pageService := internalpages.NewService(pageRepo, internalpages.WithClock(clock))
	contentService := internalcontent.NewService(contentRepo, internalcontent.WithClock(clock))
	seoService := internalseo.NewService(seoRepo,
		internalseo.WithClock(clock),
		internalseo.WithLegacySource(internalcontent.NewLegacySEOSource(contentRepo, nil)),
	)
	headerService, err := internalheaders.NewService(internalheaders.NewMemoryRepository(), internalheaders.WithClock(clock))
	if err != nil {
		t.Fatalf("header service: %v", err)
	}
	locationService := internallocations.NewService(internallocations.NewMemoryRepository(), internallocations.WithClock(clock))

	if _, err := pageService.Create(ctx, sitepages.CreatePageRequest{
		Path: "/", ComponentKey: sitepages.ComponentHome, Title: "Home",
	}); err != nil {
		t.Fatalf("seed home: %v", err)
	}
	if _, err := pageService.Create(ctx, sitepages.CreatePageRequest{
		Path: "/about", ComponentKey: sitepages.ComponentAbout, Title: "About",
	}); err != nil {
		t.Fatalf("seed about: %v", err)
	}
	if _, err := contentService.Create(ctx, sitecontent.CreateSectionRequest{
		PagePath:   "/about",
		SectionKey: "main",
		Content:    map[string]any{"markdown": "We move **freight**."},
	}); err != nil {
		t.Fatalf("seed section: %v", err)
	}

	resolver := router.NewResolver(pageService)
	if err := resolver.Build(ctx); err != nil {
		t.Fatalf("build routes: %v", err)
	}

	renderer, err := render.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	site := sitehttp.NewPublicSite(
		sitehttp.WithResolver(resolver),
		sitehttp.WithPublicContent(contentService),
		sitehttp.WithPublicSEO(seoService),
		sitehttp.WithPublicHeaders(headerService),
		sitehttp.WithPublicLocations(locationService),
		sitehttp.WithRenderer(renderer),
		sitehttp.WithSiteDefaults(sitehttp.SiteDefaults{
			Name:        "FreightWave",
			Title:       "FreightWave Logistics",
			Description: "Global freight forwarding",
		}),
	)

	mux := http.NewServeMux()
	site.Register(mux)

	return &publicFixture{
		mux:      mux,
		resolver: resolver,
		pages:    pageService,
		content:  contentService,
		seo:      seoService,
	}
}

func (f *publicFixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPublicRendersPage(t *testing.T) {
	f := newPublicFixture(t)

	rec := f.get(t, "/about")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<title>About | FreightWave</title>",
		`data-component="about"`,
		"<strong>freight</strong>",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("response missing %q:\n%s", want, body)
		}
	}
}

func TestPublicUnknownPathRenders404(t *testing.T) {
	f := newPublicFixture(t)

	rec := f.get(t, "/no-such-page")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Page not found") {
		t.Fatalf("expected not-found body, got:\n%s", rec.Body.String())
	}
}

func TestPublicAppliesSEOOverride(t *testing.T) {
	f := newPublicFixture(t)

	if _, err := f.seo.Upsert(context.Background(), siteseo.UpsertRecordRequest{
		Path:        "/about",
		Title:       "About FreightWave Logistics",
		Description: "Forwarding since 1998",
	}); err != nil {
		t.Fatalf("seed seo: %v", err)
	}

	rec := f.get(t, "/about")
	body := rec.Body.String()
	if !strings.Contains(body, "<title>About FreightWave Logistics</title>") {
		t.Fatalf("expected overridden title, got:\n%s", body)
	}
	if !strings.Contains(body, `content="Forwarding since 1998"`) {
		t.Fatalf("expected overridden description, got:\n%s", body)
	}
}

func TestPublicFallsBackToLegacySEOSection(t *testing.T) {
	f := newPublicFixture(t)

	if _, err := f.content.Create(context.Background(), sitecontent.CreateSectionRequest{
		PagePath:   "/about",
		SectionKey: sitecontent.SEOSectionKey,
		Content:    map[string]any{"title": "Legacy About Title"},
	}); err != nil {
		t.Fatalf("seed legacy seo section: %v", err)
	}

	rec := f.get(t, "/about")
	if !strings.Contains(rec.Body.String(), "<title>Legacy About Title</title>") {
		t.Fatalf("expected legacy seo title, got:\n%s", rec.Body.String())
	}
}

func TestPublicNewPageAppearsAfterRefresh(t *testing.T) {
	f := newPublicFixture(t)
	ctx := context.Background()

	if _, err := f.pages.Create(ctx, sitepages.CreatePageRequest{
		Path: "/careers", Title: "Careers",
	}); err != nil {
		t.Fatalf("create page: %v", err)
	}

	if rec := f.get(t, "/careers"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before refresh, got %d", rec.Code)
	}
	if err := f.resolver.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rec := f.get(t, "/careers"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after refresh, got %d", rec.Code)
	}
}

func TestSitemapListsRoutes(t *testing.T) {
	f := newPublicFixture(t)

	rec := f.get(t, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"<urlset", "<loc>/</loc>", "<loc>/about</loc>"} {
		if !strings.Contains(body, want) {
			t.Fatalf("sitemap missing %q:\n%s", want, body)
		}
	}
}

func TestRobotsTxt(t *testing.T) {
	f := newPublicFixture(t)

	rec := f.get(t, "/robots.txt")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User-agent: *") {
		t.Fatalf("unexpected robots body:\n%s", rec.Body.String())
	}
}
