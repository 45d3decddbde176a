package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sitecontent "github.com/freightwave/go-sitecms/content"
	siteheaders "github.com/freightwave/go-sitecms/headers"
	internalcontent "github.com/freightwave/go-sitecms/internal/content"
	internalheaders "github.com/freightwave/go-sitecms/internal/headers"
	sitehttp "github.com/freightwave/go-sitecms/internal/http"
	"github.com/freightwave/go-sitecms/internal/identity"
	internallocations "github.com/freightwave/go-sitecms/internal/locations"
	internalpages "github.com/freightwave/go-sitecms/internal/pages"
	"github.com/freightwave/go-sitecms/internal/router"
	internalseo "github.com/freightwave/go-sitecms/internal/seo"
	sitepages "github.com/freightwave/go-sitecms/pages"
	siteseo "github.com/freightwave/go-sitecms/seo"
	"github.com/google/uuid"
)

type adminFixture struct {
	mux      *http.ServeMux
	token    string
	pages    sitepages.Service
	resolver *router.Resolver
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	contentRepo := internalcontent.NewMemoryRepository()
	seoRepo := internalseo.NewMemoryRepository()
	pageRepo := internalpages.NewMemoryRepository(contentRepo, seoRepo)
	contentRepo.AttachPageStore(pageRepo)

	clock := func() time.Time { return time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC) }

	pageService := internalpages.NewService(pageRepo, internalpages.WithClock(clock))
	contentService := internalcontent.NewService(contentRepo, internalcontent.WithClock(clock))
	seoService := internalseo.NewService(seoRepo, internalseo.WithClock(clock))
	headerService, err := internalheaders.NewService(internalheaders.NewMemoryRepository(), internalheaders.WithClock(clock))
	if err != nil {
		t.Fatalf("header service: %v", err)
	}
	locationService := internallocations.NewService(internallocations.NewMemoryRepository(), internallocations.WithClock(clock))

	hash, err := identity.HashPassword("harbor-master")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	sessions, err := identity.NewSessionManager("ops@freightwave.test", hash, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}

	resolver := router.NewResolver(pageService)

	api := sitehttp.NewAdminAPI(
		sitehttp.WithPageService(pageService),
		sitehttp.WithContentService(contentService),
		sitehttp.WithSEOService(seoService),
		sitehttp.WithHeaderService(headerService),
		sitehttp.WithLocationService(locationService),
		sitehttp.WithSessions(sessions),
		sitehttp.WithRouteRefresher(resolver.Refresh),
	)

	mux := http.NewServeMux()
	api.Register(mux)

	fixture := &adminFixture{mux: mux, pages: pageService, resolver: resolver}
	fixture.token = fixture.login(t, "ops@freightwave.test", "harbor-master")
	return fixture
}

func (f *adminFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/api/login", bytes.NewReader(body))
	f.mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.Token
}

func (f *adminFixture) do(t *testing.T, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+f.token)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func TestAdminRequiresBearerToken(t *testing.T) {
	f := newAdminFixture(t)

	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/api/pages", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/pages", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bogus token, got %d", rec.Code)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	f := newAdminFixture(t)

	body, _ := json.Marshal(map[string]string{"email": "ops@freightwave.test", "password": "wrong"})
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/api/login", bytes.NewReader(body)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestPageLifecycleOverHTTP(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do(t, http.MethodPost, "/admin/api/pages", map[string]string{
		"path":  "/Our-Services/",
		"title": "Our Services",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	var created sitepages.Page
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.Path != "/our-services" || created.ComponentKey != sitepages.ComponentDynamic {
		t.Fatalf("unexpected page %+v", created)
	}

	rec = f.do(t, http.MethodPost, "/admin/api/pages", map[string]string{
		"path":  "/our-services",
		"title": "Duplicate",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate path, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodPost, fmt.Sprintf("/admin/api/pages/%s/duplicate", created.ID), map[string]string{
		"new_path": "/our-services-eu",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("duplicate: %d %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodDelete, fmt.Sprintf("/admin/api/pages/%s", created.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %d %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, fmt.Sprintf("/admin/api/pages/%s", created.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestPageCreateRejectsUnknownComponentKey(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do(t, http.MethodPost, "/admin/api/pages", map[string]string{
		"path":          "/legacy",
		"title":         "Legacy",
		"component_key": "carousel",
	})
	if rec.Code != http.StatusBadRequest && rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected validation rejection, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestBundleSaveOverHTTP(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do(t, http.MethodPost, "/admin/api/sections/bundle", map[string]any{
		"page_path":  "/about",
		"page_title": "About",
		"sections": []map[string]any{
			{"section_key": "hero", "content": map[string]any{"title": "About us"}},
			{"section_key": "main", "content": map[string]any{"markdown": "Since 1998."}},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("bundle save: %d %s", rec.Code, rec.Body.String())
	}
	var result sitecontent.BundleResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode bundle result: %v", err)
	}
	if len(result.Sections) != 2 {
		t.Fatalf("expected two sections, got %d", len(result.Sections))
	}

	// page row was created alongside the sections
	page, err := f.pages.GetByPath(context.Background(), "/about")
	if err != nil {
		t.Fatalf("page after bundle: %v", err)
	}
	if page.Title != "About" {
		t.Fatalf("unexpected page title %q", page.Title)
	}

	// duplicate keys are rejected before any write
	rec = f.do(t, http.MethodPost, "/admin/api/sections/bundle", map[string]any{
		"page_path":  "/about",
		"page_title": "About",
		"sections": []map[string]any{
			{"section_key": "hero", "content": map[string]any{}},
			{"section_key": "Hero", "content": map[string]any{}},
		},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate keys, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestSEOUpsertOverHTTP(t *testing.T) {
	f := newAdminFixture(t)

	payload := map[string]any{
		"path":        "/about",
		"title":       "About FreightWave",
		"description": "Global forwarding since 1998",
	}
	rec := f.do(t, http.MethodPut, "/admin/api/seo", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert: %d %s", rec.Code, rec.Body.String())
	}
	var first siteseo.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode record: %v", err)
	}

	payload["description"] = "Freight forwarding worldwide"
	rec = f.do(t, http.MethodPut, "/admin/api/seo", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("second upsert: %d %s", rec.Code, rec.Body.String())
	}
	var second siteseo.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected upsert to converge on one row, got %s then %s", first.ID, second.ID)
	}

	rec = f.do(t, http.MethodGet, "/admin/api/seo?path=/about", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get by path: %d %s", rec.Code, rec.Body.String())
	}
}

func TestHeaderActivationOverHTTP(t *testing.T) {
	f := newAdminFixture(t)

	create := func(name string) siteheaders.Config {
		rec := f.do(t, http.MethodPost, "/admin/api/headers", map[string]any{
			"name": name,
			"content": map[string]any{
				"navLinks": []map[string]string{{"label": "Home", "href": "/"}},
			},
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create header %s: %d %s", name, rec.Code, rec.Body.String())
		}
		var record siteheaders.Config
		if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
			t.Fatalf("decode header: %v", err)
		}
		return record
	}

	first := create("default")
	second := create("campaign")

	rec := f.do(t, http.MethodGet, "/admin/api/headers/active", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 before activation, got %d", rec.Code)
	}

	rec = f.do(t, http.MethodPost, fmt.Sprintf("/admin/api/headers/%s/activate", second.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("activate: %d %s", rec.Code, rec.Body.String())
	}
	rec = f.do(t, http.MethodPost, fmt.Sprintf("/admin/api/headers/%s/activate", first.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("activate first: %d %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, "/admin/api/headers/active", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("active: %d %s", rec.Code, rec.Body.String())
	}
	var active siteheaders.Config
	if err := json.Unmarshal(rec.Body.Bytes(), &active); err != nil {
		t.Fatalf("decode active: %v", err)
	}
	if active.ID != first.ID {
		t.Fatalf("expected %s active, got %s", first.ID, active.ID)
	}
}

func TestHeaderCreateRejectsInvalidContent(t *testing.T) {
	f := newAdminFixture(t)

	rec := f.do(t, http.MethodPost, "/admin/api/headers", map[string]any{
		"name": "broken",
		"content": map[string]any{
			"navLinks": []map[string]string{{"label": "", "href": "/"}},
		},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestLocationReorderOverHTTP(t *testing.T) {
	f := newAdminFixture(t)

	ids := make([]uuid.UUID, 0, 2)
	for _, city := range []string{"Rotterdam", "Hamburg"} {
		rec := f.do(t, http.MethodPost, "/admin/api/locations", map[string]any{
			"country_code": "nl",
			"country_name": "Netherlands",
			"city_name":    city,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: %d %s", city, rec.Code, rec.Body.String())
		}
		var record struct {
			ID uuid.UUID `json:"id"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
			t.Fatalf("decode location: %v", err)
		}
		ids = append(ids, record.ID)
	}

	rec := f.do(t, http.MethodPost, "/admin/api/locations/reorder", map[string]any{
		"ids": []uuid.UUID{ids[1], ids[0]},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("reorder: %d %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodPost, "/admin/api/locations/reorder", map[string]any{
		"ids": []uuid.UUID{ids[0]},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on incomplete reorder, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestAdminWritesRefreshRouteTable(t *testing.T) {
	f := newAdminFixture(t)
	if err := f.resolver.Build(context.Background()); err != nil {
		t.Fatalf("build routes: %v", err)
	}

	rec := f.do(t, http.MethodPost, "/admin/api/pages", map[string]string{
		"path":  "/careers",
		"title": "Careers",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create page: %d %s", rec.Code, rec.Body.String())
	}
	var created sitepages.Page
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if route := f.resolver.Match("/careers"); route.Kind != router.RouteKindPage {
		t.Fatalf("expected page route right after admin create, got kind %d", route.Kind)
	}

	// bundle saves create their backing page row and must surface the
	// same way
	rec = f.do(t, http.MethodPost, "/admin/api/sections/bundle", map[string]any{
		"page_path":  "/news",
		"page_title": "News",
		"sections": []map[string]any{
			{"section_key": "main", "content": map[string]any{"body": "Latest departures"}},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("bundle save: %d %s", rec.Code, rec.Body.String())
	}
	if route := f.resolver.Match("/news"); route.Kind != router.RouteKindPage {
		t.Fatalf("expected page route right after bundle save, got kind %d", route.Kind)
	}

	rec = f.do(t, http.MethodDelete, fmt.Sprintf("/admin/api/pages/%s", created.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete page: %d %s", rec.Code, rec.Body.String())
	}
	if route := f.resolver.Match("/careers"); route.Kind != router.RouteKindNotFound {
		t.Fatalf("expected deleted page to drop out of the table, got kind %d", route.Kind)
	}
}
