package sitecms_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sitecms "github.com/freightwave/go-sitecms"
	sitecontent "github.com/freightwave/go-sitecms/content"
	siteheaders "github.com/freightwave/go-sitecms/headers"
	"github.com/freightwave/go-sitecms/internal/di"
	"github.com/freightwave/go-sitecms/internal/identity"
	sitelocations "github.com/freightwave/go-sitecms/locations"
	sitepages "github.com/freightwave/go-sitecms/pages"
	"github.com/freightwave/go-sitecms/pkg/testsupport"
	siteseo "github.com/freightwave/go-sitecms/seo"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func newSQLiteModule(t *testing.T) *sitecms.Module {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	hash, err := identity.HashPassword("harbor-master")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	cfg := sitecms.DefaultConfig()
	cfg.Site.Name = "FreightWave"
	cfg.Site.DefaultTitle = "FreightWave Logistics"
	cfg.Auth.AdminEmail = "ops@freightwave.test"
	cfg.Auth.AdminPasswordHash = hash
	cfg.Auth.SessionSecret = "integration-secret"
	cfg.Logging.Provider = "noop"

	module, err := sitecms.New(cfg, di.WithBunDB(bunDB))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })

	if err := module.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return module
}

func TestModulePageLifecycleOnSQLite(t *testing.T) {
	module := newSQLiteModule(t)
	ctx := context.Background()

	created, err := module.Pages().Create(ctx, sitepages.CreatePageRequest{
		Path:  "/our-services",
		Title: "Our Services",
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	if _, err := module.Content().SaveBundle(ctx, sitecontent.SaveBundleRequest{
		PagePath:  "/our-services",
		PageTitle: "Our Services",
		Sections: []sitecontent.BundleSectionInput{
			{SectionKey: "hero", Content: map[string]any{"title": "Freight services"}},
			{SectionKey: "main", Content: map[string]any{"markdown": "Air, sea and road."}},
		},
	}); err != nil {
		t.Fatalf("save bundle: %v", err)
	}

	if _, err := module.SEO().Upsert(ctx, siteseo.UpsertRecordRequest{
		Path:        "/our-services",
		Title:       "Freight Services | FreightWave",
		Description: "Air, sea and road freight",
	}); err != nil {
		t.Fatalf("upsert seo: %v", err)
	}

	// rename cascades to sections and the seo record in one transaction
	newPath := "/services"
	if _, err := module.Pages().Update(ctx, sitepages.UpdatePageRequest{
		ID:   created.ID,
		Path: &newPath,
	}); err != nil {
		t.Fatalf("rename page: %v", err)
	}

	sections, err := module.Content().ListByPath(ctx, "/services")
	if err != nil {
		t.Fatalf("sections after rename: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections under new path, got %d", len(sections))
	}
	record, err := module.SEO().GetByPath(ctx, "/services")
	if err != nil {
		t.Fatalf("seo after rename: %v", err)
	}
	if record.Title != "Freight Services | FreightWave" {
		t.Fatalf("unexpected seo title %q", record.Title)
	}

	// delete removes the page and everything hanging off its path
	if err := module.Pages().Delete(ctx, sitepages.DeletePageRequest{ID: created.ID}); err != nil {
		t.Fatalf("delete page: %v", err)
	}
	sections, err = module.Content().ListByPath(ctx, "/services")
	if err != nil {
		t.Fatalf("sections after delete: %v", err)
	}
	if len(sections) != 0 {
		t.Fatalf("expected no sections after delete, got %d", len(sections))
	}
}

func TestModuleDuplicateCopiesSectionsOnSQLite(t *testing.T) {
	module := newSQLiteModule(t)
	ctx := context.Background()

	source, err := module.Pages().Create(ctx, sitepages.CreatePageRequest{
		Path:  "/our-services/air-freight",
		Title: "Air Freight",
	})
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	if _, err := module.Content().Create(ctx, sitecontent.CreateSectionRequest{
		PagePath:   source.Path,
		SectionKey: "main",
		Content:    map[string]any{"markdown": "Fast uplift."},
	}); err != nil {
		t.Fatalf("create section: %v", err)
	}

	clone, err := module.Pages().Duplicate(ctx, sitepages.DuplicatePageRequest{
		SourceID: source.ID,
		NewPath:  "/our-services/sea-freight",
	})
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if clone.Title != "Air Freight (copy)" {
		t.Fatalf("unexpected clone title %q", clone.Title)
	}

	sections, err := module.Content().ListByPath(ctx, clone.Path)
	if err != nil {
		t.Fatalf("clone sections: %v", err)
	}
	if len(sections) != 1 || sections[0].SectionKey != "main" {
		t.Fatalf("expected copied main section, got %+v", sections)
	}
	if sections[0].ID == uuidOf(t, module, source.Path, "main") {
		t.Fatal("clone sections must get new ids")
	}
}

func uuidOf(t *testing.T, module *sitecms.Module, pagePath, key string) uuid.UUID {
	t.Helper()
	sections, err := module.Content().ListByPath(context.Background(), pagePath)
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	for _, section := range sections {
		if section.SectionKey == key {
			return section.ID
		}
	}
	t.Fatalf("section %s not found on %s", key, pagePath)
	return uuid.Nil
}

func TestModuleBundleKeySwapOnSQLite(t *testing.T) {
	module := newSQLiteModule(t)
	ctx := context.Background()

	if _, err := module.Content().SaveBundle(ctx, sitecontent.SaveBundleRequest{
		PagePath:  "/about",
		PageTitle: "About",
		Sections: []sitecontent.BundleSectionInput{
			{SectionKey: "hero", Content: map[string]any{"title": "Hero copy"}},
			{SectionKey: "main", Content: map[string]any{"body": "Main copy"}},
		},
	}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	heroID := uuidOf(t, module, "/about", "hero")
	mainID := uuidOf(t, module, "/about", "main")

	// ids kept, keys exchanged, the way the editor submits a rename that
	// crosses another section's key
	result, err := module.Content().SaveBundle(ctx, sitecontent.SaveBundleRequest{
		PagePath:  "/about",
		PageTitle: "About",
		Sections: []sitecontent.BundleSectionInput{
			{ID: &heroID, SectionKey: "main", Content: map[string]any{"title": "Hero copy"}},
			{ID: &mainID, SectionKey: "hero", Content: map[string]any{"body": "Main copy"}},
		},
		PristineIDs: []uuid.UUID{heroID, mainID},
	})
	if err != nil {
		t.Fatalf("key-swap save: %v", err)
	}
	if len(result.Sections) != 2 {
		t.Fatalf("expected 2 sections after swap, got %d", len(result.Sections))
	}
	if got := uuidOf(t, module, "/about", "main"); got != heroID {
		t.Fatalf("expected id %s under key main, got %s", heroID, got)
	}
	if got := uuidOf(t, module, "/about", "hero"); got != mainID {
		t.Fatalf("expected id %s under key hero, got %s", mainID, got)
	}
}

func TestModuleHeadersAndLocationsOnSQLite(t *testing.T) {
	module := newSQLiteModule(t)
	ctx := context.Background()

	first, err := module.Headers().Create(ctx, siteheaders.CreateConfigRequest{
		Name: "default",
		Content: siteheaders.Content{
			NavLinks: []siteheaders.NavLink{{Label: "Home", Href: "/"}},
		},
	})
	if err != nil {
		t.Fatalf("create header: %v", err)
	}
	second, err := module.Headers().Create(ctx, siteheaders.CreateConfigRequest{
		Name: "campaign",
		Content: siteheaders.Content{
			NavLinks: []siteheaders.NavLink{{Label: "Deals", Href: "/deals"}},
		},
	})
	if err != nil {
		t.Fatalf("create second header: %v", err)
	}

	if _, err := module.Headers().Activate(ctx, first.ID); err != nil {
		t.Fatalf("activate first: %v", err)
	}
	if _, err := module.Headers().Activate(ctx, second.ID); err != nil {
		t.Fatalf("activate second: %v", err)
	}
	active, err := module.Headers().Active(ctx)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active.ID != second.ID {
		t.Fatalf("expected %s active, got %s", second.ID, active.ID)
	}

	for _, city := range []string{"Rotterdam", "Hamburg"} {
		if _, err := module.Locations().Create(ctx, sitelocations.CreateLocationRequest{
			CountryCode: "NL",
			CountryName: "Netherlands",
			CityName:    city,
		}); err != nil {
			t.Fatalf("create location %s: %v", city, err)
		}
	}
	list, err := module.Locations().List(ctx)
	if err != nil {
		t.Fatalf("list locations: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(list))
	}
}

func TestModuleServesPublicSiteOnSQLite(t *testing.T) {
	module := newSQLiteModule(t)
	ctx := context.Background()

	if _, err := module.Pages().Create(ctx, sitepages.CreatePageRequest{
		Path: "/", ComponentKey: sitepages.ComponentHome, Title: "Home",
	}); err != nil {
		t.Fatalf("create home: %v", err)
	}
	if err := module.BuildRoutes(ctx); err != nil {
		t.Fatalf("build routes: %v", err)
	}

	rec := httptest.NewRecorder()
	module.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for home, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `data-component="home"`) {
		t.Fatalf("unexpected body:\n%s", rec.Body.String())
	}
}
