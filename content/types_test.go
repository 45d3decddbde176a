package content_test

import (
	"testing"

	"github.com/freightwave/go-sitecms/content"
	"github.com/google/uuid"
)

func section(key string) *content.Section {
	return &content.Section{SectionKey: key}
}

func TestSortCanonicalOrdersWellKnownKeysFirst(t *testing.T) {
	sections := []*content.Section{
		section("partners"),
		section("main"),
		section("about_intro"),
		section("hero"),
		section("seo"),
		section("features"),
	}

	content.SortCanonical(sections)

	got := make([]string, 0, len(sections))
	for _, s := range sections {
		got = append(got, s.SectionKey)
	}
	want := []string{"seo", "hero", "main", "features", "about_intro", "partners"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %q want %q (full order %v)", i, got[i], want[i], got)
		}
	}
}

func TestPartitionSplitsSEOSection(t *testing.T) {
	sections := []*content.Section{
		section("hero"),
		section(" SEO "),
		section("main"),
	}

	seo, rest := content.Partition(sections)
	if seo == nil {
		t.Fatal("expected seo section to be extracted")
	}
	if len(rest) != 2 {
		t.Fatalf("expected 2 renderable sections, got %d", len(rest))
	}
	if rest[0].SectionKey != "hero" || rest[1].SectionKey != "main" {
		t.Fatalf("partition must preserve order, got %v %v", rest[0].SectionKey, rest[1].SectionKey)
	}
}

func TestSaveBundleValidateRejectsDuplicateKeys(t *testing.T) {
	req := content.SaveBundleRequest{
		PagePath:  "/about",
		PageTitle: "About",
		Sections: []content.BundleSectionInput{
			{SectionKey: "Hero"},
			{SectionKey: " hero "},
		},
	}
	if err := req.Validate(); err == nil {
		t.Fatal("expected duplicate normalized keys to fail validation")
	}
}

func TestSaveBundleRemovedIDs(t *testing.T) {
	kept := uuid.New()
	removed := uuid.New()

	req := content.SaveBundleRequest{
		PagePath:    "/about",
		PageTitle:   "About",
		Sections:    []content.BundleSectionInput{{ID: &kept, SectionKey: "hero"}},
		PristineIDs: []uuid.UUID{kept, removed},
	}

	ids := req.RemovedIDs()
	if len(ids) != 1 || ids[0] != removed {
		t.Fatalf("expected exactly the removed id, got %v", ids)
	}
}
