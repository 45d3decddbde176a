package content

import (
	"context"

	sitecontent "github.com/freightwave/go-sitecms/content"
	"github.com/freightwave/go-sitecms/internal/identity"
	sitepages "github.com/freightwave/go-sitecms/pages"
	"github.com/freightwave/go-sitecms/seo"
)

// LegacySEOSource reads old-style "seo" content sections for pages that
// predate the dedicated seo store. The SEO resolver consults it only when
// no seo record exists for a path.
type LegacySEOSource struct {
	repo Repository
	keys []string
}

// NewLegacySEOSource constructs the fallback source. Keys defaults to the
// reserved seo section key.
func NewLegacySEOSource(repo Repository, keys []string) *LegacySEOSource {
	if len(keys) == 0 {
		keys = []string{sitecontent.SEOSectionKey}
	}
	normalized := make([]string, 0, len(keys))
	for _, key := range keys {
		if k := sitecontent.NormalizeSectionKey(key); k != "" {
			normalized = append(normalized, k)
		}
	}
	return &LegacySEOSource{repo: repo, keys: normalized}
}

// LegacySEO maps a legacy seo section's content into a seo record. The
// second return reports whether a legacy section was found.
func (s *LegacySEOSource) LegacySEO(ctx context.Context, path string) (*seo.Record, bool, error) {
	normalized, err := sitepages.NormalizePath(path)
	if err != nil {
		return nil, false, err
	}

	sections, err := s.repo.ListByPath(ctx, normalized)
	if err != nil {
		return nil, false, err
	}

	for _, key := range s.keys {
		for _, section := range sections {
			if sitecontent.NormalizeSectionKey(section.SectionKey) != key {
				continue
			}
			record := &seo.Record{
				ID:          identity.SEOUUID(normalized),
				Path:        normalized,
				Title:       stringField(section.Content, "title"),
				Description: stringField(section.Content, "description"),
				Keywords:    stringField(section.Content, "keywords"),
				Image:       stringField(section.Content, "image"),
				Canonical:   stringField(section.Content, "canonical"),
			}
			return record, true, nil
		}
	}
	return nil, false, nil
}

func stringField(content map[string]any, key string) string {
	if content == nil {
		return ""
	}
	if value, ok := content[key].(string); ok {
		return value
	}
	return ""
}
