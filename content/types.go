package content

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SEOSectionKey is the reserved section key carrying legacy per-page SEO
// payloads. It never renders as a content section.
const SEOSectionKey = "seo"

// canonicalKeys orders the well-known sections ahead of everything else;
// remaining sections sort alphabetically after them.
var canonicalKeys = []string{SEOSectionKey, "hero", "main", "features", "sub_services"}

// Section is one editable block of a page, keyed by (page_path,
// section_key). Content and Images are operator-authored JSON payloads.
type Section struct {
	bun.BaseModel `bun:"table:content_sections,alias:cs"`

	ID         uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	PagePath   string            `bun:"page_path,notnull" json:"page_path"`
	SectionKey string            `bun:"section_key,notnull" json:"section_key"`
	Content    map[string]any    `bun:"content,type:jsonb,notnull" json:"content"`
	Images     map[string]string `bun:"images,type:jsonb" json:"images,omitempty"`
	CreatedAt  time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// NormalizeSectionKey lowercases and trims a section key. Duplicate
// detection and storage both operate on the normalized form.
func NormalizeSectionKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// SortCanonical orders sections in place: the well-known keys first, then
// the rest alphabetically. Both the admin editor and the public renderer
// apply this order so saved and displayed layouts agree.
func SortCanonical(sections []*Section) {
	rank := func(key string) int {
		for i, candidate := range canonicalKeys {
			if candidate == key {
				return i
			}
		}
		return len(canonicalKeys)
	}
	sort.SliceStable(sections, func(i, j int) bool {
		ki := NormalizeSectionKey(sections[i].SectionKey)
		kj := NormalizeSectionKey(sections[j].SectionKey)
		ri, rj := rank(ki), rank(kj)
		if ri != rj {
			return ri < rj
		}
		return ki < kj
	})
}

// Partition splits the reserved seo section from renderable sections. The
// returned slice preserves the input order.
func Partition(sections []*Section) (*Section, []*Section) {
	var seo *Section
	rest := make([]*Section, 0, len(sections))
	for _, section := range sections {
		if section == nil {
			continue
		}
		if seo == nil && NormalizeSectionKey(section.SectionKey) == SEOSectionKey {
			seo = section
			continue
		}
		rest = append(rest, section)
	}
	return seo, rest
}
