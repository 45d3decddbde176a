package content

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Service exposes content section use cases. SaveBundle is the page
// editor's save workflow and runs as a single transaction.
type Service interface {
	ListByPath(ctx context.Context, pagePath string) ([]*Section, error)
	List(ctx context.Context) ([]*Section, error)
	Get(ctx context.Context, id uuid.UUID) (*Section, error)
	Create(ctx context.Context, req CreateSectionRequest) (*Section, error)
	Update(ctx context.Context, req UpdateSectionRequest) (*Section, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SaveBundle(ctx context.Context, req SaveBundleRequest) (*BundleResult, error)
}

// CreateSectionRequest captures a single new section.
type CreateSectionRequest struct {
	PagePath   string
	SectionKey string
	Content    map[string]any
	Images     map[string]string
}

// Validate checks the request before it reaches storage.
func (r CreateSectionRequest) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(r.PagePath) == "" {
		errs["page_path"] = validation.NewError("sitecms.content.page_path_required", "page path is required")
	}
	if NormalizeSectionKey(r.SectionKey) == "" {
		errs["section_key"] = validation.NewError("sitecms.content.section_key_required", "section key is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateSectionRequest mutates an existing section by id.
type UpdateSectionRequest struct {
	ID         uuid.UUID
	SectionKey *string
	Content    map[string]any
	Images     map[string]string
}

// Validate checks the request before it reaches storage.
func (r UpdateSectionRequest) Validate() error {
	errs := validation.Errors{}
	if r.ID == uuid.Nil {
		errs["id"] = validation.NewError("sitecms.content.id_required", "section id is required")
	}
	if r.SectionKey != nil && NormalizeSectionKey(*r.SectionKey) == "" {
		errs["section_key"] = validation.NewError("sitecms.content.section_key_required", "section key is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BundleSectionInput is one editable section as presented in the page
// editor. A nil ID marks a section created during this edit session.
type BundleSectionInput struct {
	ID         *uuid.UUID
	SectionKey string
	Content    map[string]any
	Images     map[string]string
}

// SaveBundleRequest captures one page-editor save: the page row fields,
// the full set of edited sections, and the ids the editor loaded with
// (pristine state) so removed sections can be collected for deletion.
type SaveBundleRequest struct {
	PagePath    string
	PageTitle   string
	Sections    []BundleSectionInput
	PristineIDs []uuid.UUID
}

// Validate rejects a bundle before any write happens. Duplicate section
// keys are detected on the normalized (lowercased, trimmed) form.
func (r SaveBundleRequest) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(r.PagePath) == "" {
		errs["page_path"] = validation.NewError("sitecms.content.page_path_required", "page path is required")
	}
	if strings.TrimSpace(r.PageTitle) == "" {
		errs["page_title"] = validation.NewError("sitecms.content.page_title_required", "page title is required")
	}

	seen := map[string]bool{}
	for _, section := range r.Sections {
		key := NormalizeSectionKey(section.SectionKey)
		if key == "" {
			errs["section_key"] = validation.NewError("sitecms.content.section_key_required", "section key is required")
			continue
		}
		if seen[key] {
			errs["section_key"] = validation.NewError("sitecms.content.duplicate_section_key", "duplicate section key: "+key)
		}
		seen[key] = true
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RemovedIDs returns the pristine ids absent from the edited set, i.e. the
// sections the operator deleted in the editor.
func (r SaveBundleRequest) RemovedIDs() []uuid.UUID {
	current := map[uuid.UUID]bool{}
	for _, section := range r.Sections {
		if section.ID != nil && *section.ID != uuid.Nil {
			current[*section.ID] = true
		}
	}
	removed := make([]uuid.UUID, 0)
	for _, id := range r.PristineIDs {
		if id == uuid.Nil || current[id] {
			continue
		}
		removed = append(removed, id)
	}
	return removed
}

// BundleResult returns the refreshed state after a bundle save so the
// editor can reset its pristine copy without re-fetching.
type BundleResult struct {
	PagePath string
	Sections []*Section
}
