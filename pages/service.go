package pages

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Service exposes page management use cases. Deletion and duplication are
// multi-entity workflows (sections and seo records travel with the page)
// and run transactionally in the storage layer.
type Service interface {
	Create(ctx context.Context, req CreatePageRequest) (*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*Page, error)
	GetByPath(ctx context.Context, path string) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
	Update(ctx context.Context, req UpdatePageRequest) (*Page, error)
	Delete(ctx context.Context, req DeletePageRequest) error
	Duplicate(ctx context.Context, req DuplicatePageRequest) (*Page, error)
}

// CreatePageRequest captures the information required to register a page.
type CreatePageRequest struct {
	Path         string
	ComponentKey string
	Title        string
}

// Validate checks the request before it reaches storage.
func (r CreatePageRequest) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(r.Path) == "" {
		errs["path"] = validation.NewError("sitecms.pages.path_required", "path is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		errs["title"] = validation.NewError("sitecms.pages.title_required", "title is required")
	}
	if key := strings.TrimSpace(r.ComponentKey); key != "" && !KnownComponentKey(key) {
		errs["component_key"] = validation.NewError("sitecms.pages.component_key_unknown", "component key is not registered")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePageRequest captures mutable page fields. Nil pointers leave the
// stored value untouched.
type UpdatePageRequest struct {
	ID           uuid.UUID
	Path         *string
	ComponentKey *string
	Title        *string
}

// Validate checks the request before it reaches storage.
func (r UpdatePageRequest) Validate() error {
	errs := validation.Errors{}
	if r.ID == uuid.Nil {
		errs["id"] = validation.NewError("sitecms.pages.id_required", "page id is required")
	}
	if r.Path != nil && strings.TrimSpace(*r.Path) == "" {
		errs["path"] = validation.NewError("sitecms.pages.path_required", "path is required")
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		errs["title"] = validation.NewError("sitecms.pages.title_required", "title is required")
	}
	if r.ComponentKey != nil && !KnownComponentKey(strings.TrimSpace(*r.ComponentKey)) {
		errs["component_key"] = validation.NewError("sitecms.pages.component_key_unknown", "component key is not registered")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeletePageRequest removes a page together with its sections and seo
// record.
type DeletePageRequest struct {
	ID uuid.UUID
}

// Validate checks the request before it reaches storage.
func (r DeletePageRequest) Validate() error {
	if r.ID == uuid.Nil {
		return validation.Errors{
			"id": validation.NewError("sitecms.pages.id_required", "page id is required"),
		}
	}
	return nil
}

// DuplicatePageRequest copies a page and all of its sections under a new
// path. An empty Title keeps the source title suffixed with " (copy)".
type DuplicatePageRequest struct {
	SourceID uuid.UUID
	NewPath  string
	Title    string
}

// Validate checks the request before it reaches storage.
func (r DuplicatePageRequest) Validate() error {
	errs := validation.Errors{}
	if r.SourceID == uuid.Nil {
		errs["source_id"] = validation.NewError("sitecms.pages.id_required", "source page id is required")
	}
	if strings.TrimSpace(r.NewPath) == "" {
		errs["new_path"] = validation.NewError("sitecms.pages.path_required", "target path is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
