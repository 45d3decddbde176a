package seo

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Service exposes SEO record management and per-path resolution.
type Service interface {
	GetByPath(ctx context.Context, path string) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	Upsert(ctx context.Context, req UpsertRecordRequest) (*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Resolve merges defaults with the stored override for path. A missing
	// override is not an error; the defaults carry through. Resolve honors
	// context cancellation so abandoned navigations stop applying.
	Resolve(ctx context.Context, path string, defaults Defaults) (Metadata, error)
}

// UpsertRecordRequest writes the override record for a path, replacing any
// existing row for the same path.
type UpsertRecordRequest struct {
	Path        string
	Title       string
	Description string
	Keywords    string
	Image       string
	Canonical   string
	ExtraMeta   map[string]string
}

// Validate checks the request before it reaches storage.
func (r UpsertRecordRequest) Validate() error {
	if strings.TrimSpace(r.Path) == "" {
		return validation.Errors{
			"path": validation.NewError("sitecms.seo.path_required", "path is required"),
		}
	}
	return nil
}
