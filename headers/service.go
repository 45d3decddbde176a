package headers

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Service manages named header variants. Activate deactivates every other
// row and activates the target in one transaction so the at-most-one-
// active invariant holds even under concurrent admins.
type Service interface {
	List(ctx context.Context) ([]*Config, error)
	Get(ctx context.Context, id uuid.UUID) (*Config, error)
	Active(ctx context.Context) (*Config, error)
	Create(ctx context.Context, req CreateConfigRequest) (*Config, error)
	Update(ctx context.Context, req UpdateConfigRequest) (*Config, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Activate(ctx context.Context, id uuid.UUID) (*Config, error)
}

// CreateConfigRequest registers a new header variant, inactive by default.
type CreateConfigRequest struct {
	Name    string
	Content Content
}

// Validate checks the request before it reaches storage.
func (r CreateConfigRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return validation.Errors{
			"name": validation.NewError("sitecms.headers.name_required", "name is required"),
		}
	}
	return nil
}

// UpdateConfigRequest mutates a header variant. A nil Content leaves the
// stored payload untouched.
type UpdateConfigRequest struct {
	ID      uuid.UUID
	Name    *string
	Content *Content
}

// Validate checks the request before it reaches storage.
func (r UpdateConfigRequest) Validate() error {
	errs := validation.Errors{}
	if r.ID == uuid.Nil {
		errs["id"] = validation.NewError("sitecms.headers.id_required", "header id is required")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errs["name"] = validation.NewError("sitecms.headers.name_required", "name is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
