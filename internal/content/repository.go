package content

import (
	"context"

	sitepages "github.com/freightwave/go-sitecms/pages"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository abstracts content section storage. SaveBundle applies one
// page-editor save as a unit: the page row upsert, every section upsert
// and the deletions of removed sections.
type Repository interface {
	ListByPath(ctx context.Context, pagePath string) ([]*Section, error)
	List(ctx context.Context) ([]*Section, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Section, error)
	Create(ctx context.Context, record *Section) (*Section, error)
	Update(ctx context.Context, record *Section) (*Section, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SaveBundle(ctx context.Context, page *sitepages.Page, upserts []*Section, removeIDs []uuid.UUID) ([]*Section, error)
}

// NewSectionRepository builds the generic bun repository for section rows.
func NewSectionRepository(db *bun.DB) repository.Repository[*Section] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Section]{
		NewRecord: func() *Section { return &Section{} },
		GetID: func(s *Section) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Section, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "section_key"
		},
		GetIdentifierValue: func(s *Section) string {
			return s.SectionKey
		},
	})
}
