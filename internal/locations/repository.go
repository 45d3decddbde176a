package locations

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository abstracts location storage. Reorder rewrites display_order
// for the full set in one transaction.
type Repository interface {
	List(ctx context.Context) ([]*Location, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Location, error)
	Create(ctx context.Context, record *Location) (*Location, error)
	Update(ctx context.Context, record *Location) (*Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, ids []uuid.UUID) ([]*Location, error)
}

// NewLocationRepository builds the generic bun repository for location rows.
func NewLocationRepository(db *bun.DB) repository.Repository[*Location] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Location]{
		NewRecord: func() *Location { return &Location{} },
		GetID: func(l *Location) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Location, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "city_name"
		},
		GetIdentifierValue: func(l *Location) string {
			return l.CityName
		},
	})
}
