package seo

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository abstracts seo record storage. Upsert replaces the record for
// a path in place; a path has at most one record.
type Repository interface {
	GetByPath(ctx context.Context, path string) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	Upsert(ctx context.Context, record *Record) (*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewRecordRepository builds the generic bun repository for seo rows.
func NewRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(r *Record) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Record, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "path"
		},
		GetIdentifierValue: func(r *Record) string {
			return r.Path
		},
	})
}
