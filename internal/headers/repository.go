package headers

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository abstracts header storage. Activate flips the single active
// row atomically; at most one header is active at any moment.
type Repository interface {
	List(ctx context.Context) ([]*Config, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Config, error)
	Active(ctx context.Context) (*Config, error)
	Create(ctx context.Context, record *Config) (*Config, error)
	Update(ctx context.Context, record *Config) (*Config, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Activate(ctx context.Context, id uuid.UUID) (*Config, error)
}

// NewConfigRepository builds the generic bun repository for header rows.
func NewConfigRepository(db *bun.DB) repository.Repository[*Config] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Config]{
		NewRecord: func() *Config { return &Config{} },
		GetID: func(c *Config) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Config, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "name"
		},
		GetIdentifierValue: func(c *Config) string {
			return c.Name
		},
	})
}
