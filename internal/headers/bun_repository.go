package headers

import (
	"context"
	"fmt"

	siteheaders "github.com/freightwave/go-sitecms/headers"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository persists header variants through bun with optional read
// caching.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Config]
}

// NewBunRepository constructs a header repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a header repository with optional
// caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewConfigRepository(db)
	return &BunRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunRepository) List(ctx context.Context) ([]*Config, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.name ASC")
		}),
	)
	return records, err
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Config, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return result, nil
}

func (r *BunRepository) Active(ctx context.Context) (*Config, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.is_active = ?", true)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, siteheaders.ErrNoActiveHeader
	}
	return records[0], nil
}

func (r *BunRepository) Create(ctx context.Context, record *Config) (*Config, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunRepository) Update(ctx context.Context, record *Config) (*Config, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"name",
			"content",
			"updated_at",
		),
	)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("header repository: database not configured")
	}

	result, err := r.db.NewDelete().
		Model((*Config)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete header: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("header delete rows affected: %w", err)
	}
	if affected == 0 {
		return &HeaderNotFoundError{Key: id.String()}
	}
	return nil
}

// Activate flips the active flag in one transaction: every other row goes
// inactive, the target goes active. Concurrent activations serialize on
// the row updates and the last one wins cleanly.
func (r *BunRepository) Activate(ctx context.Context, id uuid.UUID) (*Config, error) {
	if r.db == nil {
		return nil, fmt.Errorf("header repository: database not configured")
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Model((*Config)(nil)).
			Set("is_active = ?", true).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("activate header: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("header activate rows affected: %w", err)
		}
		if affected == 0 {
			return &HeaderNotFoundError{Key: id.String()}
		}

		if _, err := tx.NewUpdate().
			Model((*Config)(nil)).
			Set("is_active = ?", false).
			Where("?TableAlias.id != ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("deactivate headers: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &HeaderNotFoundError{Key: key}
	}
	return fmt.Errorf("header repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
