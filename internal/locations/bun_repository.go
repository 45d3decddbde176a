package locations

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository persists locations through bun with optional read caching.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Location]
}

// NewBunRepository constructs a location repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a location repository with optional
// caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewLocationRepository(db)
	return &BunRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunRepository) List(ctx context.Context) ([]*Location, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.display_order ASC NULLS LAST, ?TableAlias.country_name ASC, ?TableAlias.city_name ASC")
		}),
	)
	return records, err
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Location, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return result, nil
}

func (r *BunRepository) Create(ctx context.Context, record *Location) (*Location, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunRepository) Update(ctx context.Context, record *Location) (*Location, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"country_code",
			"country_name",
			"city_name",
			"address",
			"contacts",
			"email",
			"latitude",
			"longitude",
			"display_order",
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
		return fmt.Errorf("location repository: database not configured")
	}

	result, err := r.db.NewDelete().
		Model((*Location)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("location delete rows affected: %w", err)
	}
	if affected == 0 {
		return &LocationNotFoundError{Key: id.String()}
	}
	return nil
}

// Reorder rewrites display_order for the supplied sequence in one
// transaction so a half-applied drag never persists.
func (r *BunRepository) Reorder(ctx context.Context, ids []uuid.UUID) ([]*Location, error) {
	if r.db == nil {
		return nil, fmt.Errorf("location repository: database not configured")
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for position, id := range ids {
			result, err := tx.NewUpdate().
				Model((*Location)(nil)).
				Set("display_order = ?", position).
				Where("?TableAlias.id = ?", id).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("reorder location %s: %w", id, err)
			}
			affected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("reorder rows affected: %w", err)
			}
			if affected == 0 {
				return &LocationNotFoundError{Key: id.String()}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.List(ctx)
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &LocationNotFoundError{Key: key}
	}
	return fmt.Errorf("location repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
