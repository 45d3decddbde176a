package seo

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

// BunRepository persists seo records through bun with optional read
// caching.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Record]
}

// NewBunRepository constructs a seo repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a seo repository with optional
// caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewRecordRepository(db)
	return &BunRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunRepository) GetByPath(ctx context.Context, path string) (*Record, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.path = ?", path)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, path)
	}
	if len(records) == 0 {
		return nil, &RecordNotFoundError{Path: path}
	}
	return records[0], nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Record, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.path ASC")
		}),
	)
	return records, err
}

// Upsert writes the record for a path, replacing any existing row. The
// path carries the uniqueness constraint so concurrent saves converge on
// one row.
func (r *BunRepository) Upsert(ctx context.Context, record *Record) (*Record, error) {
	if r.db == nil {
		return nil, fmt.Errorf("seo repository: database not configured")
	}

	if _, err := r.db.NewInsert().
		Model(record).
		On("CONFLICT (path) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("description = EXCLUDED.description").
		Set("keywords = EXCLUDED.keywords").
		Set("image = EXCLUDED.image").
		Set("canonical = EXCLUDED.canonical").
		Set("extra_meta = EXCLUDED.extra_meta").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("upsert seo record: %w", err)
	}

	return r.GetByPath(ctx, record.Path)
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("seo repository: database not configured")
	}

	result, err := r.db.NewDelete().
		Model((*Record)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete seo record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("seo delete rows affected: %w", err)
	}
	if affected == 0 {
		return &RecordNotFoundError{Path: id.String()}
	}
	return nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &RecordNotFoundError{Path: key}
	}
	return fmt.Errorf("seo repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
