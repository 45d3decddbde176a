package content

import (
	"context"
	"fmt"

	sitepages "github.com/freightwave/go-sitecms/pages"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository persists content sections through bun with optional read
// caching.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Section]
}

// NewBunRepository constructs a section repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a section repository with optional
// caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewSectionRepository(db)
	return &BunRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunRepository) ListByPath(ctx context.Context, pagePath string) ([]*Section, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_path = ?", pagePath)
		}),
	)
	return records, err
}

func (r *BunRepository) List(ctx context.Context) ([]*Section, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.page_path ASC")
		}),
	)
	return records, err
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Section, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return result, nil
}

func (r *BunRepository) Create(ctx context.Context, record *Section) (*Section, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunRepository) Update(ctx context.Context, record *Section) (*Section, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"section_key",
			"content",
			"images",
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
		return fmt.Errorf("content repository: database not configured")
	}

	result, err := r.db.NewDelete().
		Model((*Section)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("section delete rows affected: %w", err)
	}
	if affected == 0 {
		return &SectionNotFoundError{Key: id.String()}
	}
	return nil
}

// SaveBundle applies one page-editor save in a single transaction: upsert
// the page row, upsert every edited section, delete the removed ones.
// Either everything lands or nothing does.
func (r *BunRepository) SaveBundle(ctx context.Context, page *sitepages.Page, upserts []*Section, removeIDs []uuid.UUID) ([]*Section, error) {
	if r.db == nil {
		return nil, fmt.Errorf("content repository: database not configured")
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if page != nil {
			if _, err := tx.NewInsert().
				Model(page).
				On("CONFLICT (path) DO UPDATE").
				Set("title = EXCLUDED.title").
				Set("updated_at = EXCLUDED.updated_at").
				Exec(ctx); err != nil {
				return fmt.Errorf("upsert page: %w", err)
			}
		}

		for _, id := range removeIDs {
			if _, err := tx.NewDelete().
				Model((*Section)(nil)).
				Where("?TableAlias.id = ?", id).
				Exec(ctx); err != nil {
				return fmt.Errorf("delete removed section %s: %w", id, err)
			}
		}

		// Key swaps keep section ids but exchange their unique
		// (page_path, section_key) pairs. Clear the target pairs first
		// so the upserts cannot trip the constraint mid-save; cleared
		// rows that survive the edit are reinserted right below.
		for _, record := range upserts {
			if _, err := tx.NewDelete().
				Model((*Section)(nil)).
				Where("?TableAlias.page_path = ?", record.PagePath).
				Where("?TableAlias.section_key = ?", record.SectionKey).
				Where("?TableAlias.id != ?", record.ID).
				Exec(ctx); err != nil {
				return fmt.Errorf("clear section key %q: %w", record.SectionKey, err)
			}
		}

		for _, record := range upserts {
			if _, err := tx.NewInsert().
				Model(record).
				On("CONFLICT (id) DO UPDATE").
				Set("section_key = EXCLUDED.section_key").
				Set("content = EXCLUDED.content").
				Set("images = EXCLUDED.images").
				Set("updated_at = EXCLUDED.updated_at").
				Exec(ctx); err != nil {
				return fmt.Errorf("upsert section %q: %w", record.SectionKey, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	refreshed, err := r.ListByPath(ctx, pagePathOf(page, upserts))
	if err != nil {
		return nil, err
	}
	return refreshed, nil
}

func pagePathOf(page *sitepages.Page, upserts []*Section) string {
	if page != nil {
		return page.Path
	}
	if len(upserts) > 0 {
		return upserts[0].PagePath
	}
	return ""
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &SectionNotFoundError{Key: key}
	}
	return fmt.Errorf("content repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
