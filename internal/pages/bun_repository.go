package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/freightwave/go-sitecms/internal/identity"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// sectionRow and seoRow map the dependent tables so page cascades can run
// inside one transaction without importing the owning packages.
type sectionRow struct {
	bun.BaseModel `bun:"table:content_sections,alias:cs"`

	ID         uuid.UUID         `bun:",pk,type:uuid"`
	PagePath   string            `bun:"page_path,notnull"`
	SectionKey string            `bun:"section_key,notnull"`
	Content    map[string]any    `bun:"content,type:jsonb"`
	Images     map[string]string `bun:"images,type:jsonb"`
	CreatedAt  time.Time         `bun:"created_at,nullzero,default:current_timestamp"`
	UpdatedAt  time.Time         `bun:"updated_at,nullzero,default:current_timestamp"`
}

type seoRow struct {
	bun.BaseModel `bun:"table:seo_records,alias:sr"`

	ID          uuid.UUID         `bun:",pk,type:uuid"`
	Path        string            `bun:"path,notnull"`
	Title       string            `bun:"title"`
	Description string            `bun:"description"`
	Keywords    string            `bun:"keywords"`
	Image       string            `bun:"image"`
	Canonical   string            `bun:"canonical"`
	ExtraMeta   map[string]string `bun:"extra_meta,type:jsonb"`
	CreatedAt   time.Time         `bun:"created_at,nullzero,default:current_timestamp"`
	UpdatedAt   time.Time         `bun:"updated_at,nullzero,default:current_timestamp"`
}

// BunRepository persists pages through bun with optional read caching.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Page]
}

// NewBunRepository constructs a page repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a page repository with optional caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewPageRepository(db)
	return &BunRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunRepository) Create(ctx context.Context, record *Page) (*Page, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return result, nil
}

func (r *BunRepository) GetByPath(ctx context.Context, path string) (*Page, error) {
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
		return nil, &PageNotFoundError{Key: path}
	}
	return records[0], nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Page, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.path ASC")
		}),
	)
	return records, err
}

func (r *BunRepository) Update(ctx context.Context, record *Page) (*Page, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"component_key",
			"title",
			"updated_at",
		),
	)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Rename updates the page path and repoints dependent rows in the same
// transaction.
func (r *BunRepository) Rename(ctx context.Context, record *Page, oldPath string) (*Page, error) {
	if r.db == nil {
		return nil, fmt.Errorf("page repository: database not configured")
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Model(record).
			Column("path", "component_key", "title", "updated_at").
			Where("?TableAlias.id = ?", record.ID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update page: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("page update rows affected: %w", err)
		}
		if affected == 0 {
			return &PageNotFoundError{Key: record.ID.String()}
		}

		if _, err := tx.NewUpdate().
			Model((*sectionRow)(nil)).
			Set("page_path = ?", record.Path).
			Where("?TableAlias.page_path = ?", oldPath).
			Exec(ctx); err != nil {
			return fmt.Errorf("move content sections: %w", err)
		}

		if _, err := tx.NewUpdate().
			Model((*seoRow)(nil)).
			Set("path = ?", record.Path).
			Where("?TableAlias.path = ?", oldPath).
			Exec(ctx); err != nil {
			return fmt.Errorf("move seo record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes the page, its content sections and its SEO record in one
// transaction.
func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("page repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		page := new(Page)
		if err := tx.NewSelect().
			Model(page).
			Where("?TableAlias.id = ?", id).
			Limit(1).
			Scan(ctx); err != nil {
			return &PageNotFoundError{Key: id.String()}
		}

		if _, err := tx.NewDelete().
			Model((*sectionRow)(nil)).
			Where("?TableAlias.page_path = ?", page.Path).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete content sections: %w", err)
		}

		if _, err := tx.NewDelete().
			Model((*seoRow)(nil)).
			Where("?TableAlias.path = ?", page.Path).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete seo record: %w", err)
		}

		result, err := tx.NewDelete().
			Model((*Page)(nil)).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete page: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("page delete rows affected: %w", err)
		}
		if affected == 0 {
			return &PageNotFoundError{Key: id.String()}
		}
		return nil
	})
}

// Duplicate inserts the clone and copies the source's sections and SEO
// record under the clone's path, all in one transaction. Copied rows get
// identifiers derived from the new path so a re-run lands on the same ids.
func (r *BunRepository) Duplicate(ctx context.Context, source *Page, clone *Page) (*Page, error) {
	if r.db == nil {
		return nil, fmt.Errorf("page repository: database not configured")
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(clone).Exec(ctx); err != nil {
			return fmt.Errorf("insert page clone: %w", err)
		}

		var sections []*sectionRow
		if err := tx.NewSelect().
			Model(&sections).
			Where("?TableAlias.page_path = ?", source.Path).
			Scan(ctx); err != nil {
			return fmt.Errorf("load source sections: %w", err)
		}
		now := time.Now().UTC()
		for _, section := range sections {
			copied := *section
			copied.ID = identity.SectionUUID(clone.Path, section.SectionKey)
			copied.PagePath = clone.Path
			copied.CreatedAt = now
			copied.UpdatedAt = now
			if _, err := tx.NewInsert().Model(&copied).Exec(ctx); err != nil {
				return fmt.Errorf("copy content section %q: %w", section.SectionKey, err)
			}
		}

		var seoRecords []*seoRow
		if err := tx.NewSelect().
			Model(&seoRecords).
			Where("?TableAlias.path = ?", source.Path).
			Limit(1).
			Scan(ctx); err != nil {
			return fmt.Errorf("load source seo record: %w", err)
		}
		if len(seoRecords) > 0 {
			copied := *seoRecords[0]
			copied.ID = identity.SEOUUID(clone.Path)
			copied.Path = clone.Path
			copied.CreatedAt = now
			copied.UpdatedAt = now
			if _, err := tx.NewInsert().Model(&copied).Exec(ctx); err != nil {
				return fmt.Errorf("copy seo record: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return clone, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &PageNotFoundError{Key: key}
	}
	return fmt.Errorf("page repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
