package pages

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository abstracts page storage. Delete, Rename and Duplicate carry
// the page's dependent rows (content sections and the SEO record) with
// them so a page never detaches from its content.
type Repository interface {
	Create(ctx context.Context, record *Page) (*Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetByPath(ctx context.Context, path string) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
	Update(ctx context.Context, record *Page) (*Page, error)
	Rename(ctx context.Context, record *Page, oldPath string) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Duplicate(ctx context.Context, source *Page, clone *Page) (*Page, error)
}

// PathCascader mirrors page path changes into a dependent store. The
// content and SEO stores implement it so memory mode keeps pages and
// their rows consistent without a shared transaction.
type PathCascader interface {
	CopyPath(ctx context.Context, fromPath, toPath string) error
	MovePath(ctx context.Context, fromPath, toPath string) error
	DeletePath(ctx context.Context, path string) error
}

// NewPageRepository builds the generic bun repository for page rows.
func NewPageRepository(db *bun.DB) repository.Repository[*Page] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Page]{
		NewRecord: func() *Page { return &Page{} },
		GetID: func(p *Page) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Page, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "path"
		},
		GetIdentifierValue: func(p *Page) string {
			return p.Path
		},
	})
}
