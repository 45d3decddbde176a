package sitecms

import (
	"context"
	"embed"
	"io/fs"

	"github.com/freightwave/go-sitecms/internal/migrations"
	"github.com/uptrace/bun"
)

//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded migration files for this package.
func GetMigrationsFS() fs.FS {
	return migrationsFS
}

func migrate(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return nil
	}
	_, err := migrations.Apply(ctx, db, migrationsFS)
	return err
}
