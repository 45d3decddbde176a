// Package migrations applies the embedded SQL schema files in order,
// tracking applied files in a schema_migrations table so reruns are
// no-ops.
package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/uptrace/bun"
)

const trackingTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    name VARCHAR PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Apply runs every pending .sql file from fsys in lexical order and
// returns the number applied. Each file runs inside its own transaction
// together with its tracking row.
func Apply(ctx context.Context, db *bun.DB, fsys fs.FS) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("migrations: database required")
	}

	if _, err := db.ExecContext(ctx, trackingTable); err != nil {
		return 0, fmt.Errorf("migrations: create tracking table: %w", err)
	}

	files, err := collectFiles(fsys)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, file := range files {
		done, err := alreadyApplied(ctx, db, file)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}

		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return applied, fmt.Errorf("migrations: read %s: %w", file, err)
		}

		err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, stmt := range splitStatements(string(raw)) {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("exec %s: %w", file, err)
				}
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO schema_migrations (name) VALUES (?)", path.Base(file))
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("migrations: %w", err)
		}
		applied++
	}
	return applied, nil
}

func collectFiles(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			return nil
		}
		files = append(files, name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("migrations: walk: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return path.Base(files[i]) < path.Base(files[j]) })
	return files, nil
}

func alreadyApplied(ctx context.Context, db *bun.DB, file string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM schema_migrations WHERE name = ?", path.Base(file)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("migrations: check %s: %w", file, err)
	}
	return count > 0, nil
}

// splitStatements breaks a file on semicolons at line ends. The schema
// files keep one statement per block, so this stays simple.
func splitStatements(raw string) []string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
