package migrations_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/freightwave/go-sitecms/internal/migrations"
	"github.com/freightwave/go-sitecms/pkg/testsupport"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func newDB(t *testing.T) *bun.DB {
	t.Helper()
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	return db
}

func TestApplyRunsFilesInOrderOnce(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	fsys := fstest.MapFS{
		"002_second.sql": {Data: []byte("CREATE TABLE second (id UUID PRIMARY KEY);")},
		"001_first.sql":  {Data: []byte("CREATE TABLE first (id UUID PRIMARY KEY);")},
	}

	applied, err := migrations.Apply(ctx, db, fsys)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if applied != 2 {
		t.Fatalf("expected 2 applied, got %d", applied)
	}

	applied, err = migrations.Apply(ctx, db, fsys)
	if err != nil {
		t.Fatalf("reapply: %v", err)
	}
	if applied != 0 {
		t.Fatalf("expected rerun to be a no-op, got %d", applied)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count tracking rows: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 tracking rows, got %d", count)
	}
}

func TestApplyStopsOnBrokenStatement(t *testing.T) {
	db := newDB(t)

	fsys := fstest.MapFS{
		"001_bad.sql": {Data: []byte("CREATE BROKEN SYNTAX;")},
	}
	if _, err := migrations.Apply(context.Background(), db, fsys); err == nil {
		t.Fatal("expected error for broken statement")
	}
}
