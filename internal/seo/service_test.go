package seo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	internalseo "github.com/freightwave/go-sitecms/internal/seo"
	siteseo "github.com/freightwave/go-sitecms/seo"
)

type staticLegacySource struct {
	record *siteseo.Record
	calls  int
}

func (s *staticLegacySource) LegacySEO(_ context.Context, path string) (*siteseo.Record, bool, error) {
	s.calls++
	if s.record != nil && s.record.Path == path {
		return s.record, true, nil
	}
	return nil, false, nil
}

func newService(opts ...internalseo.ServiceOption) internalseo.Service {
	clock := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	base := []internalseo.ServiceOption{
		internalseo.WithClock(func() time.Time { return clock }),
	}
	return internalseo.NewService(internalseo.NewMemoryRepository(), append(base, opts...)...)
}

func TestUpsertConvergesOnOneRecord(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	first, err := svc.Upsert(ctx, internalseo.UpsertRecordRequest{Path: "/about", Title: "About"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := svc.Upsert(ctx, internalseo.UpsertRecordRequest{Path: "about", Title: "About v2"})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected upserts to converge, got %s and %s", first.ID, second.ID)
	}

	records, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	if records[0].Title != "About v2" {
		t.Fatalf("expected replacement, got %q", records[0].Title)
	}
}

func TestResolveMergesDefaultsWithOverride(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, internalseo.UpsertRecordRequest{
		Path:      "/about",
		Title:     "About FreightWave",
		ExtraMeta: map[string]string{"og:type": "article"},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	meta, err := svc.Resolve(ctx, "/about", internalseo.Defaults{
		Title:       "FreightWave",
		Description: "Global logistics",
		ExtraMeta:   map[string]string{"robots": "index,follow"},
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if meta.Title != "About FreightWave" {
		t.Fatalf("expected override title, got %q", meta.Title)
	}
	if meta.Description != "Global logistics" {
		t.Fatalf("expected default description to survive, got %q", meta.Description)
	}
	if meta.ExtraMeta["robots"] != "index,follow" || meta.ExtraMeta["og:type"] != "article" {
		t.Fatalf("expected shallow union, got %v", meta.ExtraMeta)
	}
}

func TestResolveWithoutRecordFallsBackToDefaults(t *testing.T) {
	svc := newService()

	meta, err := svc.Resolve(context.Background(), "/missing", internalseo.Defaults{Title: "FreightWave"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if meta.Title != "FreightWave" {
		t.Fatalf("expected defaults, got %q", meta.Title)
	}
}

func TestResolveConsultsLegacySourceOnlyWhenRecordMissing(t *testing.T) {
	legacy := &staticLegacySource{
		record: &siteseo.Record{Path: "/about", Title: "Legacy About"},
	}
	svc := newService(internalseo.WithLegacySource(legacy))
	ctx := context.Background()

	meta, err := svc.Resolve(ctx, "/about", internalseo.Defaults{Title: "FreightWave"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if meta.Title != "Legacy About" {
		t.Fatalf("expected legacy fallback, got %q", meta.Title)
	}

	// once a canonical record exists, legacy is no longer consulted
	if _, err := svc.Upsert(ctx, internalseo.UpsertRecordRequest{Path: "/about", Title: "Canonical About"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	before := legacy.calls
	meta, err = svc.Resolve(ctx, "/about", internalseo.Defaults{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if meta.Title != "Canonical About" {
		t.Fatalf("expected canonical record to win, got %q", meta.Title)
	}
	if legacy.calls != before {
		t.Fatalf("legacy source consulted despite canonical record")
	}
}

func TestResolveHonorsCancellation(t *testing.T) {
	svc := newService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Resolve(ctx, "/about", internalseo.Defaults{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
