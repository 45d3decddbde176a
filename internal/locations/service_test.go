package locations_test

import (
	"context"
	"errors"
	"testing"
	"time"

	internallocations "github.com/freightwave/go-sitecms/internal/locations"
	sitelocations "github.com/freightwave/go-sitecms/locations"
	"github.com/google/uuid"
)

func newService() internallocations.Service {
	clock := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return internallocations.NewService(
		internallocations.NewMemoryRepository(),
		internallocations.WithClock(func() time.Time { return clock }),
	)
}

func mustCreate(t *testing.T, svc internallocations.Service, country, code, city string, order *int) *internallocations.Location {
	t.Helper()
	created, err := svc.Create(context.Background(), internallocations.CreateLocationRequest{
		CountryCode:  code,
		CountryName:  country,
		CityName:     city,
		DisplayOrder: order,
	})
	if err != nil {
		t.Fatalf("create %s: %v", city, err)
	}
	return created
}

func intPtr(v int) *int { return &v }

func TestCreateNormalizesCountryCode(t *testing.T) {
	svc := newService()

	created := mustCreate(t, svc, "Netherlands", "nl", "Rotterdam", nil)
	if created.CountryCode != "NL" {
		t.Fatalf("expected uppercased country code, got %q", created.CountryCode)
	}
}

func TestCreateRejectsBadCountryCode(t *testing.T) {
	svc := newService()

	_, err := svc.Create(context.Background(), internallocations.CreateLocationRequest{
		CountryCode: "N1",
		CountryName: "Nowhere",
		CityName:    "Nowhere City",
	})
	if err == nil {
		t.Fatalf("expected country code rejection")
	}
}

func TestListOrdersByDisplayOrderThenName(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	mustCreate(t, svc, "Germany", "DE", "Hamburg", intPtr(1))
	mustCreate(t, svc, "Netherlands", "NL", "Rotterdam", intPtr(0))
	mustCreate(t, svc, "Belgium", "BE", "Antwerp", nil)

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := []string{list[0].CityName, list[1].CityName, list[2].CityName}
	want := []string{"Rotterdam", "Hamburg", "Antwerp"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %q, want %q (full order %v)", i, got[i], want[i], got)
		}
	}
}

func TestReorderRewritesDisplayOrder(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	a := mustCreate(t, svc, "Germany", "DE", "Hamburg", intPtr(0))
	b := mustCreate(t, svc, "Netherlands", "NL", "Rotterdam", intPtr(1))
	c := mustCreate(t, svc, "Belgium", "BE", "Antwerp", intPtr(2))

	ordered, err := svc.Reorder(ctx, []uuid.UUID{c.ID, a.ID, b.ID})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	got := []string{ordered[0].CityName, ordered[1].CityName, ordered[2].CityName}
	want := []string{"Antwerp", "Hamburg", "Rotterdam"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReorderRequiresCompleteSet(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	a := mustCreate(t, svc, "Germany", "DE", "Hamburg", intPtr(0))
	mustCreate(t, svc, "Netherlands", "NL", "Rotterdam", intPtr(1))

	if _, err := svc.Reorder(ctx, []uuid.UUID{a.ID}); !errors.Is(err, sitelocations.ErrReorderIncomplete) {
		t.Fatalf("expected ErrReorderIncomplete for missing id, got %v", err)
	}
	if _, err := svc.Reorder(ctx, []uuid.UUID{a.ID, a.ID}); !errors.Is(err, sitelocations.ErrReorderIncomplete) {
		t.Fatalf("expected ErrReorderIncomplete for duplicate id, got %v", err)
	}
	if _, err := svc.Reorder(ctx, []uuid.UUID{a.ID, uuid.New()}); !errors.Is(err, sitelocations.ErrReorderIncomplete) {
		t.Fatalf("expected ErrReorderIncomplete for unknown id, got %v", err)
	}
}

func TestUpdateTouchesOnlyProvidedFields(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created := mustCreate(t, svc, "Germany", "DE", "Hamburg", intPtr(0))

	email := "hamburg@freightwave.test"
	updated, err := svc.Update(ctx, internallocations.UpdateLocationRequest{ID: created.ID, Email: &email})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Email != email {
		t.Fatalf("expected email update, got %q", updated.Email)
	}
	if updated.CityName != "Hamburg" || updated.CountryCode != "DE" {
		t.Fatalf("unrelated fields changed: %+v", updated)
	}
}
