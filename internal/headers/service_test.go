package headers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	siteheaders "github.com/freightwave/go-sitecms/headers"
	internalheaders "github.com/freightwave/go-sitecms/internal/headers"
)

func newService(t *testing.T) internalheaders.Service {
	t.Helper()
	clock := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	svc, err := internalheaders.NewService(
		internalheaders.NewMemoryRepository(),
		internalheaders.WithClock(func() time.Time { return clock }),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func validContent() internalheaders.Content {
	return internalheaders.Content{
		Logo: "/assets/logo.svg",
		NavLinks: []internalheaders.NavLink{
			{Label: "Services", Href: "/our-services"},
			{Label: "Contact", Href: "/contact-us"},
		},
	}
}

func TestCreateStartsInactive(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), internalheaders.CreateConfigRequest{
		Name:    "default",
		Content: validContent(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.IsActive {
		t.Fatalf("expected new header to start inactive")
	}
}

func TestCreateRejectsInvalidContent(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), internalheaders.CreateConfigRequest{
		Name: "broken",
		Content: internalheaders.Content{
			NavLinks: []internalheaders.NavLink{{Label: "", Href: "/x"}},
		},
	})
	if !errors.Is(err, siteheaders.ErrContentInvalid) {
		t.Fatalf("expected ErrContentInvalid, got %v", err)
	}
}

func TestActivateIsExclusive(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, internalheaders.CreateConfigRequest{Name: "spring", Content: validContent()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, internalheaders.CreateConfigRequest{Name: "winter", Content: validContent()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Activate(ctx, first.ID); err != nil {
		t.Fatalf("activate first: %v", err)
	}
	if _, err := svc.Activate(ctx, second.ID); err != nil {
		t.Fatalf("activate second: %v", err)
	}

	active, err := svc.Active(ctx)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active.ID != second.ID {
		t.Fatalf("expected second header active, got %s", active.Name)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	activeCount := 0
	for _, header := range all {
		if header.IsActive {
			activeCount++
		}
	}
	if activeCount != 1 {
		t.Fatalf("expected exactly one active header, got %d", activeCount)
	}
}

func TestActiveWithoutActivation(t *testing.T) {
	svc := newService(t)

	if _, err := svc.Active(context.Background()); !errors.Is(err, siteheaders.ErrNoActiveHeader) {
		t.Fatalf("expected ErrNoActiveHeader, got %v", err)
	}
}

func TestUpdateValidatesReplacementContent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, internalheaders.CreateConfigRequest{Name: "default", Content: validContent()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := internalheaders.Content{NavLinks: []internalheaders.NavLink{{Label: "x", Href: ""}}}
	if _, err := svc.Update(ctx, internalheaders.UpdateConfigRequest{ID: created.ID, Content: &bad}); !errors.Is(err, siteheaders.ErrContentInvalid) {
		t.Fatalf("expected ErrContentInvalid, got %v", err)
	}

	// stored content untouched after the rejected update
	current, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(current.Content.NavLinks) != 2 {
		t.Fatalf("expected original content to survive, got %+v", current.Content)
	}
}
