package pages_test

import (
	"context"
	"errors"
	"testing"
	"time"

	internalpages "github.com/freightwave/go-sitecms/internal/pages"
	sitepages "github.com/freightwave/go-sitecms/pages"
)

type recordingCascader struct {
	copies  [][2]string
	moves   [][2]string
	deletes []string
}

func (r *recordingCascader) CopyPath(_ context.Context, from, to string) error {
	r.copies = append(r.copies, [2]string{from, to})
	return nil
}

func (r *recordingCascader) MovePath(_ context.Context, from, to string) error {
	r.moves = append(r.moves, [2]string{from, to})
	return nil
}

func (r *recordingCascader) DeletePath(_ context.Context, path string) error {
	r.deletes = append(r.deletes, path)
	return nil
}

func newService(cascades ...internalpages.PathCascader) internalpages.Service {
	clock := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return internalpages.NewService(
		internalpages.NewMemoryRepository(cascades...),
		internalpages.WithClock(func() time.Time { return clock }),
	)
}

func TestCreateNormalizesPathAndDerivesID(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	page, err := svc.Create(ctx, internalpages.CreatePageRequest{
		Path:  "Our Services/Air Freight",
		Title: "Air Freight",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if page.Path != "/our-services/air-freight" {
		t.Fatalf("unexpected path %q", page.Path)
	}
	if page.ComponentKey != sitepages.ComponentDynamic {
		t.Fatalf("expected dynamic default, got %q", page.ComponentKey)
	}

	// same path after deletion lands on the same identifier
	firstID := page.ID
	if err := svc.Delete(ctx, internalpages.DeletePageRequest{ID: page.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	again, err := svc.Create(ctx, internalpages.CreatePageRequest{
		Path:  "/our-services/air-freight",
		Title: "Air Freight",
	})
	if err != nil {
		t.Fatalf("recreate: %v", err)
	}
	if again.ID != firstID {
		t.Fatalf("expected deterministic id, got %s and %s", firstID, again.ID)
	}
}

func TestCreateRejectsDuplicatePath(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, internalpages.CreatePageRequest{Path: "/about", Title: "About"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, internalpages.CreatePageRequest{Path: "about", Title: "About again"}); !errors.Is(err, sitepages.ErrPathExists) {
		t.Fatalf("expected ErrPathExists, got %v", err)
	}
}

func TestCreateRejectsUnknownComponentKey(t *testing.T) {
	svc := newService()

	_, err := svc.Create(context.Background(), internalpages.CreatePageRequest{
		Path:         "/carousel-page",
		ComponentKey: "carousel",
		Title:        "Carousel",
	})
	if err == nil {
		t.Fatalf("expected component key rejection")
	}
}

func TestUpdateRenameCascades(t *testing.T) {
	cascade := &recordingCascader{}
	svc := newService(cascade)
	ctx := context.Background()

	page, err := svc.Create(ctx, internalpages.CreatePageRequest{Path: "/contact", Title: "Contact"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newPath := "/contact-us"
	renamed, err := svc.Update(ctx, internalpages.UpdatePageRequest{ID: page.ID, Path: &newPath})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if renamed.Path != "/contact-us" {
		t.Fatalf("unexpected path %q", renamed.Path)
	}
	if len(cascade.moves) != 1 || cascade.moves[0] != [2]string{"/contact", "/contact-us"} {
		t.Fatalf("expected one move cascade, got %v", cascade.moves)
	}

	if _, err := svc.GetByPath(ctx, "/contact"); !errors.Is(err, sitepages.ErrPageNotFound) {
		t.Fatalf("expected old path to vanish, got %v", err)
	}
}

func TestUpdateRejectsRenameOntoExistingPath(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, internalpages.CreatePageRequest{Path: "/about", Title: "About"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	page, err := svc.Create(ctx, internalpages.CreatePageRequest{Path: "/contact", Title: "Contact"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	target := "/about"
	if _, err := svc.Update(ctx, internalpages.UpdatePageRequest{ID: page.ID, Path: &target}); !errors.Is(err, sitepages.ErrPathExists) {
		t.Fatalf("expected ErrPathExists, got %v", err)
	}
}

func TestDeleteCascades(t *testing.T) {
	cascade := &recordingCascader{}
	svc := newService(cascade)
	ctx := context.Background()

	page, err := svc.Create(ctx, internalpages.CreatePageRequest{Path: "/about", Title: "About"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, internalpages.DeletePageRequest{ID: page.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(cascade.deletes) != 1 || cascade.deletes[0] != "/about" {
		t.Fatalf("expected delete cascade for /about, got %v", cascade.deletes)
	}
}

func TestDuplicateCopiesAndConflicts(t *testing.T) {
	cascade := &recordingCascader{}
	svc := newService(cascade)
	ctx := context.Background()

	page, err := svc.Create(ctx, internalpages.CreatePageRequest{Path: "/our-services", ComponentKey: sitepages.ComponentServices, Title: "Services"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	clone, err := svc.Duplicate(ctx, internalpages.DuplicatePageRequest{SourceID: page.ID, NewPath: "/our-services-eu"})
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if clone.Title != "Services (copy)" {
		t.Fatalf("unexpected clone title %q", clone.Title)
	}
	if clone.ComponentKey != sitepages.ComponentServices {
		t.Fatalf("expected component key to carry over, got %q", clone.ComponentKey)
	}
	if len(cascade.copies) != 1 || cascade.copies[0] != [2]string{"/our-services", "/our-services-eu"} {
		t.Fatalf("expected copy cascade, got %v", cascade.copies)
	}

	// a second run hits the path conflict instead of stacking copies
	if _, err := svc.Duplicate(ctx, internalpages.DuplicatePageRequest{SourceID: page.ID, NewPath: "/our-services-eu"}); !errors.Is(err, sitepages.ErrPathExists) {
		t.Fatalf("expected ErrPathExists, got %v", err)
	}
}
