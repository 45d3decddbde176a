package pages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/freightwave/go-sitecms/internal/identity"
	"github.com/freightwave/go-sitecms/internal/logging"
	sitepages "github.com/freightwave/go-sitecms/pages"
	"github.com/freightwave/go-sitecms/pkg/interfaces"
	"github.com/google/uuid"
)

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger interfaces.Logger
}

// NewService constructs the page service.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a page under a normalized path. The identifier derives
// from the path so re-creating the same page is idempotent at the id level.
func (s *service) Create(ctx context.Context, req CreatePageRequest) (*Page, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	path, err := sitepages.NormalizePath(req.Path)
	if err != nil {
		return nil, err
	}

	componentKey := strings.TrimSpace(req.ComponentKey)
	if componentKey == "" {
		componentKey = sitepages.ComponentDynamic
	}
	if !sitepages.KnownComponentKey(componentKey) {
		return nil, &ComponentKeyError{Key: componentKey}
	}

	if _, err := s.repo.GetByPath(ctx, path); err == nil {
		return nil, sitepages.ErrPathExists
	} else if !errors.Is(err, sitepages.ErrPageNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	record := &Page{
		ID:           identity.PageUUID(path),
		Path:         path,
		ComponentKey: componentKey,
		Title:        strings.TrimSpace(req.Title),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("page created", "path", created.Path, "component_key", created.ComponentKey)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Page, error) {
	if id == uuid.Nil {
		return nil, sitepages.ErrPageIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByPath(ctx context.Context, path string) (*Page, error) {
	normalized, err := sitepages.NormalizePath(path)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByPath(ctx, normalized)
}

func (s *service) List(ctx context.Context) ([]*Page, error) {
	return s.repo.List(ctx)
}

// Update mutates page fields. A path change is a rename and moves the
// page's sections and seo record with it.
func (s *service) Update(ctx context.Context, req UpdatePageRequest) (*Page, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.ComponentKey != nil {
		key := strings.TrimSpace(*req.ComponentKey)
		if !sitepages.KnownComponentKey(key) {
			return nil, &ComponentKeyError{Key: key}
		}
		updated.ComponentKey = key
	}
	if req.Title != nil {
		updated.Title = strings.TrimSpace(*req.Title)
	}
	updated.UpdatedAt = s.now().UTC()

	if req.Path == nil {
		return s.repo.Update(ctx, &updated)
	}

	newPath, err := sitepages.NormalizePath(*req.Path)
	if err != nil {
		return nil, err
	}
	if newPath == current.Path {
		return s.repo.Update(ctx, &updated)
	}

	if _, err := s.repo.GetByPath(ctx, newPath); err == nil {
		return nil, sitepages.ErrPathExists
	} else if !errors.Is(err, sitepages.ErrPageNotFound) {
		return nil, err
	}

	updated.Path = newPath
	renamed, err := s.repo.Rename(ctx, &updated, current.Path)
	if err != nil {
		return nil, err
	}
	s.logger.Info("page renamed", "from", current.Path, "to", renamed.Path)
	return renamed, nil
}

func (s *service) Delete(ctx context.Context, req DeletePageRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, req.ID); err != nil {
		return err
	}
	s.logger.Info("page deleted", "id", req.ID.String())
	return nil
}

// Duplicate copies a page and its sections under a new path. A second run
// against the same target fails on the path conflict instead of stacking
// copies.
func (s *service) Duplicate(ctx context.Context, req DuplicatePageRequest) (*Page, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	source, err := s.repo.GetByID(ctx, req.SourceID)
	if err != nil {
		return nil, err
	}

	newPath, err := sitepages.NormalizePath(req.NewPath)
	if err != nil {
		return nil, err
	}
	if newPath == source.Path {
		return nil, sitepages.ErrPathExists
	}
	if _, err := s.repo.GetByPath(ctx, newPath); err == nil {
		return nil, sitepages.ErrPathExists
	} else if !errors.Is(err, sitepages.ErrPageNotFound) {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = source.Title + " (copy)"
	}

	now := s.now().UTC()
	clone := &Page{
		ID:           identity.PageUUID(newPath),
		Path:         newPath,
		ComponentKey: source.ComponentKey,
		Title:        title,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Duplicate(ctx, source, clone)
	if err != nil {
		return nil, err
	}
	s.logger.Info("page duplicated", "from", source.Path, "to", created.Path)
	return created, nil
}
