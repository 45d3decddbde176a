package seo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/freightwave/go-sitecms/internal/identity"
	"github.com/freightwave/go-sitecms/internal/logging"
	sitepages "github.com/freightwave/go-sitecms/pages"
	"github.com/freightwave/go-sitecms/pkg/interfaces"
	siteseo "github.com/freightwave/go-sitecms/seo"
	"github.com/google/uuid"
)

// LegacySource reads old-style seo payloads out of content sections. It is
// consulted only when the canonical store has no record for a path.
type LegacySource interface {
	LegacySEO(ctx context.Context, path string) (*Record, bool, error)
}

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

// WithLegacySource enables the legacy seo-section fallback during Resolve.
func WithLegacySource(source LegacySource) ServiceOption {
	return func(s *service) {
		s.legacy = source
	}
}

type service struct {
	repo   Repository
	legacy LegacySource
	now    func() time.Time
	logger interfaces.Logger
}

// NewService constructs the seo service.
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

func (s *service) GetByPath(ctx context.Context, path string) (*Record, error) {
	normalized, err := sitepages.NormalizePath(path)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByPath(ctx, normalized)
}

func (s *service) List(ctx context.Context) ([]*Record, error) {
	return s.repo.List(ctx)
}

// Upsert writes the override record for a path. The identifier derives
// from the path so repeated saves converge on one row.
func (s *service) Upsert(ctx context.Context, req UpsertRecordRequest) (*Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	path, err := sitepages.NormalizePath(req.Path)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := &Record{
		ID:          identity.SEOUUID(path),
		Path:        path,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Keywords:    strings.TrimSpace(req.Keywords),
		Image:       strings.TrimSpace(req.Image),
		Canonical:   strings.TrimSpace(req.Canonical),
		ExtraMeta:   req.ExtraMeta,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	saved, err := s.repo.Upsert(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("seo record saved", "path", path)
	return saved, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return siteseo.ErrPathRequired
	}
	return s.repo.Delete(ctx, id)
}

// Resolve merges defaults with the stored override for path. When no
// record exists the legacy seo section is consulted before falling back to
// defaults alone. Cancellation aborts resolution so stale navigations
// never apply their head state.
func (s *service) Resolve(ctx context.Context, path string, defaults Defaults) (Metadata, error) {
	if err := ctx.Err(); err != nil {
		return Metadata{}, err
	}

	normalized, err := sitepages.NormalizePath(path)
	if err != nil {
		return Metadata{}, err
	}

	record, err := s.repo.GetByPath(ctx, normalized)
	if err != nil {
		if !errors.Is(err, siteseo.ErrRecordNotFound) {
			return Metadata{}, err
		}
		record = nil
	}

	if record == nil && s.legacy != nil {
		legacy, found, legacyErr := s.legacy.LegacySEO(ctx, normalized)
		if legacyErr != nil {
			return Metadata{}, legacyErr
		}
		if found {
			record = legacy
		}
	}

	if err := ctx.Err(); err != nil {
		return Metadata{}, err
	}
	return siteseo.Merge(defaults, record), nil
}
