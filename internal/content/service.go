package content

import (
	"context"
	"strings"
	"time"

	sitecontent "github.com/freightwave/go-sitecms/content"
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

// NewService constructs the content section service.
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

// ListByPath returns a page's sections in canonical order.
func (s *service) ListByPath(ctx context.Context, pagePath string) ([]*Section, error) {
	path, err := sitepages.NormalizePath(pagePath)
	if err != nil {
		return nil, err
	}
	sections, err := s.repo.ListByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	sitecontent.SortCanonical(sections)
	return sections, nil
}

func (s *service) List(ctx context.Context) ([]*Section, error) {
	sections, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sitecontent.SortCanonical(sections)
	return sections, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Section, error) {
	if id == uuid.Nil {
		return nil, sitecontent.ErrSectionIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

// Create adds a single section. The identifier derives from the page path
// and section key so re-creating the same section is idempotent at the id
// level.
func (s *service) Create(ctx context.Context, req CreateSectionRequest) (*Section, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	path, err := sitepages.NormalizePath(req.PagePath)
	if err != nil {
		return nil, err
	}
	key := sitecontent.NormalizeSectionKey(req.SectionKey)

	existing, err := s.repo.ListByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	for _, section := range existing {
		if sitecontent.NormalizeSectionKey(section.SectionKey) == key {
			return nil, &DuplicateSectionKeyError{PagePath: path, SectionKey: key}
		}
	}

	now := s.now().UTC()
	record := &Section{
		ID:         identity.SectionUUID(path, key),
		PagePath:   path,
		SectionKey: key,
		Content:    req.Content,
		Images:     req.Images,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if record.Content == nil {
		record.Content = map[string]any{}
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("section created", "page_path", path, "section_key", key)
	return created, nil
}

// Update mutates one section. A key change is checked against the page's
// other sections before any write.
func (s *service) Update(ctx context.Context, req UpdateSectionRequest) (*Section, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.SectionKey != nil {
		key := sitecontent.NormalizeSectionKey(*req.SectionKey)
		if key != sitecontent.NormalizeSectionKey(current.SectionKey) {
			siblings, err := s.repo.ListByPath(ctx, current.PagePath)
			if err != nil {
				return nil, err
			}
			for _, section := range siblings {
				if section.ID != current.ID && sitecontent.NormalizeSectionKey(section.SectionKey) == key {
					return nil, &DuplicateSectionKeyError{PagePath: current.PagePath, SectionKey: key}
				}
			}
		}
		updated.SectionKey = key
	}
	if req.Content != nil {
		updated.Content = req.Content
	}
	if req.Images != nil {
		updated.Images = req.Images
	}
	updated.UpdatedAt = s.now().UTC()

	return s.repo.Update(ctx, &updated)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return sitecontent.ErrSectionIDRequired
	}
	return s.repo.Delete(ctx, id)
}

// SaveBundle is the page editor's save workflow. The request is validated
// in full before any write: duplicate section keys reject the whole save.
// Sections absent from the edited set but present in the pristine set are
// deleted; kept sections are upserted, never deleted and re-created.
func (s *service) SaveBundle(ctx context.Context, req SaveBundleRequest) (*BundleResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	path, err := sitepages.NormalizePath(req.PagePath)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	upserts := make([]*Section, 0, len(req.Sections))
	for _, input := range req.Sections {
		key := sitecontent.NormalizeSectionKey(input.SectionKey)
		record := &Section{
			PagePath:   path,
			SectionKey: key,
			Content:    input.Content,
			Images:     input.Images,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if input.ID != nil && *input.ID != uuid.Nil {
			record.ID = *input.ID
		} else {
			record.ID = identity.SectionUUID(path, key)
		}
		if record.Content == nil {
			record.Content = map[string]any{}
		}
		upserts = append(upserts, record)
	}

	page := &sitepages.Page{
		ID:           identity.PageUUID(path),
		Path:         path,
		ComponentKey: sitepages.ComponentDynamic,
		Title:        strings.TrimSpace(req.PageTitle),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	removed := req.RemovedIDs()
	sections, err := s.repo.SaveBundle(ctx, page, upserts, removed)
	if err != nil {
		return nil, err
	}
	sitecontent.SortCanonical(sections)

	s.logger.Info("bundle saved",
		"page_path", path,
		"sections", len(upserts),
		"removed", len(removed),
	)
	return &BundleResult{PagePath: path, Sections: sections}, nil
}
