package headers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	siteheaders "github.com/freightwave/go-sitecms/headers"
	"github.com/freightwave/go-sitecms/internal/logging"
	"github.com/freightwave/go-sitecms/internal/validation"
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

// WithIDGenerator overrides identifier generation, used by tests.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

type service struct {
	repo      Repository
	validator *validation.PayloadValidator
	now       func() time.Time
	id        func() uuid.UUID
	logger    interfaces.Logger
}

// NewService constructs the header service. Content payloads are checked
// against the header schema before any write.
func NewService(repo Repository, opts ...ServiceOption) (Service, error) {
	validator, err := validation.NewPayloadValidator("headers.json", siteheaders.ContentSchema)
	if err != nil {
		return nil, fmt.Errorf("headers: compile content schema: %w", err)
	}

	s := &service{
		repo:      repo,
		validator: validator,
		now:       time.Now,
		id:        uuid.New,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) List(ctx context.Context) ([]*Config, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Config, error) {
	if id == uuid.Nil {
		return nil, siteheaders.ErrIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Active(ctx context.Context) (*Config, error) {
	return s.repo.Active(ctx)
}

// Create registers a new variant, inactive until explicitly activated.
func (s *service) Create(ctx context.Context, req CreateConfigRequest) (*Config, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.validateContent(req.Content); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := &Config{
		ID:        s.id(),
		Name:      strings.TrimSpace(req.Name),
		Content:   req.Content,
		IsActive:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("header created", "name", created.Name)
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdateConfigRequest) (*Config, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Content != nil {
		if err := s.validateContent(*req.Content); err != nil {
			return nil, err
		}
		updated.Content = *req.Content
	}
	updated.UpdatedAt = s.now().UTC()

	return s.repo.Update(ctx, &updated)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return siteheaders.ErrIDRequired
	}
	return s.repo.Delete(ctx, id)
}

// Activate makes one variant the site header and deactivates the rest.
func (s *service) Activate(ctx context.Context, id uuid.UUID) (*Config, error) {
	if id == uuid.Nil {
		return nil, siteheaders.ErrIDRequired
	}
	activated, err := s.repo.Activate(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("header activated", "name", activated.Name)
	return activated, nil
}

func (s *service) validateContent(content Content) error {
	if err := s.validator.Validate(content); err != nil {
		var payloadErr *validation.PayloadError
		if errors.As(err, &payloadErr) {
			return fmt.Errorf("%w: %s", siteheaders.ErrContentInvalid, payloadErr.Error())
		}
		return fmt.Errorf("%w: %v", siteheaders.ErrContentInvalid, err)
	}
	return nil
}
