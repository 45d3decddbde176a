package locations

import (
	"context"
	"strings"
	"time"

	"github.com/freightwave/go-sitecms/internal/logging"
	sitelocations "github.com/freightwave/go-sitecms/locations"
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
	repo   Repository
	now    func() time.Time
	id     func() uuid.UUID
	logger interfaces.Logger
}

// NewService constructs the location service.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) List(ctx context.Context) ([]*Location, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Location, error) {
	if id == uuid.Nil {
		return nil, sitelocations.ErrIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req CreateLocationRequest) (*Location, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := &Location{
		ID:           s.id(),
		CountryCode:  strings.ToUpper(strings.TrimSpace(req.CountryCode)),
		CountryName:  strings.TrimSpace(req.CountryName),
		CityName:     strings.TrimSpace(req.CityName),
		Address:      strings.TrimSpace(req.Address),
		Contacts:     req.Contacts,
		Email:        strings.TrimSpace(req.Email),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		DisplayOrder: req.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("location created", "country", created.CountryCode, "city", created.CityName)
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdateLocationRequest) (*Location, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.CountryCode != nil {
		updated.CountryCode = strings.ToUpper(strings.TrimSpace(*req.CountryCode))
	}
	if req.CountryName != nil {
		updated.CountryName = strings.TrimSpace(*req.CountryName)
	}
	if req.CityName != nil {
		updated.CityName = strings.TrimSpace(*req.CityName)
	}
	if req.Address != nil {
		updated.Address = strings.TrimSpace(*req.Address)
	}
	if req.Contacts != nil {
		updated.Contacts = req.Contacts
	}
	if req.Email != nil {
		updated.Email = strings.TrimSpace(*req.Email)
	}
	if req.Latitude != nil {
		updated.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		updated.Longitude = req.Longitude
	}
	if req.DisplayOrder != nil {
		updated.DisplayOrder = req.DisplayOrder
	}
	updated.UpdatedAt = s.now().UTC()

	return s.repo.Update(ctx, &updated)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return sitelocations.ErrIDRequired
	}
	return s.repo.Delete(ctx, id)
}

// Reorder validates that ids name every stored location exactly once, then
// rewrites the display order in one transaction.
func (s *service) Reorder(ctx context.Context, ids []uuid.UUID) ([]*Location, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) != len(existing) {
		return nil, sitelocations.ErrReorderIncomplete
	}

	known := make(map[uuid.UUID]bool, len(existing))
	for _, record := range existing {
		known[record.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !known[id] || seen[id] {
			return nil, sitelocations.ErrReorderIncomplete
		}
		seen[id] = true
	}

	ordered, err := s.repo.Reorder(ctx, ids)
	if err != nil {
		return nil, err
	}
	s.logger.Info("locations reordered", "count", len(ids))
	return ordered, nil
}
