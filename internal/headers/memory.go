package headers

import (
	"context"
	"sort"
	"sync"

	siteheaders "github.com/freightwave/go-sitecms/headers"
	"github.com/google/uuid"
)

// MemoryRepository is an in-memory header store used in tests and when no
// database is configured.
type MemoryRepository struct {
	mu      sync.RWMutex
	headers map[uuid.UUID]*Config
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		headers: make(map[uuid.UUID]*Config),
	}
}

// List returns every header variant ordered by name.
func (m *MemoryRepository) List(_ context.Context) ([]*Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Config, 0, len(m.headers))
	for _, record := range m.headers {
		out = append(out, cloneConfig(record))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetByID retrieves one header variant.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.headers[id]
	if !ok {
		return nil, &HeaderNotFoundError{Key: id.String()}
	}
	return cloneConfig(record), nil
}

// Active returns the currently active variant.
func (m *MemoryRepository) Active(_ context.Context) (*Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.headers {
		if record.IsActive {
			return cloneConfig(record), nil
		}
	}
	return nil, siteheaders.ErrNoActiveHeader
}

// Create inserts the supplied variant.
func (m *MemoryRepository) Create(_ context.Context, record *Config) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneConfig(record)
	m.headers[copied.ID] = copied
	return cloneConfig(copied), nil
}

// Update replaces name and content for a variant.
func (m *MemoryRepository) Update(_ context.Context, record *Config) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.headers[record.ID]
	if !ok {
		return nil, &HeaderNotFoundError{Key: record.ID.String()}
	}

	updated := cloneConfig(current)
	updated.Name = record.Name
	updated.Content = record.Content
	updated.UpdatedAt = record.UpdatedAt

	m.headers[record.ID] = updated
	return cloneConfig(updated), nil
}

// Delete removes one variant.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.headers[id]; !ok {
		return &HeaderNotFoundError{Key: id.String()}
	}
	delete(m.headers, id)
	return nil
}

// Activate marks one variant active and every other variant inactive.
func (m *MemoryRepository) Activate(_ context.Context, id uuid.UUID) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, ok := m.headers[id]
	if !ok {
		return nil, &HeaderNotFoundError{Key: id.String()}
	}

	for _, record := range m.headers {
		record.IsActive = record.ID == id
	}
	return cloneConfig(target), nil
}

func cloneConfig(src *Config) *Config {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Content.NavLinks != nil {
		copied.Content.NavLinks = append([]NavLink{}, src.Content.NavLinks...)
	}
	if src.Content.CTA != nil {
		cta := *src.Content.CTA
		copied.Content.CTA = &cta
	}
	return &copied
}
