package locations

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory location store used in tests and when
// no database is configured.
type MemoryRepository struct {
	mu        sync.RWMutex
	locations map[uuid.UUID]*Location
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		locations: make(map[uuid.UUID]*Location),
	}
}

// List returns every location in display order. Entries without an
// explicit order sort after the ordered ones, by country then city.
func (m *MemoryRepository) List(_ context.Context) ([]*Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Location, 0, len(m.locations))
	for _, record := range m.locations {
		out = append(out, cloneLocation(record))
	}
	sortLocations(out)
	return out, nil
}

// GetByID retrieves one location.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.locations[id]
	if !ok {
		return nil, &LocationNotFoundError{Key: id.String()}
	}
	return cloneLocation(record), nil
}

// Create inserts the supplied location.
func (m *MemoryRepository) Create(_ context.Context, record *Location) (*Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneLocation(record)
	m.locations[copied.ID] = copied
	return cloneLocation(copied), nil
}

// Update replaces the stored location fields.
func (m *MemoryRepository) Update(_ context.Context, record *Location) (*Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.locations[record.ID]; !ok {
		return nil, &LocationNotFoundError{Key: record.ID.String()}
	}

	copied := cloneLocation(record)
	m.locations[record.ID] = copied
	return cloneLocation(copied), nil
}

// Delete removes one location.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.locations[id]; !ok {
		return &LocationNotFoundError{Key: id.String()}
	}
	delete(m.locations, id)
	return nil
}

// Reorder assigns display_order following the supplied id sequence.
func (m *MemoryRepository) Reorder(_ context.Context, ids []uuid.UUID) ([]*Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for position, id := range ids {
		record, ok := m.locations[id]
		if !ok {
			return nil, &LocationNotFoundError{Key: id.String()}
		}
		order := position
		record.DisplayOrder = &order
	}

	out := make([]*Location, 0, len(m.locations))
	for _, record := range m.locations {
		out = append(out, cloneLocation(record))
	}
	sortLocations(out)
	return out, nil
}

func sortLocations(out []*Location) {
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := out[i].DisplayOrder, out[j].DisplayOrder
		switch {
		case oi != nil && oj != nil && *oi != *oj:
			return *oi < *oj
		case oi != nil && oj == nil:
			return true
		case oi == nil && oj != nil:
			return false
		}
		if out[i].CountryName != out[j].CountryName {
			return out[i].CountryName < out[j].CountryName
		}
		return out[i].CityName < out[j].CityName
	})
}

func cloneLocation(src *Location) *Location {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Contacts != nil {
		copied.Contacts = append([]string{}, src.Contacts...)
	}
	if src.Latitude != nil {
		lat := *src.Latitude
		copied.Latitude = &lat
	}
	if src.Longitude != nil {
		lng := *src.Longitude
		copied.Longitude = &lng
	}
	if src.DisplayOrder != nil {
		order := *src.DisplayOrder
		copied.DisplayOrder = &order
	}
	return &copied
}
