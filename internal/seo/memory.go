package seo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/freightwave/go-sitecms/internal/identity"
	"github.com/google/uuid"
)

// MemoryRepository is an in-memory seo store used in tests and when no
// database is configured. It doubles as a path cascader so page renames,
// deletions and duplications keep the record in step.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Record
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[uuid.UUID]*Record),
	}
}

// GetByPath retrieves the record for a path.
func (m *MemoryRepository) GetByPath(_ context.Context, path string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.records {
		if record.Path == path {
			return cloneRecord(record), nil
		}
	}
	return nil, &RecordNotFoundError{Path: path}
}

// List returns every record ordered by path.
func (m *MemoryRepository) List(_ context.Context) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Record, 0, len(m.records))
	for _, record := range m.records {
		out = append(out, cloneRecord(record))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Upsert replaces the record stored for the path.
func (m *MemoryRepository) Upsert(_ context.Context, record *Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneRecord(record)
	if current, ok := m.records[copied.ID]; ok {
		copied.CreatedAt = current.CreatedAt
	}
	m.records[copied.ID] = copied
	return cloneRecord(copied), nil
}

// Delete removes one record.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return &RecordNotFoundError{Path: id.String()}
	}
	delete(m.records, id)
	return nil
}

// CopyPath duplicates a path's record under a new path.
func (m *MemoryRepository) CopyPath(_ context.Context, fromPath, toPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, record := range m.records {
		if record.Path != fromPath {
			continue
		}
		copied := cloneRecord(record)
		copied.ID = identity.SEOUUID(toPath)
		copied.Path = toPath
		now := time.Now().UTC()
		copied.CreatedAt = now
		copied.UpdatedAt = now
		m.records[copied.ID] = copied
		return nil
	}
	return nil
}

// MovePath repoints a record from one path to another.
func (m *MemoryRepository) MovePath(_ context.Context, fromPath, toPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, record := range m.records {
		if record.Path == fromPath {
			record.Path = toPath
		}
	}
	return nil
}

// DeletePath removes the record stored under a path.
func (m *MemoryRepository) DeletePath(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, record := range m.records {
		if record.Path == path {
			delete(m.records, id)
		}
	}
	return nil
}

func cloneRecord(src *Record) *Record {
	if src == nil {
		return nil
	}
	copied := *src
	if src.ExtraMeta != nil {
		copied.ExtraMeta = make(map[string]string, len(src.ExtraMeta))
		for k, v := range src.ExtraMeta {
			copied.ExtraMeta[k] = v
		}
	}
	return &copied
}
