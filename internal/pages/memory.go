package pages

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory page store used in tests and when no
// database is configured. Dependent stores registered as cascaders follow
// path changes, which is best effort rather than transactional.
type MemoryRepository struct {
	mu        sync.RWMutex
	pages     map[uuid.UUID]*Page
	pathIndex map[string]uuid.UUID
	cascades  []PathCascader
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository(cascades ...PathCascader) *MemoryRepository {
	return &MemoryRepository{
		pages:     make(map[uuid.UUID]*Page),
		pathIndex: make(map[string]uuid.UUID),
		cascades:  cascades,
	}
}

// Create inserts the supplied page.
func (m *MemoryRepository) Create(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePage(record)
	m.pages[copied.ID] = copied
	m.pathIndex[copied.Path] = copied.ID
	return clonePage(copied), nil
}

// GetByID retrieves a page by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	page, ok := m.pages[id]
	if !ok {
		return nil, &PageNotFoundError{Key: id.String()}
	}
	return clonePage(page), nil
}

// GetByPath retrieves a page by its route path.
func (m *MemoryRepository) GetByPath(_ context.Context, path string) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.pathIndex[path]
	if !ok {
		return nil, &PageNotFoundError{Key: path}
	}
	return clonePage(m.pages[id]), nil
}

// List returns every page ordered by path.
func (m *MemoryRepository) List(_ context.Context) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Page, 0, len(m.pages))
	for _, record := range m.pages {
		out = append(out, clonePage(record))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Update persists metadata changes without touching the path.
func (m *MemoryRepository) Update(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.pages[record.ID]
	if !ok {
		return nil, &PageNotFoundError{Key: record.ID.String()}
	}

	updated := clonePage(current)
	updated.ComponentKey = record.ComponentKey
	updated.Title = record.Title
	updated.UpdatedAt = record.UpdatedAt

	m.pages[record.ID] = updated
	return clonePage(updated), nil
}

// Rename moves a page to a new path and drags dependent rows along.
func (m *MemoryRepository) Rename(ctx context.Context, record *Page, oldPath string) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.pages[record.ID]
	if !ok {
		return nil, &PageNotFoundError{Key: record.ID.String()}
	}

	updated := clonePage(current)
	updated.Path = record.Path
	updated.ComponentKey = record.ComponentKey
	updated.Title = record.Title
	updated.UpdatedAt = record.UpdatedAt

	delete(m.pathIndex, oldPath)
	m.pages[record.ID] = updated
	m.pathIndex[updated.Path] = record.ID

	for _, cascade := range m.cascades {
		if err := cascade.MovePath(ctx, oldPath, updated.Path); err != nil {
			return nil, err
		}
	}
	return clonePage(updated), nil
}

// Delete removes the page and its dependent rows.
func (m *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.pages[id]
	if !ok {
		return &PageNotFoundError{Key: id.String()}
	}

	delete(m.pages, id)
	delete(m.pathIndex, record.Path)

	for _, cascade := range m.cascades {
		if err := cascade.DeletePath(ctx, record.Path); err != nil {
			return err
		}
	}
	return nil
}

// Duplicate inserts the clone and copies the source's dependent rows.
func (m *MemoryRepository) Duplicate(ctx context.Context, source *Page, clone *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.pages[source.ID]; !ok {
		return nil, &PageNotFoundError{Key: source.ID.String()}
	}

	copied := clonePage(clone)
	m.pages[copied.ID] = copied
	m.pathIndex[copied.Path] = copied.ID

	for _, cascade := range m.cascades {
		if err := cascade.CopyPath(ctx, source.Path, copied.Path); err != nil {
			return nil, err
		}
	}
	return clonePage(copied), nil
}

func clonePage(src *Page) *Page {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}
