package content

import (
	"context"
	"sync"
	"time"

	sitecontent "github.com/freightwave/go-sitecms/content"
	"github.com/freightwave/go-sitecms/internal/identity"
	sitepages "github.com/freightwave/go-sitecms/pages"
	"github.com/google/uuid"
)

// pageStore is the slice of the page repository a bundle save needs to
// keep the page row in step with its sections.
type pageStore interface {
	GetByPath(ctx context.Context, path string) (*sitepages.Page, error)
	Create(ctx context.Context, record *sitepages.Page) (*sitepages.Page, error)
	Update(ctx context.Context, record *sitepages.Page) (*sitepages.Page, error)
}

// MemoryRepository is an in-memory section store used in tests and when
// no database is configured. It doubles as a path cascader so page
// renames, deletions and duplications keep sections in step.
type MemoryRepository struct {
	mu       sync.RWMutex
	sections map[uuid.UUID]*Section
	pages    pageStore
}

// MemoryOption configures the in-memory repository.
type MemoryOption func(*MemoryRepository)

// WithPageStore lets bundle saves upsert the backing page row.
func WithPageStore(store pageStore) MemoryOption {
	return func(m *MemoryRepository) {
		m.pages = store
	}
}

// AttachPageStore wires the page repository after construction. The page
// repository needs section cascades at build time, so one side of the
// cycle attaches late.
func (m *MemoryRepository) AttachPageStore(store pageStore) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages = store
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository(opts ...MemoryOption) *MemoryRepository {
	m := &MemoryRepository{
		sections: make(map[uuid.UUID]*Section),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ListByPath returns the sections stored for one page path.
func (m *MemoryRepository) ListByPath(_ context.Context, pagePath string) ([]*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Section, 0)
	for _, record := range m.sections {
		if record.PagePath == pagePath {
			out = append(out, cloneSection(record))
		}
	}
	return out, nil
}

// List returns every stored section.
func (m *MemoryRepository) List(_ context.Context) ([]*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Section, 0, len(m.sections))
	for _, record := range m.sections {
		out = append(out, cloneSection(record))
	}
	return out, nil
}

// GetByID retrieves one section.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.sections[id]
	if !ok {
		return nil, &SectionNotFoundError{Key: id.String()}
	}
	return cloneSection(record), nil
}

// Create inserts the supplied section.
func (m *MemoryRepository) Create(_ context.Context, record *Section) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneSection(record)
	m.sections[copied.ID] = copied
	return cloneSection(copied), nil
}

// Update replaces the stored section payload.
func (m *MemoryRepository) Update(_ context.Context, record *Section) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.sections[record.ID]
	if !ok {
		return nil, &SectionNotFoundError{Key: record.ID.String()}
	}

	updated := cloneSection(current)
	updated.SectionKey = record.SectionKey
	updated.Content = cloneContent(record.Content)
	updated.Images = cloneImages(record.Images)
	updated.UpdatedAt = record.UpdatedAt

	m.sections[record.ID] = updated
	return cloneSection(updated), nil
}

// Delete removes one section.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sections[id]; !ok {
		return &SectionNotFoundError{Key: id.String()}
	}
	delete(m.sections, id)
	return nil
}

// SaveBundle applies a page-editor save. Memory mode applies the steps
// sequentially under the lock; there is no transaction to roll back.
func (m *MemoryRepository) SaveBundle(ctx context.Context, page *sitepages.Page, upserts []*Section, removeIDs []uuid.UUID) ([]*Section, error) {
	if err := m.upsertPage(ctx, page); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range removeIDs {
		delete(m.sections, id)
	}

	// mirror the transactional store: a key swap or takeover evicts the
	// row currently holding the (page_path, section_key) pair
	for _, record := range upserts {
		for id, current := range m.sections {
			if id != record.ID && current.PagePath == record.PagePath && current.SectionKey == sitecontent.NormalizeSectionKey(record.SectionKey) {
				delete(m.sections, id)
			}
		}
	}

	out := make([]*Section, 0, len(upserts))
	for _, record := range upserts {
		copied := cloneSection(record)
		if current, ok := m.sections[copied.ID]; ok {
			copied.CreatedAt = current.CreatedAt
		}
		m.sections[copied.ID] = copied
		out = append(out, cloneSection(copied))
	}
	return out, nil
}

func (m *MemoryRepository) upsertPage(ctx context.Context, page *sitepages.Page) error {
	if m.pages == nil || page == nil {
		return nil
	}
	current, err := m.pages.GetByPath(ctx, page.Path)
	if err != nil {
		if _, createErr := m.pages.Create(ctx, page); createErr != nil {
			return createErr
		}
		return nil
	}
	current.Title = page.Title
	current.UpdatedAt = page.UpdatedAt
	_, err = m.pages.Update(ctx, current)
	return err
}

// CopyPath duplicates the sections of one page under a new path with
// identifiers derived from the target path.
func (m *MemoryRepository) CopyPath(_ context.Context, fromPath, toPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	for _, record := range m.sections {
		if record.PagePath != fromPath {
			continue
		}
		copied := cloneSection(record)
		copied.ID = identity.SectionUUID(toPath, sitecontent.NormalizeSectionKey(record.SectionKey))
		copied.PagePath = toPath
		copied.CreatedAt = now
		copied.UpdatedAt = now
		m.sections[copied.ID] = copied
	}
	return nil
}

// MovePath repoints sections from one page path to another.
func (m *MemoryRepository) MovePath(_ context.Context, fromPath, toPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, record := range m.sections {
		if record.PagePath == fromPath {
			record.PagePath = toPath
		}
	}
	return nil
}

// DeletePath removes every section stored under a page path.
func (m *MemoryRepository) DeletePath(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, record := range m.sections {
		if record.PagePath == path {
			delete(m.sections, id)
		}
	}
	return nil
}

func cloneSection(src *Section) *Section {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Content = cloneContent(src.Content)
	copied.Images = cloneImages(src.Images)
	return &copied
}

func cloneContent(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneImages(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
