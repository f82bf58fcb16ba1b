package store

import (
	"sort"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/srcweave/srcweave/pkg/types"
)

// MemoryStore implements Store with a map. Used for tests and for the
// streaming server, which never needs pages on disk.
type MemoryStore struct {
	mu    sync.RWMutex
	pages map[string]*types.Page
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{pages: make(map[string]*types.Page)}
}

// PutPage stores a copy of p.
func (m *MemoryStore) PutPage(p *types.Page) error {
	if err := validatePath(p.Path); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pages[p.Path] = clonePage(p, true)
	return nil
}

// GetPage retrieves a page.
func (m *MemoryStore) GetPage(path string) (*types.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.pages[path]
	if !ok {
		return nil, errors.Wrapf(ErrPageNotFound, "%s", path)
	}
	return clonePage(p, true), nil
}

// ListPages returns page metadata ordered by path.
func (m *MemoryStore) ListPages() ([]*types.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*types.Page, 0, len(m.pages))
	for _, p := range m.pages {
		result = append(result, clonePage(p, false))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result, nil
}

// PageExists reports whether path is stored.
func (m *MemoryStore) PageExists(path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.pages[path]
	return ok, nil
}

// Close is a no-op for the memory store.
func (m *MemoryStore) Close() error {
	return nil
}
