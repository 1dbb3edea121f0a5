package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaforge-api/internal/domain"
	"github.com/phrazzld/ideaforge-api/internal/store"
)

// MockCategoryStore is an in-memory store.CategoryStore for testing.
type MockCategoryStore struct {
	// Err, when set, is returned by every method
	Err error

	mu         sync.Mutex
	categories map[uuid.UUID]*domain.Category
	order      []uuid.UUID

	// GetByIDsCalls records the ids passed to each GetByIDs call
	GetByIDsCalls [][]uuid.UUID
	// ListCalls counts List calls
	ListCalls int
}

var _ store.CategoryStore = (*MockCategoryStore)(nil)

// NewMockCategoryStore creates a store holding categories.
func NewMockCategoryStore(categories ...*domain.Category) *MockCategoryStore {
	m := &MockCategoryStore{categories: make(map[uuid.UUID]*domain.Category)}
	for _, c := range categories {
		m.categories[c.ID] = c
		m.order = append(m.order, c.ID)
	}
	return m
}

// Create implements the store.CategoryStore interface
func (m *MockCategoryStore) Create(_ context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if m.categories == nil {
		m.categories = make(map[uuid.UUID]*domain.Category)
	}
	m.categories[category.ID] = category
	m.order = append(m.order, category.ID)
	return nil
}

// List implements the store.CategoryStore interface
func (m *MockCategoryStore) List(_ context.Context) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*domain.Category, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.categories[id])
	}
	return out, nil
}

// GetByIDs implements the store.CategoryStore interface
func (m *MockCategoryStore) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetByIDsCalls = append(m.GetByIDsCalls, append([]uuid.UUID(nil), ids...))
	if m.Err != nil {
		return nil, m.Err
	}
	found := make([]*domain.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := m.categories[id]; ok {
			found = append(found, c)
		}
	}
	return store.OrderByIDs(ids, found), nil
}
