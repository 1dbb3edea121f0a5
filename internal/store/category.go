package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaforge-api/internal/domain"
)

// CategoryStore defines the interface for category lookup and persistence.
type CategoryStore interface {
	// Create saves a new category.
	// Returns ErrInvalidEntity if the category fails validation and
	// ErrCategoryNameExists if the name is taken.
	Create(ctx context.Context, category *domain.Category) error

	// List returns every category ordered by name.
	List(ctx context.Context) ([]*domain.Category, error)

	// GetByIDs returns the categories with the given IDs in the order the IDs
	// were given. Unknown IDs are skipped and duplicates collapse to their
	// first position. An empty ids slice yields an empty result without I/O.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Category, error)
}

// OrderByIDs arranges categories to follow ids, dropping categories not in
// ids and collapsing duplicate ids.
func OrderByIDs(ids []uuid.UUID, categories []*domain.Category) []*domain.Category {
	byID := make(map[uuid.UUID]*domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	ordered := make([]*domain.Category, 0, len(categories))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered
}

// UniqueIDs returns ids without duplicates, keeping first occurrences.
func UniqueIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
