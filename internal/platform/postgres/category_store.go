package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaforge-api/internal/domain"
	"github.com/phrazzld/ideaforge-api/internal/platform/logger"
	"github.com/phrazzld/ideaforge-api/internal/store"
)

const categoryColumns = `id, name, COALESCE(description, ''), COALESCE(ai_prompt_context, ''), created_at`

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL category store.
// If logger is nil, a default logger will be used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// Create implements store.CategoryStore.Create
func (s *PostgresCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		log.Warn("category validation failed during create",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO categories (id, name, description, ai_prompt_context, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.AIPromptContext,
		category.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create category",
			slog.String("error", err.Error()),
			slog.String("category_id", category.ID.String()))
		return MapUniqueViolation(err, store.ErrCategoryNameExists)
	}

	log.Info("category created",
		slog.String("category_id", category.ID.String()),
		slog.String("name", category.Name))
	return nil
}

// List implements store.CategoryStore.List
func (s *PostgresCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		log.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, store.NewStoreError("category", "list", "query failed", MapError(err))
	}

	categories, err := scanCategories(rows)
	if err != nil {
		log.Error("failed to read categories", slog.String("error", err.Error()))
		return nil, store.NewStoreError("category", "list", "scan failed", MapError(err))
	}

	log.Debug("categories listed", slog.Int("count", len(categories)))
	return categories, nil
}

// GetByIDs implements store.CategoryStore.GetByIDs
func (s *PostgresCategoryStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Category, error) {
	if len(ids) == 0 {
		return []*domain.Category{}, nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	unique := store.UniqueIDs(ids)
	params := make([]string, len(unique))
	for i, id := range unique {
		params[i] = id.String()
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ANY($1::uuid[])`, params)
	if err != nil {
		log.Error("failed to fetch categories", slog.String("error", err.Error()))
		return nil, store.NewStoreError("category", "get_by_ids", "query failed", MapError(err))
	}

	categories, err := scanCategories(rows)
	if err != nil {
		log.Error("failed to read categories", slog.String("error", err.Error()))
		return nil, store.NewStoreError("category", "get_by_ids", "scan failed", MapError(err))
	}

	log.Debug("categories fetched",
		slog.Int("requested", len(unique)),
		slog.Int("found", len(categories)))
	return store.OrderByIDs(ids, categories), nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

func scanCategories(rows rowScanner) ([]*domain.Category, error) {
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.AIPromptContext, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}
