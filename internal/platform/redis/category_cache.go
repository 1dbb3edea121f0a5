package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaforge-api/internal/domain"
	"github.com/phrazzld/ideaforge-api/internal/platform/logger"
	"github.com/phrazzld/ideaforge-api/internal/store"
	gredis "github.com/redis/go-redis/v9"
)

const (
	categoryKeyPrefix = "ideaforge:category:"
	categoryListKey   = "ideaforge:categories:all"
)

// CachingCategoryStore wraps a store.CategoryStore with a Redis cache.
// Redis failures are logged and the wrapped store is used instead; the cache
// never turns a successful lookup into an error.
type CachingCategoryStore struct {
	next   store.CategoryStore
	rdb    gredis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachingCategoryStore creates a cache in front of next. Entries expire
// after ttl.
func NewCachingCategoryStore(
	next store.CategoryStore,
	rdb gredis.Cmdable,
	ttl time.Duration,
	logger *slog.Logger,
) *CachingCategoryStore {
	if next == nil {
		panic("next store cannot be nil")
	}
	if rdb == nil {
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CachingCategoryStore{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "category_cache")),
	}
}

var _ store.CategoryStore = (*CachingCategoryStore)(nil)

func categoryKey(id uuid.UUID) string {
	return categoryKeyPrefix + id.String()
}

// Create writes through to the wrapped store and drops the cached list.
func (c *CachingCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if err := c.next.Create(ctx, category); err != nil {
		return err
	}

	if err := c.rdb.Del(ctx, categoryListKey).Err(); err != nil {
		logger.FromContextOrDefault(ctx, c.logger).Warn("failed to invalidate category list cache",
			slog.String("error", err.Error()))
	}
	return nil
}

// List serves the full category list from cache when present.
func (c *CachingCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	raw, err := c.rdb.Get(ctx, categoryListKey).Bytes()
	switch {
	case err == nil:
		var categories []*domain.Category
		if jsonErr := json.Unmarshal(raw, &categories); jsonErr == nil {
			log.Debug("category list cache hit")
			return categories, nil
		}
		log.Warn("discarding undecodable category list cache entry")
	case !errors.Is(err, gredis.Nil):
		log.Warn("category list cache read failed", slog.String("error", err.Error()))
	}

	categories, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, jsonErr := json.Marshal(categories); jsonErr == nil {
		if setErr := c.rdb.Set(ctx, categoryListKey, encoded, c.ttl).Err(); setErr != nil {
			log.Warn("category list cache write failed", slog.String("error", setErr.Error()))
		}
	}
	return categories, nil
}

// GetByIDs serves cached categories and fetches the rest from the wrapped
// store, caching what it finds.
func (c *CachingCategoryStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Category, error) {
	if len(ids) == 0 {
		return []*domain.Category{}, nil
	}

	log := logger.FromContextOrDefault(ctx, c.logger)
	unique := store.UniqueIDs(ids)

	found := make([]*domain.Category, 0, len(unique))
	misses := unique

	keys := make([]string, len(unique))
	for i, id := range unique {
		keys[i] = categoryKey(id)
	}

	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		log.Warn("category cache read failed", slog.String("error", err.Error()))
	} else {
		misses = make([]uuid.UUID, 0, len(unique))
		for i, v := range values {
			if category := decodeCategory(v); category != nil {
				found = append(found, category)
				continue
			}
			misses = append(misses, unique[i])
		}
	}

	log.Debug("category cache lookup",
		slog.Int("requested", len(unique)),
		slog.Int("hits", len(found)),
		slog.Int("misses", len(misses)))

	if len(misses) > 0 {
		fetched, err := c.next.GetByIDs(ctx, misses)
		if err != nil {
			return nil, err
		}
		c.store(ctx, log, fetched)
		found = append(found, fetched...)
	}

	return store.OrderByIDs(ids, found), nil
}

func (c *CachingCategoryStore) store(ctx context.Context, log *slog.Logger, categories []*domain.Category) {
	if len(categories) == 0 {
		return
	}

	pipe := c.rdb.Pipeline()
	for _, category := range categories {
		encoded, err := json.Marshal(category)
		if err != nil {
			continue
		}
		pipe.Set(ctx, categoryKey(category.ID), encoded, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn("category cache write failed", slog.String("error", err.Error()))
	}
}

func decodeCategory(v interface{}) *domain.Category {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	var category domain.Category
	if err := json.Unmarshal([]byte(s), &category); err != nil || category.ID == uuid.Nil {
		return nil
	}
	return &category
}
