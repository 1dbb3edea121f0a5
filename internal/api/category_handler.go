package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/ideaforge-api/internal/api/shared"
	"github.com/phrazzld/ideaforge-api/internal/store"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories store.CategoryStore, logger *slog.Logger) *CategoryHandler {
	if categories == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("categories cannot be nil for CategoryHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryHandler{
		categories: categories,
		logger:     logger.With(slog.String("component", "category_handler")),
	}
}

// ListCategories handles GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load categories")
		return
	}

	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			HasContext:  c.AIPromptContext != "",
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, out)
}
