package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/ideaforge-api/internal/api/shared"
	"github.com/phrazzld/ideaforge-api/internal/domain"
	"github.com/phrazzld/ideaforge-api/internal/generation"
	"github.com/phrazzld/ideaforge-api/internal/platform/logger"
	"github.com/phrazzld/ideaforge-api/internal/store"
)

// IdeaGenerator is the generation pipeline as seen by the HTTP layer.
type IdeaGenerator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Result, error)
	ConstructPrompt(req generation.Request) string
	ConfigReport() generation.ConfigReport
	TestConnection(ctx context.Context) generation.ConnectionReport
}

var _ IdeaGenerator = (*generation.Service)(nil)

// GenerationHandler handles the /api/ai endpoints.
type GenerationHandler struct {
	generator  IdeaGenerator
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewGenerationHandler creates a new GenerationHandler
func NewGenerationHandler(
	generator IdeaGenerator,
	categories store.CategoryStore,
	logger *slog.Logger,
) *GenerationHandler {
	if generator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("generator cannot be nil for GenerationHandler")
	}
	if categories == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("categories cannot be nil for GenerationHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GenerationHandler{
		generator:  generator,
		categories: categories,
		logger:     logger.With(slog.String("component", "generation_handler")),
	}
}

// GenerateIdeas handles POST /api/ai/generate-ideas
func (h *GenerationHandler) GenerateIdeas(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req IdeaRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	categories, ok := h.loadCategories(w, r, &req)
	if !ok {
		return
	}

	result, err := h.generator.Generate(r.Context(), generation.Request{
		Prompt:     req.Prompt,
		Categories: toGenerationCategories(categories),
		Options:    req.GenerationOptions(),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate ideas")
		return
	}

	subject, _ := shared.GetSubject(r.Context())
	log.Info("ideas generated",
		"subject", subject,
		"model", result.Metadata.Model,
		"categories", len(categories),
		"prompt_length", len(req.Prompt))

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateIdeasResponse{
		Success:    true,
		Data:       result,
		Prompt:     req.Prompt,
		Categories: summarize(categories),
	})
}

// ConstructPrompt handles POST /api/ai/construct-prompt. It builds the
// provider prompt without calling the provider.
func (h *GenerationHandler) ConstructPrompt(w http.ResponseWriter, r *http.Request) {
	var req IdeaRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := req.validateStructure(); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	categories, ok := h.loadCategories(w, r, &req)
	if !ok {
		return
	}

	options := req.GenerationOptions()
	prompt := h.generator.ConstructPrompt(generation.Request{
		Prompt:     req.Prompt,
		Categories: toGenerationCategories(categories),
		Options:    options,
	})

	shared.RespondWithJSON(w, r, http.StatusOK, ConstructPromptResponse{
		Success:           true,
		OriginalPrompt:    req.Prompt,
		ConstructedPrompt: prompt,
		Categories:        summarize(categories),
		Options:           options,
	})
}

// TestConnection handles POST /api/ai/test-connection
func (h *GenerationHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	report := h.generator.TestConnection(r.Context())
	if !report.Success {
		log.Warn("AI provider connection test failed", "kind", report.Kind, "error", report.Error)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// GetConfig handles GET /api/ai/config
func (h *GenerationHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.generator.ConfigReport())
}

// loadCategories resolves the requested category ids. It writes the error
// response itself and reports false when the request cannot proceed.
func (h *GenerationHandler) loadCategories(
	w http.ResponseWriter,
	r *http.Request,
	req *IdeaRequest,
) ([]*domain.Category, bool) {
	ids, err := req.ParsedCategoryIDs()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return nil, false
	}
	if len(ids) == 0 {
		return nil, true
	}

	categories, err := h.categories.GetByIDs(r.Context(), ids)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load categories")
		return nil, false
	}
	return categories, true
}
