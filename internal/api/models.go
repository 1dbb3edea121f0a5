package api

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaforge-api/internal/api/shared"
	"github.com/phrazzld/ideaforge-api/internal/domain"
	"github.com/phrazzld/ideaforge-api/internal/generation"
)

// MaxPromptLength is the longest accepted user prompt, in characters.
const MaxPromptLength = 1000

// Fixed client-facing validation messages.
const (
	msgPromptRequired     = "Prompt is required and must be a non-empty string"
	msgPromptTooLong      = "Prompt must be less than 1000 characters"
	msgInvalidCategoryIDs = "Invalid category IDs provided"
)

// requestError is a validation failure whose message is safe to return as is.
type requestError struct {
	message string
}

func (e *requestError) Error() string { return e.message }

// IdeaOptions mirrors generation.Options on the wire.
type IdeaOptions struct {
	MaxIdeas          int    `json:"max_ideas,omitempty"          validate:"omitempty,min=1,max=20"`
	CreativityLevel   string `json:"creativity_level,omitempty"   validate:"omitempty,oneof=conservative balanced creative"`
	Format            string `json:"format,omitempty"             validate:"omitempty,oneof=structured bullet paragraph"`
	IncludeCategories *bool  `json:"include_categories,omitempty"`
}

// IdeaRequest is the body of POST /api/ai/generate-ideas and
// POST /api/ai/construct-prompt.
type IdeaRequest struct {
	Prompt      string       `json:"prompt"                 validate:"required"`
	CategoryIDs []string     `json:"category_ids,omitempty" validate:"omitempty,max=20"`
	Options     *IdeaOptions `json:"options,omitempty"`
}

// Validate implements the validation hook used by shared.ValidateRequest. It
// applies the full generation rules: non-blank and at most MaxPromptLength.
func (r *IdeaRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return &requestError{message: msgPromptRequired}
	}
	if utf8.RuneCountInString(r.Prompt) > MaxPromptLength {
		return &requestError{message: msgPromptTooLong}
	}
	return r.validateStructure()
}

// validateStructure checks tags only. Prompt construction accepts any
// non-empty prompt.
func (r *IdeaRequest) validateStructure() error {
	if r.Prompt == "" {
		return &requestError{message: msgPromptRequired}
	}
	return shared.Validator().Struct(r)
}

// ParsedCategoryIDs parses category_ids, reporting the fixed invalid-ids
// message for any malformed entry.
func (r *IdeaRequest) ParsedCategoryIDs() ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(r.CategoryIDs))
	for _, raw := range r.CategoryIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil || id == uuid.Nil {
			return nil, &requestError{message: msgInvalidCategoryIDs}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GenerationOptions converts the wire options into generation.Options.
func (r *IdeaRequest) GenerationOptions() generation.Options {
	if r.Options == nil {
		return generation.Options{}
	}
	return generation.Options{
		MaxIdeas:          r.Options.MaxIdeas,
		CreativityLevel:   r.Options.CreativityLevel,
		Format:            r.Options.Format,
		IncludeCategories: r.Options.IncludeCategories,
	}
}

// CategorySummary is the public view of a category used in responses.
type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CategoryResponse is one entry of GET /api/categories.
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	HasContext  bool      `json:"has_context"`
}

// GenerateIdeasResponse is the success body of POST /api/ai/generate-ideas.
type GenerateIdeasResponse struct {
	Success    bool               `json:"success"`
	Data       *generation.Result `json:"data"`
	Prompt     string             `json:"prompt"`
	Categories []CategorySummary  `json:"categories"`
}

// ConstructPromptResponse is the success body of POST /api/ai/construct-prompt.
type ConstructPromptResponse struct {
	Success           bool               `json:"success"`
	OriginalPrompt    string             `json:"original_prompt"`
	ConstructedPrompt string             `json:"constructed_prompt"`
	Categories        []CategorySummary  `json:"categories"`
	Options           generation.Options `json:"options"`
}

func summarize(categories []*domain.Category) []CategorySummary {
	out := make([]CategorySummary, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategorySummary{ID: c.ID, Name: c.Name})
	}
	return out
}

// toGenerationCategories keeps the lookup order, which is the request order.
func toGenerationCategories(categories []*domain.Category) []generation.Category {
	out := make([]generation.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, generation.Category{
			ID:      c.ID.String(),
			Name:    c.Name,
			Context: c.AIPromptContext,
		})
	}
	return out
}
