package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxCategoryNameLength bounds Category.Name.
const MaxCategoryNameLength = 100

// Validation errors for Category
var (
	ErrEmptyCategoryID   = errors.New("category ID cannot be empty")
	ErrEmptyCategoryName = errors.New("category name cannot be empty")
	ErrCategoryNameLong  = fmt.Errorf("category name cannot exceed %d characters", MaxCategoryNameLength)
)

// Category groups ideas by theme. AIPromptContext, when set, is folded into
// the generation prompt to steer the provider.
type Category struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	AIPromptContext string    `json:"ai_prompt_context,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewCategory creates a validated Category with a fresh ID.
func NewCategory(name, description, promptContext string) (*Category, error) {
	c := &Category{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(name),
		Description:     description,
		AIPromptContext: strings.TrimSpace(promptContext),
		CreatedAt:       time.Now().UTC(),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCategoryID
	}

	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategoryName
	}

	if len(c.Name) > MaxCategoryNameLength {
		return ErrCategoryNameLong
	}

	return nil
}
