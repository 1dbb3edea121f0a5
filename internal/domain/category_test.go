package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaforge-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Parallel()

	c, err := domain.NewCategory("  Technology ", "Tech ideas", " software and hardware ")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, "Technology", c.Name)
	assert.Equal(t, "software and hardware", c.AIPromptContext)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCategoryValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category domain.Category
		wantErr  error
	}{
		{
			name:     "valid",
			category: domain.Category{ID: uuid.New(), Name: "Health"},
		},
		{
			name:     "missing id",
			category: domain.Category{Name: "Health"},
			wantErr:  domain.ErrEmptyCategoryID,
		},
		{
			name:     "blank name",
			category: domain.Category{ID: uuid.New(), Name: "   "},
			wantErr:  domain.ErrEmptyCategoryName,
		},
		{
			name:     "name too long",
			category: domain.Category{ID: uuid.New(), Name: strings.Repeat("x", domain.MaxCategoryNameLength+1)},
			wantErr:  domain.ErrCategoryNameLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.category.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
