package recipe

import (
	"Recipe-Hub-Backend/entities"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewsFixture(pairs ...[2]string) []*entities.RecipeView {
	userID := uuid.New()
	now := time.Now()
	views := make([]*entities.RecipeView, 0, len(pairs))
	for i, pair := range pairs {
		views = append(views, &entities.RecipeView{
			ID:       uuid.New(),
			UserID:   userID,
			RecipeID: pair[0],
			Source:   pair[1],
			// most recent first, like the repository query returns them
			ViewedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}
	return views
}

func TestEvictionCandidate(t *testing.T) {
	tests := []struct {
		name     string
		views    []*entities.RecipeView
		recipeID string
		source   string
		want     string // recipe id expected for eviction, "" for none
	}{
		{
			name:     "empty history never evicts",
			views:    nil,
			recipeID: "715538",
			source:   "external",
			want:     "",
		},
		{
			name:     "history below capacity never evicts",
			views:    viewsFixture([2]string{"a", "personal"}, [2]string{"b", "shared"}),
			recipeID: "c",
			source:   "personal",
			want:     "",
		},
		{
			name:     "new entry at capacity evicts the oldest",
			views:    viewsFixture([2]string{"a", "personal"}, [2]string{"b", "external"}, [2]string{"c", "shared"}),
			recipeID: "d",
			source:   "personal",
			want:     "c",
		},
		{
			name:     "re-view of a tracked recipe keeps the full list",
			views:    viewsFixture([2]string{"a", "personal"}, [2]string{"b", "external"}, [2]string{"c", "shared"}),
			recipeID: "c",
			source:   "shared",
			want:     "",
		},
		{
			name:     "same id under a different source counts as new",
			views:    viewsFixture([2]string{"a", "personal"}, [2]string{"b", "external"}, [2]string{"c", "shared"}),
			recipeID: "c",
			source:   "personal",
			want:     "c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stale := evictionCandidate(tt.views, tt.recipeID, tt.source, lastViewedCapacity)
			if tt.want == "" {
				assert.Nil(t, stale)
				return
			}
			require.NotNil(t, stale)
			assert.Equal(t, tt.want, stale.RecipeID)
		})
	}
}
