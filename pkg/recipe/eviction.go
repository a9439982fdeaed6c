package recipe

import (
	"Recipe-Hub-Backend/entities"
)

// lastViewedCapacity bounds how many recipes the view history keeps per user.
const lastViewedCapacity = 3

// evictionCandidate decides which view row has to go before recording a new
// view. views must be ordered most recent first. A re-view of an already
// tracked (recipe, source) pair never evicts anything: the upsert refreshes
// its timestamp in place. Otherwise, once the user is at capacity the least
// recently viewed entry is returned for deletion.
func evictionCandidate(views []*entities.RecipeView, recipeID string, source string, capacity int) *entities.RecipeView {
	for _, v := range views {
		if v.RecipeID == recipeID && v.Source == source {
			return nil
		}
	}
	if len(views) < capacity {
		return nil
	}
	return views[len(views)-1]
}
