package domain

import "errors"

// Source tags where a recipe comes from. The three values are closed: every
// favorite and view row carries one of them, and the aggregator dispatches
// on them when resolving previews.
type Source string

const (
	SourceExternal Source = "external"
	SourcePersonal Source = "personal"
	SourceShared   Source = "shared"
)

func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceExternal, SourcePersonal, SourceShared:
		return Source(s), nil
	}
	return "", ErrUnknownSource
}

var (
	MessageSuccessGetRandomRecipes = "success get random recipes"
	MessageSuccessSearchRecipes    = "success search recipes"
	MessageSuccessGetRecipeDetail  = "success get recipe detail"
	MessageSuccessAddRecipe        = "recipe added successfully"
	MessageSuccessGetRecipes       = "success get recipes"
	MessageSuccessMarkFavorite     = "recipe saved as favorite"
	MessageSuccessGetFavorites     = "success get favorite recipes"
	MessageSuccessGetLastViewed    = "success get last viewed recipes"
	MessageSuccessUploadImage      = "recipe image uploaded successfully"

	MessageFailedGetRandomRecipes = "failed to get random recipes"
	MessageFailedSearchRecipes    = "failed to search recipes"
	MessageFailedGetRecipeDetail  = "failed to get recipe detail"
	MessageFailedAddRecipe        = "failed to add recipe"
	MessageFailedGetRecipes       = "failed to get recipes"
	MessageFailedMarkFavorite     = "failed to save recipe as favorite"
	MessageFailedGetFavorites     = "failed to get favorite recipes"
	MessageFailedGetLastViewed    = "failed to get last viewed recipes"
	MessageFailedUploadImage      = "failed to upload recipe image"

	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrNoRecipesFound      = errors.New("no recipes found")
	ErrSearchQueryRequired = errors.New("search query is required")
	ErrUnknownSource       = errors.New("unknown recipe source")
	ErrUpstreamUnavailable = errors.New("recipe provider unavailable")
	ErrOwnedSourceRequired = errors.New("source must be personal or shared")
)

type (
	// RecipePreview is the canonical summary every source normalizes into.
	// Owner and WhenToPrepare are shared-recipe extras and stay empty for the
	// other sources.
	RecipePreview struct {
		ID             string `json:"id"`
		Title          string `json:"title"`
		Image          string `json:"image"`
		ReadyInMinutes int    `json:"readyInMinutes"`
		Vegan          bool   `json:"vegan"`
		Vegetarian     bool   `json:"vegetarian"`
		GlutenFree     bool   `json:"glutenFree"`
		Favorite       bool   `json:"favorite"`
		Viewed         bool   `json:"viewed"`
		Owner          string `json:"owner,omitempty"`
		WhenToPrepare  string `json:"when_to_prepare,omitempty"`
	}

	RecipeDetail struct {
		RecipePreview
		Ingredients  []Ingredient `json:"ingredients"`
		Instructions string       `json:"instructions"`
		Servings     int          `json:"servings"`
		Summary      string       `json:"summary,omitempty"`
	}

	Ingredient struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Unit   string  `json:"unit"`
	}

	AddRecipeRequest struct {
		Title          string       `json:"title" validate:"required"`
		Image          string       `json:"image"`
		ReadyInMinutes int          `json:"readyInMinutes" validate:"min=0"`
		Vegan          bool         `json:"vegan"`
		Vegetarian     bool         `json:"vegetarian"`
		GlutenFree     bool         `json:"glutenFree"`
		Ingredients    []Ingredient `json:"ingredients" validate:"required,min=1,dive"`
		Instructions   string       `json:"instructions" validate:"required"`
		Servings       int          `json:"servings" validate:"required,min=1"`

		// shared recipes only
		OwnerName     string `json:"owner_name"`
		WhenToPrepare string `json:"when_to_prepare"`
	}

	SearchRecipesRequest struct {
		Query        string `json:"query" validate:"required"`
		Cuisine      string `json:"cuisine"`
		Diet         string `json:"diet"`
		Intolerances string `json:"intolerances"`
		SortBy       string `json:"sort_by"`
		Limit        int    `json:"limit" validate:"min=0"`
	}

	MarkFavoriteRequest struct {
		RecipeID string `json:"recipe_id" validate:"required"`
		Source   string `json:"source" validate:"required,oneof=external personal shared"`
	}
)
