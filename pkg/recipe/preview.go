package recipe

import (
	"Recipe-Hub-Backend/domain"
	"Recipe-Hub-Backend/entities"
	"Recipe-Hub-Backend/pkg/spoonacular"
	"context"
	"strconv"
)

type (
	// rawRecipe is the least common denominator of the three sources. Local
	// rows populate RecipeID, the external API populates ID; the builder
	// accepts either.
	rawRecipe struct {
		ID             string
		RecipeID       string
		Title          string
		Image          string
		ReadyInMinutes int
		Vegan          bool
		Vegetarian     bool
		GlutenFree     bool
		Owner          string
		WhenToPrepare  string
	}

	previewBuilder struct {
		recipeRepository RecipeRepository
	}
)

func newPreviewBuilder(recipeRepository RecipeRepository) *previewBuilder {
	return &previewBuilder{recipeRepository: recipeRepository}
}

// Build normalizes a raw record into the canonical preview shape. When both
// userID and source are present the favorite/viewed flags come from one
// combined lookup; anonymous callers always get false for both.
func (b *previewBuilder) Build(ctx context.Context, raw rawRecipe, userID string, source domain.Source) (domain.RecipePreview, error) {
	id := raw.RecipeID
	if id == "" {
		id = raw.ID
	}

	preview := domain.RecipePreview{
		ID:             id,
		Title:          raw.Title,
		Image:          raw.Image,
		ReadyInMinutes: raw.ReadyInMinutes,
		Vegan:          raw.Vegan,
		Vegetarian:     raw.Vegetarian,
		GlutenFree:     raw.GlutenFree,
		Owner:          raw.Owner,
		WhenToPrepare:  raw.WhenToPrepare,
	}

	if userID != "" && source != "" {
		favorite, viewed, err := b.recipeRepository.GetRecipeFlags(ctx, userID, id, source)
		if err != nil {
			return domain.RecipePreview{}, err
		}
		preview.Favorite = favorite
		preview.Viewed = viewed
	}

	return preview, nil
}

func rawFromExternal(r spoonacular.Recipe) rawRecipe {
	return rawRecipe{
		ID:             strconv.Itoa(r.ID),
		Title:          r.Title,
		Image:          r.Image,
		ReadyInMinutes: r.ReadyInMinutes,
		Vegan:          r.Vegan,
		Vegetarian:     r.Vegetarian,
		GlutenFree:     r.GlutenFree,
	}
}

func rawFromUserRecipe(r *entities.UserRecipe) rawRecipe {
	return rawRecipe{
		RecipeID:       r.ID.String(),
		Title:          r.Title,
		Image:          r.ImageURL,
		ReadyInMinutes: r.ReadyInMinutes,
		Vegan:          r.Vegan,
		Vegetarian:     r.Vegetarian,
		GlutenFree:     r.GlutenFree,
	}
}

func rawFromFamilyRecipe(r *entities.FamilyRecipe) rawRecipe {
	return rawRecipe{
		RecipeID:       r.ID.String(),
		Title:          r.Title,
		Image:          r.ImageURL,
		ReadyInMinutes: r.ReadyInMinutes,
		Vegan:          r.Vegan,
		Vegetarian:     r.Vegetarian,
		GlutenFree:     r.GlutenFree,
		Owner:          r.OwnerName,
		WhenToPrepare:  r.WhenToPrepare,
	}
}
