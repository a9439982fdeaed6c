package recipe

import (
	"Recipe-Hub-Backend/domain"
	"Recipe-Hub-Backend/pkg/spoonacular"
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

type (
	// ExternalAPI is what the aggregator needs from the remote recipe
	// provider. *spoonacular.Client satisfies it.
	ExternalAPI interface {
		FetchByID(ctx context.Context, id string) (spoonacular.Recipe, error)
		FetchRandom(ctx context.Context, count int) ([]spoonacular.Recipe, error)
		Search(ctx context.Context, query string, filters spoonacular.SearchFilters, limit int) ([]spoonacular.Recipe, error)
	}

	// recipeSource is implemented once per origin tag. The aggregator
	// dispatches on domain.Source instead of branching on strings.
	recipeSource interface {
		FetchPreview(ctx context.Context, id, userID string) (domain.RecipePreview, error)
		FetchDetail(ctx context.Context, id, userID string) (domain.RecipeDetail, error)
		ListOwned(ctx context.Context, userID string) ([]domain.RecipePreview, error)
	}

	externalSource struct {
		api      ExternalAPI
		previews *previewBuilder
	}

	personalSource struct {
		recipeRepository RecipeRepository
		previews         *previewBuilder
	}

	sharedSource struct {
		recipeRepository RecipeRepository
		previews         *previewBuilder
	}
)

func (s *externalSource) FetchPreview(ctx context.Context, id, userID string) (domain.RecipePreview, error) {
	remote, err := s.api.FetchByID(ctx, id)
	if err != nil {
		return domain.RecipePreview{}, err
	}
	return s.previews.Build(ctx, rawFromExternal(remote), userID, domain.SourceExternal)
}

func (s *externalSource) FetchDetail(ctx context.Context, id, userID string) (domain.RecipeDetail, error) {
	remote, err := s.api.FetchByID(ctx, id)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	preview, err := s.previews.Build(ctx, rawFromExternal(remote), userID, domain.SourceExternal)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	ingredients := make([]domain.Ingredient, 0, len(remote.ExtendedIngredients))
	for _, ingredient := range remote.ExtendedIngredients {
		ingredients = append(ingredients, domain.Ingredient{
			Name:   ingredient.Name,
			Amount: ingredient.Amount,
			Unit:   ingredient.Unit,
		})
	}

	return domain.RecipeDetail{
		RecipePreview: preview,
		Ingredients:   ingredients,
		Instructions:  remote.Instructions,
		Servings:      remote.Servings,
		Summary:       remote.Summary,
	}, nil
}

func (s *externalSource) ListOwned(ctx context.Context, userID string) ([]domain.RecipePreview, error) {
	return nil, domain.ErrOwnedSourceRequired
}

func (s *personalSource) FetchPreview(ctx context.Context, id, userID string) (domain.RecipePreview, error) {
	row, err := s.recipeRepository.GetUserRecipeByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipePreview{}, domain.ErrRecipeNotFound
		}
		return domain.RecipePreview{}, err
	}
	return s.previews.Build(ctx, rawFromUserRecipe(row), userID, domain.SourcePersonal)
}

func (s *personalSource) FetchDetail(ctx context.Context, id, userID string) (domain.RecipeDetail, error) {
	row, err := s.recipeRepository.GetUserRecipeByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}

	preview, err := s.previews.Build(ctx, rawFromUserRecipe(row), userID, domain.SourcePersonal)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	return domain.RecipeDetail{
		RecipePreview: preview,
		Ingredients:   decodeIngredients(row.Ingredients),
		Instructions:  row.Instructions,
		Servings:      row.Servings,
	}, nil
}

func (s *personalSource) ListOwned(ctx context.Context, userID string) ([]domain.RecipePreview, error) {
	rows, err := s.recipeRepository.ListUserRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	previews := make([]domain.RecipePreview, 0, len(rows))
	for _, row := range rows {
		preview, err := s.previews.Build(ctx, rawFromUserRecipe(row), userID, domain.SourcePersonal)
		if err != nil {
			return nil, err
		}
		previews = append(previews, preview)
	}
	return previews, nil
}

func (s *sharedSource) FetchPreview(ctx context.Context, id, userID string) (domain.RecipePreview, error) {
	row, err := s.recipeRepository.GetFamilyRecipeByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipePreview{}, domain.ErrRecipeNotFound
		}
		return domain.RecipePreview{}, err
	}
	return s.previews.Build(ctx, rawFromFamilyRecipe(row), userID, domain.SourceShared)
}

func (s *sharedSource) FetchDetail(ctx context.Context, id, userID string) (domain.RecipeDetail, error) {
	row, err := s.recipeRepository.GetFamilyRecipeByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}

	preview, err := s.previews.Build(ctx, rawFromFamilyRecipe(row), userID, domain.SourceShared)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	return domain.RecipeDetail{
		RecipePreview: preview,
		Ingredients:   decodeIngredients(row.Ingredients),
		Instructions:  row.Instructions,
		Servings:      row.Servings,
	}, nil
}

func (s *sharedSource) ListOwned(ctx context.Context, userID string) ([]domain.RecipePreview, error) {
	rows, err := s.recipeRepository.ListFamilyRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	previews := make([]domain.RecipePreview, 0, len(rows))
	for _, row := range rows {
		preview, err := s.previews.Build(ctx, rawFromFamilyRecipe(row), userID, domain.SourceShared)
		if err != nil {
			return nil, err
		}
		previews = append(previews, preview)
	}
	return previews, nil
}

func decodeIngredients(raw string) []domain.Ingredient {
	var ingredients []domain.Ingredient
	if raw == "" {
		return ingredients
	}
	if err := json.Unmarshal([]byte(raw), &ingredients); err != nil {
		return nil
	}
	return ingredients
}
