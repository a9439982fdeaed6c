package recipe

import (
	"Recipe-Hub-Backend/domain"
	"Recipe-Hub-Backend/entities"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateUserRecipe(ctx context.Context, recipe *entities.UserRecipe) error
		GetUserRecipeByID(ctx context.Context, id, userID string) (*entities.UserRecipe, error)
		ListUserRecipes(ctx context.Context, userID string) ([]*entities.UserRecipe, error)
		UpdateUserRecipe(ctx context.Context, recipe *entities.UserRecipe) error

		CreateFamilyRecipe(ctx context.Context, recipe *entities.FamilyRecipe) error
		GetFamilyRecipeByID(ctx context.Context, id, userID string) (*entities.FamilyRecipe, error)
		ListFamilyRecipes(ctx context.Context, userID string) ([]*entities.FamilyRecipe, error)

		MarkFavorite(ctx context.Context, favorite *entities.FavoriteRecipe) error
		ListFavorites(ctx context.Context, userID string) ([]*entities.FavoriteRecipe, error)
		GetRecipeFlags(ctx context.Context, userID, recipeID string, source domain.Source) (bool, bool, error)

		RecordView(ctx context.Context, view *entities.RecipeView) error
		ListRecentViews(ctx context.Context, userID string, limit int) ([]*entities.RecipeView, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateUserRecipe(ctx context.Context, recipe *entities.UserRecipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetUserRecipeByID(ctx context.Context, id, userID string) (*entities.UserRecipe, error) {
	var recipe entities.UserRecipe
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) ListUserRecipes(ctx context.Context, userID string) ([]*entities.UserRecipe, error) {
	var recipes []*entities.UserRecipe
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) UpdateUserRecipe(ctx context.Context, recipe *entities.UserRecipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

func (r *recipeRepository) CreateFamilyRecipe(ctx context.Context, recipe *entities.FamilyRecipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetFamilyRecipeByID(ctx context.Context, id, userID string) (*entities.FamilyRecipe, error) {
	var recipe entities.FamilyRecipe
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) ListFamilyRecipes(ctx context.Context, userID string) ([]*entities.FamilyRecipe, error) {
	var recipes []*entities.FamilyRecipe
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// MarkFavorite is insert-or-ignore on the (user, recipe, source) identity so
// repeated marks never produce duplicate rows.
func (r *recipeRepository) MarkFavorite(ctx context.Context, favorite *entities.FavoriteRecipe) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}, {Name: "source"}},
			DoNothing: true,
		}).
		Create(favorite).Error
}

func (r *recipeRepository) ListFavorites(ctx context.Context, userID string) ([]*entities.FavoriteRecipe, error) {
	var favorites []*entities.FavoriteRecipe
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

// GetRecipeFlags resolves favorite and viewed for one (user, recipe, source)
// triple in a single round trip.
func (r *recipeRepository) GetRecipeFlags(ctx context.Context, userID, recipeID string, source domain.Source) (bool, bool, error) {
	var flags struct {
		Favorite bool
		Viewed   bool
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			EXISTS(SELECT 1 FROM favorite_recipes
			       WHERE user_id = ? AND recipe_id = ? AND source = ?) AS favorite,
			EXISTS(SELECT 1 FROM recipe_views
			       WHERE user_id = ? AND recipe_id = ? AND source = ?) AS viewed`,
		userID, recipeID, string(source),
		userID, recipeID, string(source),
	).Scan(&flags).Error
	if err != nil {
		return false, false, err
	}
	return flags.Favorite, flags.Viewed, nil
}

// RecordView applies the bounded-history policy in one transaction: read the
// user's views newest first, evict the stale row if the new entry would push
// the user past capacity, then upsert with a fresh timestamp. The upsert
// targets the (user, recipe, source) unique index, so concurrent views of
// the same recipe collapse into one row.
func (r *recipeRepository) RecordView(ctx context.Context, view *entities.RecipeView) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []*entities.RecipeView
		if err := tx.
			Where("user_id = ?", view.UserID).
			Order("viewed_at desc").
			Find(&existing).Error; err != nil {
			return err
		}

		if stale := evictionCandidate(existing, view.RecipeID, view.Source, lastViewedCapacity); stale != nil {
			if err := tx.
				Where("user_id = ? AND recipe_id = ? AND source = ?", stale.UserID, stale.RecipeID, stale.Source).
				Delete(&entities.RecipeView{}).Error; err != nil {
				return err
			}
		}

		return tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}, {Name: "source"}},
				DoUpdates: clause.Assignments(map[string]interface{}{"viewed_at": view.ViewedAt}),
			}).
			Create(view).Error
	})
}

func (r *recipeRepository) ListRecentViews(ctx context.Context, userID string, limit int) ([]*entities.RecipeView, error) {
	var views []*entities.RecipeView
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("viewed_at desc").
		Limit(limit).
		Find(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}
