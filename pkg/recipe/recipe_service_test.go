package recipe

import (
	"Recipe-Hub-Backend/domain"
	"Recipe-Hub-Backend/entities"
	"Recipe-Hub-Backend/pkg/spoonacular"
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRecipeRepository keeps rows in memory with the same identity semantics
// as the SQL implementation: favorites are insert-or-ignore, views are
// upsert-then-trim per user.
type fakeRecipeRepository struct {
	userRecipes   map[string]*entities.UserRecipe
	familyRecipes map[string]*entities.FamilyRecipe
	favorites     []*entities.FavoriteRecipe
	views         []*entities.RecipeView

	flagCalls int
}

func newFakeRecipeRepository() *fakeRecipeRepository {
	return &fakeRecipeRepository{
		userRecipes:   make(map[string]*entities.UserRecipe),
		familyRecipes: make(map[string]*entities.FamilyRecipe),
	}
}

func (f *fakeRecipeRepository) CreateUserRecipe(_ context.Context, recipe *entities.UserRecipe) error {
	f.userRecipes[recipe.ID.String()] = recipe
	return nil
}

func (f *fakeRecipeRepository) GetUserRecipeByID(_ context.Context, id, userID string) (*entities.UserRecipe, error) {
	recipe, ok := f.userRecipes[id]
	if !ok || recipe.UserID.String() != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return recipe, nil
}

func (f *fakeRecipeRepository) ListUserRecipes(_ context.Context, userID string) ([]*entities.UserRecipe, error) {
	var recipes []*entities.UserRecipe
	for _, recipe := range f.userRecipes {
		if recipe.UserID.String() == userID {
			recipes = append(recipes, recipe)
		}
	}
	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].CreatedAt.Before(recipes[j].CreatedAt)
	})
	return recipes, nil
}

func (f *fakeRecipeRepository) UpdateUserRecipe(_ context.Context, recipe *entities.UserRecipe) error {
	f.userRecipes[recipe.ID.String()] = recipe
	return nil
}

func (f *fakeRecipeRepository) CreateFamilyRecipe(_ context.Context, recipe *entities.FamilyRecipe) error {
	f.familyRecipes[recipe.ID.String()] = recipe
	return nil
}

func (f *fakeRecipeRepository) GetFamilyRecipeByID(_ context.Context, id, userID string) (*entities.FamilyRecipe, error) {
	recipe, ok := f.familyRecipes[id]
	if !ok || recipe.UserID.String() != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return recipe, nil
}

func (f *fakeRecipeRepository) ListFamilyRecipes(_ context.Context, userID string) ([]*entities.FamilyRecipe, error) {
	var recipes []*entities.FamilyRecipe
	for _, recipe := range f.familyRecipes {
		if recipe.UserID.String() == userID {
			recipes = append(recipes, recipe)
		}
	}
	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].CreatedAt.Before(recipes[j].CreatedAt)
	})
	return recipes, nil
}

func (f *fakeRecipeRepository) MarkFavorite(_ context.Context, favorite *entities.FavoriteRecipe) error {
	for _, existing := range f.favorites {
		if existing.UserID == favorite.UserID &&
			existing.RecipeID == favorite.RecipeID &&
			existing.Source == favorite.Source {
			return nil
		}
	}
	f.favorites = append(f.favorites, favorite)
	return nil
}

func (f *fakeRecipeRepository) ListFavorites(_ context.Context, userID string) ([]*entities.FavoriteRecipe, error) {
	var favorites []*entities.FavoriteRecipe
	for _, favorite := range f.favorites {
		if favorite.UserID.String() == userID {
			favorites = append(favorites, favorite)
		}
	}
	sort.SliceStable(favorites, func(i, j int) bool {
		return favorites[i].CreatedAt.Before(favorites[j].CreatedAt)
	})
	return favorites, nil
}

func (f *fakeRecipeRepository) GetRecipeFlags(_ context.Context, userID, recipeID string, source domain.Source) (bool, bool, error) {
	f.flagCalls++
	var favorite, viewed bool
	for _, row := range f.favorites {
		if row.UserID.String() == userID && row.RecipeID == recipeID && row.Source == string(source) {
			favorite = true
		}
	}
	for _, row := range f.views {
		if row.UserID.String() == userID && row.RecipeID == recipeID && row.Source == string(source) {
			viewed = true
		}
	}
	return favorite, viewed, nil
}

func (f *fakeRecipeRepository) RecordView(_ context.Context, view *entities.RecipeView) error {
	for _, existing := range f.views {
		if existing.UserID == view.UserID &&
			existing.RecipeID == view.RecipeID &&
			existing.Source == view.Source {
			existing.ViewedAt = view.ViewedAt
			return nil
		}
	}

	mine := f.userViewsNewestFirst(view.UserID.String())
	if stale := evictionCandidate(mine, view.RecipeID, view.Source, lastViewedCapacity); stale != nil {
		kept := f.views[:0]
		for _, existing := range f.views {
			if existing != stale {
				kept = append(kept, existing)
			}
		}
		f.views = kept
	}

	f.views = append(f.views, view)
	return nil
}

func (f *fakeRecipeRepository) ListRecentViews(_ context.Context, userID string, limit int) ([]*entities.RecipeView, error) {
	views := f.userViewsNewestFirst(userID)
	if len(views) > limit {
		views = views[:limit]
	}
	return views, nil
}

func (f *fakeRecipeRepository) userViewsNewestFirst(userID string) []*entities.RecipeView {
	var views []*entities.RecipeView
	for _, view := range f.views {
		if view.UserID.String() == userID {
			views = append(views, view)
		}
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].ViewedAt.After(views[j].ViewedAt)
	})
	return views
}

type fakeExternalAPI struct {
	byID   map[string]spoonacular.Recipe
	random []spoonacular.Recipe
	found  []spoonacular.Recipe

	searchCalls int
	lastQuery   string
	lastFilters spoonacular.SearchFilters
	lastLimit   int
	fetchErr    error
}

func (f *fakeExternalAPI) FetchByID(_ context.Context, id string) (spoonacular.Recipe, error) {
	if f.fetchErr != nil {
		return spoonacular.Recipe{}, f.fetchErr
	}
	remote, ok := f.byID[id]
	if !ok {
		return spoonacular.Recipe{}, domain.ErrRecipeNotFound
	}
	return remote, nil
}

func (f *fakeExternalAPI) FetchRandom(_ context.Context, count int) ([]spoonacular.Recipe, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if len(f.random) > count {
		return f.random[:count], nil
	}
	return f.random, nil
}

func (f *fakeExternalAPI) Search(_ context.Context, query string, filters spoonacular.SearchFilters, limit int) ([]spoonacular.Recipe, error) {
	f.searchCalls++
	f.lastQuery = query
	f.lastFilters = filters
	f.lastLimit = limit
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.found, nil
}

func newTestService(repo *fakeRecipeRepository, api *fakeExternalAPI) RecipeService {
	return NewRecipeService(repo, api, nil)
}

func seedUserRecipe(repo *fakeRecipeRepository, userID uuid.UUID, title string) *entities.UserRecipe {
	recipe := &entities.UserRecipe{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          title,
		ReadyInMinutes: 30,
		Vegetarian:     true,
		Ingredients:    `[{"name":"flour","amount":2,"unit":"cups"}]`,
		Instructions:   "Mix and bake.",
		Servings:       4,
	}
	recipe.CreatedAt = time.Now()
	repo.userRecipes[recipe.ID.String()] = recipe
	return recipe
}

func seedFamilyRecipe(repo *fakeRecipeRepository, userID uuid.UUID, title, owner string) *entities.FamilyRecipe {
	recipe := &entities.FamilyRecipe{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          title,
		ReadyInMinutes: 90,
		Ingredients:    `[{"name":"cabbage","amount":1,"unit":"head"}]`,
		Instructions:   "Simmer slowly.",
		Servings:       6,
		OwnerName:      owner,
		WhenToPrepare:  "holidays",
	}
	recipe.CreatedAt = time.Now()
	repo.familyRecipes[recipe.ID.String()] = recipe
	return recipe
}

func TestSearchPreviewsEmptyQuerySkipsUpstream(t *testing.T) {
	api := &fakeExternalAPI{}
	service := newTestService(newFakeRecipeRepository(), api)

	for _, query := range []string{"", "   ", "\t"} {
		_, err := service.SearchPreviews(context.Background(), "", domain.SearchRecipesRequest{Query: query})
		assert.ErrorIs(t, err, domain.ErrSearchQueryRequired)
	}
	assert.Zero(t, api.searchCalls)
}

func TestSearchPreviewsNoResults(t *testing.T) {
	api := &fakeExternalAPI{}
	service := newTestService(newFakeRecipeRepository(), api)

	_, err := service.SearchPreviews(context.Background(), "", domain.SearchRecipesRequest{Query: "pasta"})
	assert.ErrorIs(t, err, domain.ErrNoRecipesFound)
	assert.Equal(t, 1, api.searchCalls)
}

func TestSearchPreviewsForwardsFiltersAndDefaultLimit(t *testing.T) {
	api := &fakeExternalAPI{found: []spoonacular.Recipe{{ID: 101, Title: "Pad Thai"}}}
	service := newTestService(newFakeRecipeRepository(), api)

	previews, err := service.SearchPreviews(context.Background(), "", domain.SearchRecipesRequest{
		Query:        "noodles",
		Cuisine:      "thai",
		Diet:         "vegetarian",
		Intolerances: "peanut",
		SortBy:       "time",
	})
	require.NoError(t, err)
	require.Len(t, previews, 1)

	assert.Equal(t, "noodles", api.lastQuery)
	assert.Equal(t, "thai", api.lastFilters.Cuisine)
	assert.Equal(t, "vegetarian", api.lastFilters.Diet)
	assert.Equal(t, "peanut", api.lastFilters.Intolerances)
	assert.Equal(t, "time", api.lastFilters.SortBy)
	assert.Equal(t, defaultSearchLimit, api.lastLimit)
	assert.Equal(t, "101", previews[0].ID)
}

func TestGetRandomPreviewsAnonymousDefaults(t *testing.T) {
	repo := newFakeRecipeRepository()
	api := &fakeExternalAPI{random: []spoonacular.Recipe{
		{ID: 1, Title: "Granola", Vegan: true},
		{ID: 2, Title: "Roast"}, // upstream omitted every dietary field
		{ID: 3, Title: "Salad", Vegetarian: true, GlutenFree: true},
	}}
	service := newTestService(repo, api)

	previews, err := service.GetRandomPreviews(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, previews, 3)

	assert.False(t, previews[1].Vegan)
	assert.False(t, previews[1].Vegetarian)
	assert.False(t, previews[1].GlutenFree)
	for _, preview := range previews {
		assert.False(t, preview.Favorite)
		assert.False(t, preview.Viewed)
	}
	assert.Zero(t, repo.flagCalls, "anonymous previews must not hit the flags query")
}

func TestGetFullDetailUnknownSource(t *testing.T) {
	service := newTestService(newFakeRecipeRepository(), &fakeExternalAPI{})

	_, err := service.GetFullDetail(context.Background(), "x", domain.Source("pantry"), "")
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
}

func TestGetFullDetailPersonalNotFound(t *testing.T) {
	userID := uuid.New()
	service := newTestService(newFakeRecipeRepository(), &fakeExternalAPI{})

	_, err := service.GetFullDetail(context.Background(), uuid.NewString(), domain.SourcePersonal, userID.String())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestGetFullDetailRecordsViewForUser(t *testing.T) {
	repo := newFakeRecipeRepository()
	userID := uuid.New()
	recipe := seedUserRecipe(repo, userID, "Shakshuka")
	service := newTestService(repo, &fakeExternalAPI{})

	detail, err := service.GetFullDetail(context.Background(), recipe.ID.String(), domain.SourcePersonal, userID.String())
	require.NoError(t, err)

	assert.Equal(t, recipe.ID.String(), detail.ID)
	assert.Equal(t, "Shakshuka", detail.Title)
	require.Len(t, detail.Ingredients, 1)
	assert.Equal(t, "flour", detail.Ingredients[0].Name)

	views, err := repo.ListRecentViews(context.Background(), userID.String(), lastViewedCapacity)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, recipe.ID.String(), views[0].RecipeID)
	assert.Equal(t, string(domain.SourcePersonal), views[0].Source)
}

func TestGetFullDetailAnonymousLeavesNoTrace(t *testing.T) {
	repo := newFakeRecipeRepository()
	api := &fakeExternalAPI{byID: map[string]spoonacular.Recipe{
		"715538": {ID: 715538, Title: "Bruschetta", Servings: 2},
	}}
	service := newTestService(repo, api)

	detail, err := service.GetFullDetail(context.Background(), "715538", domain.SourceExternal, "")
	require.NoError(t, err)
	assert.Equal(t, "715538", detail.ID)
	assert.Empty(t, repo.views)
}

func TestAddFamilyRecipeDefaultsOwnerName(t *testing.T) {
	repo := newFakeRecipeRepository()
	service := newTestService(repo, &fakeExternalAPI{})
	userID := uuid.New()

	id, err := service.AddFamilyRecipe(context.Background(), domain.AddRecipeRequest{
		Title:        "Borscht",
		Instructions: "Simmer.",
		Servings:     4,
	}, userID.String())
	require.NoError(t, err)

	stored, err := repo.GetFamilyRecipeByID(context.Background(), id, userID.String())
	require.NoError(t, err)
	assert.Equal(t, "Me", stored.OwnerName)
}

func TestMarkFavoriteIsIdempotent(t *testing.T) {
	repo := newFakeRecipeRepository()
	service := newTestService(repo, &fakeExternalAPI{})
	userID := uuid.New()

	req := domain.MarkFavoriteRequest{RecipeID: "715538", Source: "external"}
	require.NoError(t, service.MarkFavorite(context.Background(), req, userID.String()))
	require.NoError(t, service.MarkFavorite(context.Background(), req, userID.String()))

	assert.Len(t, repo.favorites, 1)
}

func TestMarkFavoriteRejectsUnknownSource(t *testing.T) {
	service := newTestService(newFakeRecipeRepository(), &fakeExternalAPI{})

	err := service.MarkFavorite(context.Background(), domain.MarkFavoriteRequest{
		RecipeID: "x",
		Source:   "pantry",
	}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
}

func TestGetFavoritesExpandedGroupsBySource(t *testing.T) {
	repo := newFakeRecipeRepository()
	userID := uuid.New()
	personal := seedUserRecipe(repo, userID, "Shakshuka")
	shared := seedFamilyRecipe(repo, userID, "Borscht", "Grandma")
	api := &fakeExternalAPI{byID: map[string]spoonacular.Recipe{
		"42": {ID: 42, Title: "Carbonara", Vegan: false},
	}}
	service := newTestService(repo, api)

	// marked shared first on purpose: output order is by source, not by
	// when the user favorited
	for _, req := range []domain.MarkFavoriteRequest{
		{RecipeID: shared.ID.String(), Source: "shared"},
		{RecipeID: "42", Source: "external"},
		{RecipeID: personal.ID.String(), Source: "personal"},
	} {
		require.NoError(t, service.MarkFavorite(context.Background(), req, userID.String()))
	}

	previews, err := service.GetFavoritesExpanded(context.Background(), userID.String())
	require.NoError(t, err)
	require.Len(t, previews, 3)

	assert.Equal(t, "Carbonara", previews[0].Title)
	assert.Equal(t, "Shakshuka", previews[1].Title)
	assert.Equal(t, "Borscht", previews[2].Title)
	assert.Equal(t, "Grandma", previews[2].Owner)
	for _, preview := range previews {
		assert.True(t, preview.Favorite)
	}
}

func TestLastViewedKeepsThreeMostRecent(t *testing.T) {
	repo := newFakeRecipeRepository()
	userID := uuid.New()
	service := newTestService(repo, &fakeExternalAPI{})

	recipes := make([]*entities.UserRecipe, 0, 4)
	for _, title := range []string{"First", "Second", "Third", "Fourth"} {
		recipes = append(recipes, seedUserRecipe(repo, userID, title))
	}

	for i, recipe := range recipes {
		view := &entities.RecipeView{
			ID:       uuid.New(),
			UserID:   userID,
			RecipeID: recipe.ID.String(),
			Source:   string(domain.SourcePersonal),
			ViewedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.RecordView(context.Background(), view))
	}

	previews, err := service.GetLastViewed(context.Background(), userID.String())
	require.NoError(t, err)
	require.Len(t, previews, lastViewedCapacity)

	assert.Equal(t, "Fourth", previews[0].Title)
	assert.Equal(t, "Third", previews[1].Title)
	assert.Equal(t, "Second", previews[2].Title)
}

func TestLastViewedReViewRefreshesWithoutGrowth(t *testing.T) {
	repo := newFakeRecipeRepository()
	userID := uuid.New()
	service := newTestService(repo, &fakeExternalAPI{})

	first := seedUserRecipe(repo, userID, "First")
	second := seedUserRecipe(repo, userID, "Second")
	third := seedUserRecipe(repo, userID, "Third")

	base := time.Now()
	for i, recipe := range []*entities.UserRecipe{first, second, third} {
		require.NoError(t, repo.RecordView(context.Background(), &entities.RecipeView{
			ID:       uuid.New(),
			UserID:   userID,
			RecipeID: recipe.ID.String(),
			Source:   string(domain.SourcePersonal),
			ViewedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	// re-view the oldest: it should move to the front, nothing evicted
	require.NoError(t, repo.RecordView(context.Background(), &entities.RecipeView{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: first.ID.String(),
		Source:   string(domain.SourcePersonal),
		ViewedAt: base.Add(10 * time.Second),
	}))

	previews, err := service.GetLastViewed(context.Background(), userID.String())
	require.NoError(t, err)
	require.Len(t, previews, 3)
	assert.Equal(t, "First", previews[0].Title)
	assert.Equal(t, "Third", previews[1].Title)
	assert.Equal(t, "Second", previews[2].Title)
}

func TestLastViewedSurfacesCorruptSourceTag(t *testing.T) {
	repo := newFakeRecipeRepository()
	userID := uuid.New()
	repo.views = append(repo.views, &entities.RecipeView{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: "715538",
		Source:   "legacy",
		ViewedAt: time.Now(),
	})
	service := newTestService(repo, &fakeExternalAPI{})

	_, err := service.GetLastViewed(context.Background(), userID.String())
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
}

func TestListOwnedExternalRejected(t *testing.T) {
	service := newTestService(newFakeRecipeRepository(), &fakeExternalAPI{})

	_, err := service.ListOwned(context.Background(), uuid.NewString(), domain.SourceExternal)
	assert.ErrorIs(t, err, domain.ErrOwnedSourceRequired)
}

func TestUpstreamFailurePropagates(t *testing.T) {
	api := &fakeExternalAPI{fetchErr: domain.ErrUpstreamUnavailable}
	service := newTestService(newFakeRecipeRepository(), api)

	_, err := service.GetRandomPreviews(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
