package recipe

import (
	"Recipe-Hub-Backend/domain"
	"Recipe-Hub-Backend/entities"
	"Recipe-Hub-Backend/internal/utils/storage"
	"Recipe-Hub-Backend/pkg/spoonacular"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultSearchLimit = 5

type (
	RecipeService interface {
		GetRandomPreviews(ctx context.Context, count int) ([]domain.RecipePreview, error)
		SearchPreviews(ctx context.Context, userID string, req domain.SearchRecipesRequest) ([]domain.RecipePreview, error)
		GetFullDetail(ctx context.Context, id string, source domain.Source, userID string) (domain.RecipeDetail, error)
		AddUserRecipe(ctx context.Context, req domain.AddRecipeRequest, userID string) (string, error)
		AddFamilyRecipe(ctx context.Context, req domain.AddRecipeRequest, userID string) (string, error)
		ListOwned(ctx context.Context, userID string, source domain.Source) ([]domain.RecipePreview, error)
		MarkFavorite(ctx context.Context, req domain.MarkFavoriteRequest, userID string) error
		GetFavoritesExpanded(ctx context.Context, userID string) ([]domain.RecipePreview, error)
		RecordView(ctx context.Context, userID, recipeID string, source domain.Source) error
		GetLastViewed(ctx context.Context, userID string) ([]domain.RecipePreview, error)
		UploadRecipeImage(ctx context.Context, recipeID, userID string, image *multipart.FileHeader) (string, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		api              ExternalAPI
		previews         *previewBuilder
		sources          map[domain.Source]recipeSource
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, api ExternalAPI, s3 storage.AwsS3) RecipeService {
	previews := newPreviewBuilder(recipeRepository)
	return &recipeService{
		recipeRepository: recipeRepository,
		api:              api,
		previews:         previews,
		sources: map[domain.Source]recipeSource{
			domain.SourceExternal: &externalSource{api: api, previews: previews},
			domain.SourcePersonal: &personalSource{recipeRepository: recipeRepository, previews: previews},
			domain.SourceShared:   &sharedSource{recipeRepository: recipeRepository, previews: previews},
		},
		s3: s3,
	}
}

// GetRandomPreviews serves anonymous browsing: no user context, so no
// favorite/viewed flags are attached.
func (s *recipeService) GetRandomPreviews(ctx context.Context, count int) ([]domain.RecipePreview, error) {
	remotes, err := s.api.FetchRandom(ctx, count)
	if err != nil {
		return nil, err
	}

	previews := make([]domain.RecipePreview, 0, len(remotes))
	for _, remote := range remotes {
		preview, err := s.previews.Build(ctx, rawFromExternal(remote), "", "")
		if err != nil {
			return nil, err
		}
		previews = append(previews, preview)
	}
	return previews, nil
}

func (s *recipeService) SearchPreviews(ctx context.Context, userID string, req domain.SearchRecipesRequest) ([]domain.RecipePreview, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, domain.ErrSearchQueryRequired
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	remotes, err := s.api.Search(ctx, req.Query, spoonacular.SearchFilters{
		Cuisine:      req.Cuisine,
		Diet:         req.Diet,
		Intolerances: req.Intolerances,
		SortBy:       req.SortBy,
	}, limit)
	if err != nil {
		return nil, err
	}
	if len(remotes) == 0 {
		return nil, domain.ErrNoRecipesFound
	}

	previews := make([]domain.RecipePreview, 0, len(remotes))
	for _, remote := range remotes {
		preview, err := s.previews.Build(ctx, rawFromExternal(remote), userID, domain.SourceExternal)
		if err != nil {
			return nil, err
		}
		previews = append(previews, preview)
	}
	return previews, nil
}

// GetFullDetail resolves the source-appropriate full record. A resolved user
// also gets the view recorded, so the recency list stays current.
func (s *recipeService) GetFullDetail(ctx context.Context, id string, source domain.Source, userID string) (domain.RecipeDetail, error) {
	src, ok := s.sources[source]
	if !ok {
		return domain.RecipeDetail{}, domain.ErrUnknownSource
	}

	detail, err := src.FetchDetail(ctx, id, userID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	if userID != "" {
		if err := s.RecordView(ctx, userID, detail.ID, source); err != nil {
			return domain.RecipeDetail{}, err
		}
	}

	return detail, nil
}

func (s *recipeService) AddUserRecipe(ctx context.Context, req domain.AddRecipeRequest, userID string) (string, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return "", domain.ErrParseUUID
	}

	ingredients, err := json.Marshal(req.Ingredients)
	if err != nil {
		return "", err
	}

	recipe := &entities.UserRecipe{
		ID:             uuid.New(),
		UserID:         userUUID,
		Title:          req.Title,
		ImageURL:       req.Image,
		ReadyInMinutes: req.ReadyInMinutes,
		Vegan:          req.Vegan,
		Vegetarian:     req.Vegetarian,
		GlutenFree:     req.GlutenFree,
		Ingredients:    string(ingredients),
		Instructions:   req.Instructions,
		Servings:       req.Servings,
	}

	if err := s.recipeRepository.CreateUserRecipe(ctx, recipe); err != nil {
		return "", err
	}
	return recipe.ID.String(), nil
}

func (s *recipeService) AddFamilyRecipe(ctx context.Context, req domain.AddRecipeRequest, userID string) (string, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return "", domain.ErrParseUUID
	}

	ingredients, err := json.Marshal(req.Ingredients)
	if err != nil {
		return "", err
	}

	ownerName := req.OwnerName
	if ownerName == "" {
		ownerName = "Me"
	}

	recipe := &entities.FamilyRecipe{
		ID:             uuid.New(),
		UserID:         userUUID,
		Title:          req.Title,
		ImageURL:       req.Image,
		ReadyInMinutes: req.ReadyInMinutes,
		Vegan:          req.Vegan,
		Vegetarian:     req.Vegetarian,
		GlutenFree:     req.GlutenFree,
		Ingredients:    string(ingredients),
		Instructions:   req.Instructions,
		Servings:       req.Servings,
		OwnerName:      ownerName,
		WhenToPrepare:  req.WhenToPrepare,
	}

	if err := s.recipeRepository.CreateFamilyRecipe(ctx, recipe); err != nil {
		return "", err
	}
	return recipe.ID.String(), nil
}

func (s *recipeService) ListOwned(ctx context.Context, userID string, source domain.Source) ([]domain.RecipePreview, error) {
	src, ok := s.sources[source]
	if !ok {
		return nil, domain.ErrUnknownSource
	}
	return src.ListOwned(ctx, userID)
}

func (s *recipeService) MarkFavorite(ctx context.Context, req domain.MarkFavoriteRequest, userID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	source, err := domain.ParseSource(req.Source)
	if err != nil {
		return err
	}

	return s.recipeRepository.MarkFavorite(ctx, &entities.FavoriteRecipe{
		ID:        uuid.New(),
		UserID:    userUUID,
		RecipeID:  req.RecipeID,
		Source:    string(source),
		CreatedAt: time.Now(),
	})
}

// GetFavoritesExpanded resolves every favorite triple into a preview,
// grouped by source in a fixed order (external, personal, shared) with
// insertion order kept inside each group.
func (s *recipeService) GetFavoritesExpanded(ctx context.Context, userID string) ([]domain.RecipePreview, error) {
	favorites, err := s.recipeRepository.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	bySource := make(map[domain.Source][]string, 3)
	for _, favorite := range favorites {
		source := domain.Source(favorite.Source)
		bySource[source] = append(bySource[source], favorite.RecipeID)
	}

	previews := make([]domain.RecipePreview, 0, len(favorites))
	for _, source := range []domain.Source{domain.SourceExternal, domain.SourcePersonal, domain.SourceShared} {
		src := s.sources[source]
		for _, recipeID := range bySource[source] {
			preview, err := src.FetchPreview(ctx, recipeID, userID)
			if err != nil {
				return nil, err
			}
			previews = append(previews, preview)
		}
	}
	return previews, nil
}

func (s *recipeService) RecordView(ctx context.Context, userID, recipeID string, source domain.Source) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	return s.recipeRepository.RecordView(ctx, &entities.RecipeView{
		ID:       uuid.New(),
		UserID:   userUUID,
		RecipeID: recipeID,
		Source:   string(source),
		ViewedAt: time.Now(),
	})
}

// GetLastViewed returns up to three previews in recency order. A stored
// source tag outside the known set means the view table was corrupted by
// something upstream; that is surfaced, not skipped.
func (s *recipeService) GetLastViewed(ctx context.Context, userID string) ([]domain.RecipePreview, error) {
	views, err := s.recipeRepository.ListRecentViews(ctx, userID, lastViewedCapacity)
	if err != nil {
		return nil, err
	}

	previews := make([]domain.RecipePreview, 0, len(views))
	for _, view := range views {
		src, ok := s.sources[domain.Source(view.Source)]
		if !ok {
			return nil, fmt.Errorf("%w: stored source %q", domain.ErrUnknownSource, view.Source)
		}
		preview, err := src.FetchPreview(ctx, view.RecipeID, userID)
		if err != nil {
			return nil, err
		}
		previews = append(previews, preview)
	}
	return previews, nil
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, recipeID, userID string, image *multipart.FileHeader) (string, error) {
	recipe, err := s.recipeRepository.GetUserRecipeByID(ctx, recipeID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrRecipeNotFound
		}
		return "", err
	}

	objectKey, err := s.s3.UploadFile(
		fmt.Sprintf("recipe-%s", recipe.ID.String()),
		image,
		"recipes",
		storage.AllowImage...,
	)
	if err != nil {
		return "", err
	}

	recipe.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.recipeRepository.UpdateUserRecipe(ctx, recipe); err != nil {
		return "", err
	}
	return recipe.ImageURL, nil
}
