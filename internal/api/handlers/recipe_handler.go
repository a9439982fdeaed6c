package handlers

import (
	"Recipe-Hub-Backend/domain"
	"Recipe-Hub-Backend/internal/api/presenters"
	"Recipe-Hub-Backend/pkg/recipe"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRandomRecipes(c *fiber.Ctx) error
		SearchRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		AddUserRecipe(c *fiber.Ctx) error
		GetUserRecipes(c *fiber.Ctx) error
		AddFamilyRecipe(c *fiber.Ctx) error
		GetFamilyRecipes(c *fiber.Ctx) error
		MarkFavorite(c *fiber.Ctx) error
		GetFavorites(c *fiber.Ctx) error
		GetLastViewed(c *fiber.Ctx) error
		UploadRecipeImage(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

// statusForError translates the service error taxonomy into HTTP statuses:
// validation problems are the caller's fault, missing rows are not found,
// provider failures are a bad gateway, anything else is internal.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrSearchQueryRequired),
		errors.Is(err, domain.ErrUnknownSource),
		errors.Is(err, domain.ErrOwnedSourceRequired),
		errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrNoRecipesFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *recipeHandler) GetRandomRecipes(c *fiber.Ctx) error {
	count, err := strconv.Atoi(c.Query("count", "3"))
	if err != nil || count < 1 {
		count = 3
	}

	res, err := h.recipeService.GetRandomPreviews(c.Context(), count)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetRandomRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRandomRecipes)
}

func (h *recipeHandler) SearchRecipes(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil || limit < 0 {
		limit = 0
	}

	req := domain.SearchRecipesRequest{
		Query:        c.Query("query"),
		Cuisine:      c.Query("cuisine"),
		Diet:         c.Query("diet"),
		Intolerances: c.Query("intolerances"),
		SortBy:       c.Query("sort"),
		Limit:        limit,
	}

	res, err := h.recipeService.SearchPreviews(c.Context(), userID, req)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedSearchRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSearchRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	source, err := domain.ParseSource(c.Params("source"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeDetail, err)
	}

	res, err := h.recipeService.GetFullDetail(c.Context(), c.Params("id"), source, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) AddUserRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddRecipe, err)
	}

	id, err := h.recipeService.AddUserRecipe(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedAddRecipe, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"id": id}, fiber.StatusCreated, domain.MessageSuccessAddRecipe)
}

func (h *recipeHandler) GetUserRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.ListOwned(c.Context(), userID, domain.SourcePersonal)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) AddFamilyRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddRecipe, err)
	}

	id, err := h.recipeService.AddFamilyRecipe(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedAddRecipe, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"id": id}, fiber.StatusCreated, domain.MessageSuccessAddRecipe)
}

func (h *recipeHandler) GetFamilyRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.ListOwned(c.Context(), userID, domain.SourceShared)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) MarkFavorite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.MarkFavoriteRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkFavorite, err)
	}

	if err := h.recipeService.MarkFavorite(c.Context(), *req, userID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedMarkFavorite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkFavorite)
}

func (h *recipeHandler) GetFavorites(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.GetFavoritesExpanded(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetFavorites, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFavorites)
}

func (h *recipeHandler) GetLastViewed(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.GetLastViewed(c.Context(), userID)
	if err != nil {
		status := statusForError(err)
		// an unknown source here came out of our own view table, not from
		// the caller
		if errors.Is(err, domain.ErrUnknownSource) {
			status = fiber.StatusInternalServerError
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedGetLastViewed, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLastViewed)
}

func (h *recipeHandler) UploadRecipeImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	imageURL, err := h.recipeService.UploadRecipeImage(c.Context(), recipeID, userID, image)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"image_url": imageURL}, fiber.StatusOK, domain.MessageSuccessUploadImage)
}
