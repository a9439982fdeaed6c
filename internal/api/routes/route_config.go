package routes

import (
	"Recipe-Hub-Backend/internal/api/handlers"
	"Recipe-Hub-Backend/internal/middleware"
	"Recipe-Hub-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	RecipeHandler handlers.RecipeHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// account routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}

	// personal state routes
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	{
		user.Post("/recipes", auth, c.RecipeHandler.AddUserRecipe)
		user.Get("/recipes", auth, c.RecipeHandler.GetUserRecipes)
		user.Post("/recipes/:id/image", auth, c.RecipeHandler.UploadRecipeImage)
		user.Post("/family-recipes", auth, c.RecipeHandler.AddFamilyRecipe)
		user.Get("/family-recipes", auth, c.RecipeHandler.GetFamilyRecipes)
		user.Post("/favorites", auth, c.RecipeHandler.MarkFavorite)
		user.Get("/favorites", auth, c.RecipeHandler.GetFavorites)
		user.Get("/last-viewed", auth, c.RecipeHandler.GetLastViewed)
	}
}

func (c *Config) Recipes() {
	// browsing works anonymously; a valid token enriches previews with
	// per-user favorite/viewed flags
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)
	recipes := c.App.Group("/api/v1/recipes", optional)
	{
		recipes.Get("/random", c.RecipeHandler.GetRandomRecipes)
		recipes.Get("/search", c.RecipeHandler.SearchRecipes)
		recipes.Get("/:source/:id", c.RecipeHandler.GetRecipeDetail)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
