package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"souschef/internal/api/handlers"
	"souschef/internal/middleware"
)

type Config struct {
	App            *fiber.App
	AuthHandler    handlers.AuthHandler
	ProfileHandler handlers.ProfileHandler
	ItemHandler    handlers.ItemHandler
	RecipeHandler  handlers.RecipeHandler
	ScanHandler    handlers.ScanHandler
	Middleware     middleware.Middleware
	Authenticator  middleware.Authenticator
	MetricsHandler http.Handler
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.RequestLogger())
	c.GuestRoute()
	c.Auth()
	c.Profile()
	c.Items()
	c.Recipes()
	c.Scans()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	if c.MetricsHandler != nil {
		c.App.Get("/metrics", adaptor.HTTPHandler(c.MetricsHandler))
	}
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/sign-up", c.AuthHandler.SignUp)
		auth.Post("/sign-in", c.AuthHandler.SignIn)
		auth.Post("/check-password", c.AuthHandler.CheckPassword)
		auth.Post("/sign-out", c.Middleware.AuthMiddleware(c.Authenticator), c.AuthHandler.SignOut)
	}
}

func (c *Config) Profile() {
	profile := c.App.Group("/api/v1/profile", c.Middleware.AuthMiddleware(c.Authenticator))
	profile.Post("", c.ProfileHandler.CreateProfile)
	profile.Get("", c.ProfileHandler.GetProfile)
	profile.Delete("", c.ProfileHandler.CancelSetup)
}

func (c *Config) Items() {
	items := c.App.Group("/api/v1/items", c.Middleware.AuthMiddleware(c.Authenticator))
	items.Post("", c.ItemHandler.AddItem)
	items.Get("", c.ItemHandler.GetItems)
	items.Get("/:id", c.ItemHandler.GetItemDetails)
	items.Delete("/:id", c.ItemHandler.DeleteItem)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.Authenticator))
	recipes.Get("", c.RecipeHandler.GetTodaysRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Get("/:id/feasibility", c.RecipeHandler.CheckFeasibility)
}

func (c *Config) Scans() {
	scans := c.App.Group("/api/v1/scans", c.Middleware.AuthMiddleware(c.Authenticator))
	scans.Get("", c.ScanHandler.GetScans)
	scans.Post("/sessions", c.ScanHandler.StartSession)
	scans.Get("/sessions/:id", c.ScanHandler.GetSession)
	scans.Post("/sessions/:id/events", c.ScanHandler.SendEvent)
	scans.Post("/sessions/:id/capture", c.ScanHandler.CaptureImage)
	scans.Delete("/sessions/:id", c.ScanHandler.DismissSession)
}
