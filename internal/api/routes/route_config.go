package routes

import (
	"Fresh-Reminder-Backend/internal/api/handlers"
	"Fresh-Reminder-Backend/internal/middleware"
	"Fresh-Reminder-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App         *fiber.App
	FoodHandler handlers.FoodHandler
	Middleware  middleware.Middleware
	JWTService  jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Liveness()
	c.Foods()
}

func (c *Config) Liveness() {
	c.App.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Food Server is running")
	})
}

func (c *Config) Foods() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	guard := c.Middleware.OwnershipGuard()

	// Open listing and lookups
	c.App.Get("/foods", c.FoodHandler.GetFoods)
	c.App.Get("/foods/:id", c.FoodHandler.GetFoodByID)
	c.App.Get("/food/expiring-soon", c.FoodHandler.GetExpiringSoon)

	// Owner-scoped listing: verify the bearer credential, then require
	// the email filter to match the verified claim.
	c.App.Get("/food", auth, guard, c.FoodHandler.GetFoodsByOwner)
	c.App.Post("/food/remind", auth, guard, c.FoodHandler.SendExpiryReminder)

	// Mutations require a verified identity; record-level ownership is
	// enforced in the service layer.
	c.App.Post("/foods", auth, c.FoodHandler.AddFood)
	c.App.Put("/foods/:id", auth, c.FoodHandler.ReplaceFood)
	c.App.Patch("/foods/:id", auth, c.FoodHandler.UpdateFoodNote)
	c.App.Delete("/foods/:id", auth, c.FoodHandler.DeleteFood)
	c.App.Post("/foods/:id/image", auth, c.FoodHandler.UploadFoodImage)
}
