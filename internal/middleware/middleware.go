package middleware

import (
	"Fresh-Reminder-Backend/domain"
	"Fresh-Reminder-Backend/internal/api/presenters"
	"Fresh-Reminder-Backend/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OwnershipGuard() fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

// AuthMiddleware verifies the bearer credential and stores the verified
// email claim in locals for the guards and handlers downstream.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageUnauthorized, nil)
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageUnauthorized, nil)
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		email, err := jwtService.GetEmailByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageUnauthorized, nil)
		}

		c.Locals("user_email", email)
		return c.Next()
	}
}

// OwnershipGuard rejects requests whose email query parameter differs
// from the verified claim. Must run after AuthMiddleware.
func (m *middleware) OwnershipGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claimEmail, _ := c.Locals("user_email").(string)
		queryEmail := c.Query("email")

		if claimEmail == "" || queryEmail != claimEmail {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageForbidden, nil)
		}

		return c.Next()
	}
}
