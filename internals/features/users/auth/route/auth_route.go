package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"materiku_backend/internals/features/users/auth/controller"
	"materiku_backend/internals/middlewares"
)

// AuthRoutes rute publik (tanpa JWT) + logout yang butuh token.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ac := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/login/google", middlewares.LoginRateLimiter(), ac.LoginGoogle)
	auth.Post("/refresh-token", ac.RefreshToken)
	auth.Post("/logout", ac.Logout)
}
