package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "materiku_backend/internals/features/users/auth/service"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// POST /api/auth/login/google
func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	return authService.LoginGoogle(ac.DB, c)
}

// POST /api/auth/refresh-token
func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	return authService.RefreshToken(ac.DB, c)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return authService.Logout(ac.DB, c)
}
