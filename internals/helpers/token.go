package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GetRawAccessToken mengambil access token dari Authorization header
// (Bearer) atau cookie "access_token". Kosong jika tidak ada.
func GetRawAccessToken(c *fiber.Ctx) string {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}

// GetRefreshTokenFromCookie mengambil refresh token dari cookie.
func GetRefreshTokenFromCookie(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Cookies("refresh_token"))
}

// GetUserIDFromLocals membaca user_id yang disimpan auth middleware.
func GetUserIDFromLocals(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals("user_id").(string)
	if !ok || strings.TrimSpace(id) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user tidak dikenali")
	}
	return id, nil
}

// GetUserRoleFromLocals membaca role user dari context request.
func GetUserRoleFromLocals(c *fiber.Ctx) string {
	role, _ := c.Locals("userRole").(string)
	return role
}

// GetUserEmailFromLocals membaca email user dari context request.
func GetUserEmailFromLocals(c *fiber.Ctx) string {
	email, _ := c.Locals("userEmail").(string)
	return email
}

// IsAdmin: cek role admin dari locals.
func IsAdmin(c *fiber.Ctx) bool {
	return GetUserRoleFromLocals(c) == "admin"
}
