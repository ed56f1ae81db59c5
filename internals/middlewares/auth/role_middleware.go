// internals/middlewares/auth/role_middleware.go
package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"materiku_backend/internals/constants"
)

// RoleMiddlewareWithCustomError membatasi akses ke role tertentu.
// errMessage sudah berisi pesan final (pakai template dari constants).
func RoleMiddlewareWithCustomError(errMessage string, allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok || role == "" {
			log.Println("[WARNING] userRole tidak ada di context")
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Role tidak ditemukan")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return fiber.NewError(fiber.StatusForbidden, errMessage)
	}
}

// OnlyRolesSlice menerima daftar role dalam bentuk slice.
func OnlyRolesSlice(errMessage string, allowedRoles []string) fiber.Handler {
	return RoleMiddlewareWithCustomError(errMessage, allowedRoles...)
}

// AdminOnly shortcut untuk endpoint khusus admin.
func AdminOnly(feature string) fiber.Handler {
	return RoleMiddlewareWithCustomError(constants.RoleErrorAdmin(feature), constants.AdminOnly...)
}
