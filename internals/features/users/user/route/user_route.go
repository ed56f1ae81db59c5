package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"materiku_backend/internals/features/users/user/controller"
	authMiddleware "materiku_backend/internals/middlewares/auth"
)

// UserRoutes rute profil user (semua role)
func UserRoutes(api fiber.Router, db *gorm.DB) {
	uc := controller.NewUserController(db)

	user := api.Group("/users")
	user.Get("/me", uc.GetMe)
}

// UserAdminRoutes rute manajemen user (admin only)
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	uc := controller.NewUserController(db)

	users := admin.Group("/users", authMiddleware.AdminOnly("manajemen pengguna"))
	users.Get("/", uc.GetUsers)
	users.Get("/:id", uc.GetUser)
	users.Put("/:id", uc.UpdateUser)
	users.Delete("/:id", uc.DeactivateUser)
}
