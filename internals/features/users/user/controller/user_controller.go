package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditModel "materiku_backend/internals/features/audit/model"
	auditService "materiku_backend/internals/features/audit/service"
	"materiku_backend/internals/features/users/user/dto"
	"materiku_backend/internals/features/users/user/model"
	helper "materiku_backend/internals/helpers"
)

type UserController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, validate: validator.New()}
}

// GET /api/admin/users
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := uc.DB.Model(&model.UserModel{})
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("user_name ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("[ERROR] Gagal menghitung users:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data pengguna")
	}

	var users []model.UserModel
	if err := q.Order("created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&users).Error; err != nil {
		log.Println("[ERROR] Gagal mengambil users:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data pengguna")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar pengguna berhasil diambil", dto.FromUserModels(users), &pagination)
}

// GET /api/users/me — profile user dari JWT
func (uc *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Pengguna tidak ditemukan")
	}

	return helper.JsonOK(c, "Profil berhasil diambil", dto.FromUserModel(&user))
}

// GET /api/admin/users/:id
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Pengguna tidak ditemukan")
	}

	return helper.JsonOK(c, "Detail pengguna berhasil diambil", dto.FromUserModel(&user))
}

// PUT /api/admin/users/:id — update nama/role/status aktif
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := uc.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Pengguna tidak ditemukan")
	}

	updates := map[string]interface{}{}
	if req.UserName != nil {
		updates["user_name"] = *req.UserName
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diupdate")
	}

	if err := uc.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Println("[ERROR] Gagal update user:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui pengguna")
	}

	log.Printf("[SUCCESS] User %s diupdate\n", user.ID)
	return helper.JsonOK(c, "Pengguna berhasil diperbarui", dto.FromUserModel(&user))
}

// DELETE /api/admin/users/:id — nonaktifkan akun (soft disable)
func (uc *UserController) DeactivateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	res := uc.DB.Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		log.Println("[ERROR] Gagal menonaktifkan user:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menonaktifkan pengguna")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Pengguna tidak ditemukan")
	}

	auditService.Record(uc.DB, c, auditModel.ActionUserDeactivated, id.String(), nil)

	return helper.JsonOK(c, "Pengguna berhasil dinonaktifkan", fiber.Map{"id": id.String()})
}
