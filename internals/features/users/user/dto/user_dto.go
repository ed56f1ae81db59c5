package dto

import (
	"time"

	"materiku_backend/internals/features/users/user/model"
)

// UserResponse representasi user yang aman dikirim ke client
type UserResponse struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateUserRequest payload update profil oleh admin
type UpdateUserRequest struct {
	UserName *string `json:"user_name" validate:"omitempty,min=3,max=100"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin teacher"`
	IsActive *bool   `json:"is_active"`
}

func FromUserModel(u *model.UserModel) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		UserName:  u.UserName,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func FromUserModels(users []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, FromUserModel(&users[i]))
	}
	return out
}
