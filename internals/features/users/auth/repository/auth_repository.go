package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "materiku_backend/internals/features/users/auth/model"
	userModel "materiku_backend/internals/features/users/user/model"
)

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByGoogleID(db *gorm.DB, googleID string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, id uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func CreateRefreshToken(db *gorm.DB, rt *authModel.RefreshToken) error {
	return db.Create(rt).Error
}

func FindRefreshToken(db *gorm.DB, token string) (*authModel.RefreshToken, error) {
	var rt authModel.RefreshToken
	if err := db.Where("token = ?", token).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func DeleteRefreshToken(db *gorm.DB, token string) error {
	return db.Where("token = ?", token).Delete(&authModel.RefreshToken{}).Error
}

func DeleteRefreshTokensByUser(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("user_id = ?", userID).Delete(&authModel.RefreshToken{}).Error
}

// BlacklistToken idempotent: token yang sama tidak dicatat dua kali.
func BlacklistToken(db *gorm.DB, token string, ttl time.Duration) error {
	var existing authModel.TokenBlacklist
	if err := db.Where("token = ? AND deleted_at IS NULL", token).First(&existing).Error; err == nil {
		return nil
	}
	entry := authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: time.Now().UTC().Add(ttl),
	}
	return db.Create(&entry).Error
}

func DeleteExpiredBlacklist(db *gorm.DB) (int64, error) {
	res := db.Unscoped().
		Where("expired_at < ?", time.Now().UTC()).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}

func DeleteExpiredRefreshTokens(db *gorm.DB) (int64, error) {
	res := db.Where("expires_at < ?", time.Now().UTC()).
		Delete(&authModel.RefreshToken{})
	return res.RowsAffected, res.Error
}
