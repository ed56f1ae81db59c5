package service

import (
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"materiku_backend/internals/configs"
	"materiku_backend/internals/constants"
	auditModel "materiku_backend/internals/features/audit/model"
	auditService "materiku_backend/internals/features/audit/service"
	authModel "materiku_backend/internals/features/users/auth/model"
	authRepo "materiku_backend/internals/features/users/auth/repository"
	userModel "materiku_backend/internals/features/users/user/model"
	helper "materiku_backend/internals/helpers"
)

/* ==========================
   LOGIN GOOGLE
========================== */

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(input.IDToken) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "id_token wajib diisi")
	}

	// Verifikasi token Google
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}

	// Decode claim
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID Token")
	}
	email, name, googleID := claimSet.Email, claimSet.Name, claimSet.Sub

	// Batasi ke domain sekolah jika dikonfigurasi
	if !isAllowedDomain(email) {
		log.Printf("[WARNING] Login ditolak, domain tidak diizinkan: %s\n", email)
		return helper.JsonError(c, fiber.StatusForbidden, "Email di luar domain sekolah tidak diizinkan")
	}

	// Cari by google_id
	user, err := authRepo.FindUserByGoogleID(db, googleID)
	if err != nil {
		// Belum ada via google_id; coba email lama lalu tautkan
		if existing, errEmail := authRepo.FindUserByEmail(db, email); errEmail == nil {
			existing.GoogleID = &googleID
			if err := db.Model(existing).Update("google_id", googleID).Error; err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menautkan akun Google")
			}
			user = existing
		} else {
			// User baru -> default role teacher
			newUser := userModel.UserModel{
				UserName: name,
				Email:    email,
				Password: generateDummyPassword(),
				GoogleID: &googleID,
				Avatar:   claimSet.Picture,
				Role:     constants.RoleTeacher,
				IsActive: true,
			}
			if err := authRepo.CreateUser(db, &newUser); err != nil {
				low := strings.ToLower(err.Error())
				if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
					return helper.JsonError(c, fiber.StatusBadRequest, "Email already registered")
				}
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create Google user")
			}
			log.Printf("[SUCCESS] User baru dibuat via Google: %s\n", email)
			user = &newUser
		}
	}

	// Guard akun nonaktif
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}

	auditService.RecordAs(db, c, &user.ID, user.Email, auditModel.ActionUserLoggedIn, user.ID.String(), nil)

	return issueTokens(c, db, user)
}

func isAllowedDomain(email string) bool {
	if len(configs.GoogleAllowedDomains) == 0 {
		return true
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, allowed := range configs.GoogleAllowedDomains {
		if domain == strings.ToLower(strings.TrimSpace(allowed)) {
			return true
		}
	}
	return false
}

func issueTokens(c *fiber.Ctx, db *gorm.DB, user *userModel.UserModel) error {
	now := nowUTC()
	accessToken, refreshToken, err := GenerateTokenPair(user, now)
	if err != nil {
		log.Println("[ERROR] Gagal membuat token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	rt := authModel.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: now.Add(refreshTTLDefault),
	}
	if err := authRepo.CreateRefreshToken(db, &rt); err != nil {
		log.Println("[ERROR] Gagal menyimpan refresh token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan sesi")
	}

	setAuthCookies(c, accessToken, refreshToken, now)

	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": fiber.Map{
			"id":        user.ID.String(),
			"user_name": user.UserName,
			"email":     user.Email,
			"avatar":    user.Avatar,
			"role":      user.Role,
		},
	})
}

/* ==========================
   REFRESH
========================== */

func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	tokenString := helper.GetRefreshTokenFromCookie(c)
	if tokenString == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.BodyParser(&body); err == nil {
			tokenString = strings.TrimSpace(body.RefreshToken)
		}
	}
	if tokenString == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ditemukan")
	}

	// Harus terdaftar di DB (bisa dicabut saat logout)
	stored, err := authRepo.FindRefreshToken(db, tokenString)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak dikenal")
	}
	if nowUTC().After(stored.ExpiresAt) {
		_ = authRepo.DeleteRefreshToken(db, tokenString)
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token kedaluwarsa")
	}

	userIDStr, err := ParseRefreshToken(tokenString)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak valid")
	}

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}

	// Rotasi: hapus token lama, terbitkan pasangan baru
	_ = authRepo.DeleteRefreshToken(db, tokenString)

	return issueTokens(c, db, user)
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	accessToken := helper.GetRawAccessToken(c)

	ttl := resolveBlacklistTTL(accessToken)
	if accessToken != "" {
		if err := authRepo.BlacklistToken(db, accessToken, ttl); err != nil {
			log.Printf("[WARN] Failed to blacklist token: %v", err)
		}
	} else {
		log.Println("[INFO] Logout tanpa access token; lanjut clear cookies (idempotent)")
	}

	if rt := helper.GetRefreshTokenFromCookie(c); rt != "" {
		_ = authRepo.DeleteRefreshToken(db, rt)
	}

	// Identitas diambil dari claim token karena rute ini di luar middleware JWT
	if userID, email, ok := identityFromAccessToken(accessToken); ok {
		auditService.RecordAs(db, c, userID, email, auditModel.ActionUserLoggedOut, "", nil)
	}

	clearAuthCookies(c)

	return helper.JsonOK(c, "Logout successful", nil)
}

func resolveBlacklistTTL(accessToken string) time.Duration {
	ttl := 2 * time.Minute
	secret, err := getJWTSecret()
	if err != nil || accessToken == "" {
		return ttl
	}
	if tok, err := jwtParse(accessToken, secret); err == nil {
		if exp, ok := tok["exp"].(float64); ok {
			until := time.Until(time.Unix(int64(exp), 0))
			if until > 0 {
				return until + 60*time.Second
			}
			return time.Minute
		}
	}
	return ttl
}

/* ==========================
   UTIL
========================== */

func identityFromAccessToken(accessToken string) (*uuid.UUID, string, bool) {
	if accessToken == "" {
		return nil, "", false
	}
	secret, err := getJWTSecret()
	if err != nil {
		return nil, "", false
	}
	claims, err := jwtParse(accessToken, secret)
	if err != nil {
		return nil, "", false
	}
	email, _ := claims["email"].(string)
	if idStr, ok := claims["user_id"].(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			return &id, email, true
		}
	}
	return nil, email, email != ""
}

func generateDummyPassword() string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	return string(hash)
}
