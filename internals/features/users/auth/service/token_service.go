package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"materiku_backend/internals/configs"
	userModel "materiku_backend/internals/features/users/user/model"
)

const (
	accessTTLDefault  = 15 * time.Minute
	refreshTTLDefault = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	if configs.JWTSecret == "" {
		return "", errors.New("JWT_SECRET belum diset")
	}
	return configs.JWTSecret, nil
}

func getRefreshSecret() (string, error) {
	if configs.JWTRefreshSecret != "" {
		return configs.JWTRefreshSecret, nil
	}
	// fallback ke secret utama
	return getJWTSecret()
}

func buildAccessClaims(user *userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id":   user.ID.String(),
		"user_name": user.UserName,
		"email":     user.Email,
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
}

func buildRefreshClaims(user *userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": user.ID.String(),
		"typ":     "refresh",
		"iat":     now.Unix(),
		"exp":     now.Add(refreshTTLDefault).Unix(),
	}
}

func signToken(claims jwt.MapClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateTokenPair membuat access + refresh token untuk user.
func GenerateTokenPair(user *userModel.UserModel, now time.Time) (accessToken, refreshToken string, err error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", "", err
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return "", "", err
	}

	accessToken, err = signToken(buildAccessClaims(user, now), secret)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = signToken(buildRefreshClaims(user, now), refreshSecret)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// ParseRefreshToken memverifikasi refresh token dan mengembalikan user_id.
func ParseRefreshToken(tokenString string) (string, error) {
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("metode signing tidak dikenal")
		}
		return []byte(refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("refresh token tidak valid")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return "", errors.New("bukan refresh token")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("claim user_id tidak ada")
	}
	return userID, nil
}

// jwtParse parse claims access token tanpa peduli signature method selain HMAC.
func jwtParse(tokenString, secret string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("metode signing tidak dikenal")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("token tidak valid")
	}
	return claims, nil
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(accessTTLDefault),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(refreshTTLDefault),
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := nowUTC().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
			Path:     "/",
			Expires:  expired,
			MaxAge:   -1,
		})
	}
}
