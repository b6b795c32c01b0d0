package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")

	accessSecret  []byte
	refreshSecret []byte
	accessTTL     = 30 * time.Minute
	refreshTTL    = 7 * 24 * time.Hour
)

// Claims - полезная нагрузка обоих видов токенов
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Init настраивает секреты и сроки жизни токенов.
// Вызывается один раз при старте приложения.
func Init(secret, refresh string, accessLifetime, refreshLifetime time.Duration) {
	accessSecret = []byte(secret)
	refreshSecret = []byte(refresh)
	if accessLifetime > 0 {
		accessTTL = accessLifetime
	}
	if refreshLifetime > 0 {
		refreshTTL = refreshLifetime
	}
}

// AccessTokenTTL возвращает срок жизни access токена
func AccessTokenTTL() time.Duration {
	return accessTTL
}

// GenerateAccessToken выпускает короткоживущий access токен (stateless)
func GenerateAccessToken(userID, email, role string) (string, error) {
	return generate(userID, email, role, accessSecret, accessTTL)
}

// GenerateRefreshToken выпускает долгоживущий refresh токен.
// Его актуальность дополнительно проверяется по значению, сохраненному на аккаунте.
func GenerateRefreshToken(userID, email, role string) (string, error) {
	return generate(userID, email, role, refreshSecret, refreshTTL)
}

func generate(userID, email, role string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseAccessToken проверяет подпись и срок действия access токена
func ParseAccessToken(tokenStr string) (*Claims, error) {
	return parse(tokenStr, accessSecret)
}

// ParseRefreshToken проверяет подпись и срок действия refresh токена
func ParseRefreshToken(tokenStr string) (*Claims, error) {
	return parse(tokenStr, refreshSecret)
}

func parse(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
