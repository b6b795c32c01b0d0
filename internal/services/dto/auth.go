package dto

import (
	"time"

	"findartisan_backend/internal/models"
)

// RegisterRequest - запрос регистрации
type RegisterRequest struct {
	Firstname string          `json:"firstname" binding:"required,min=2"`
	Lastname  string          `json:"lastname" binding:"required,min=2"`
	Email     string          `json:"email" binding:"required,email"`
	Password  string          `json:"password" binding:"required,min=8"`
	Role      models.UserRole `json:"role" binding:"omitempty,oneof=user artisan"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest - запрос обновления токена
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest - запрос выхода
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// PasswordResetRequest - запрос кода сброса пароля
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirm - подтверждение сброса пароля
type PasswordResetConfirm struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// AuthResponse - ответ с токенами
type AuthResponse struct {
	Success      bool    `json:"success"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresIn    int     `json:"expires_in"` // секунды жизни access токена
	User         UserDTO `json:"user"`
}

// RefreshResponse - ответ на обновление access токена.
// Refresh токен не ротируется, поэтому возвращается только access.
type RefreshResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// UserDTO - базовая информация о пользователе
type UserDTO struct {
	ID            string          `json:"id"`
	Firstname     string          `json:"firstname"`
	Lastname      string          `json:"lastname"`
	Email         string          `json:"email"`
	Role          models.UserRole `json:"role"`
	EmailVerified bool            `json:"email_verified"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewUserDTO собирает DTO из модели (хеш пароля наружу не отдаем)
func NewUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:            user.ID,
		Firstname:     user.Firstname,
		Lastname:      user.Lastname,
		Email:         user.Email,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
}
