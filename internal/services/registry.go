package services

import (
	"findartisan_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService    AuthService
	ArtisanService ArtisanService
	EmailService   email.Provider
}
