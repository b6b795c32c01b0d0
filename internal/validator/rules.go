package validator

import (
	"log"

	"findartisan_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка регистрации правила - ошибка времени запуска приложения
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-user-role': Проверяет, что роль пользователя валидна
	mustRegister("is-user-role", validateUserRole)

	// 'is-artisan-status': Проверяет, что статус анкеты валиден
	mustRegister("is-artisan-status", validateArtisanStatus)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Не проверяем пустые значения, для этого есть 'required'
	}

	switch models.UserRole(value) {
	case models.UserRoleUser, models.UserRoleArtisan, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateArtisanStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	switch models.ArtisanStatus(value) {
	case models.ArtisanStatusIncomplete, models.ArtisanStatusPending,
		models.ArtisanStatusApproved, models.ArtisanStatusRejected:
		return true
	default:
		return false
	}
}
