package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

const (
	// Системные и неизвестные ошибки
	CodeInternalError ErrorCode = "SERVER_ERROR"
	CodeEmailDelivery ErrorCode = "EMAIL_DELIVERY_FAILED"

	// Валидация входных данных
	CodeValidationFailed ErrorCode = "VALIDATION_ERROR"
	CodePasswordMismatch ErrorCode = "PASSWORD_MISMATCH"

	// Аккаунты
	CodeDuplicateEmail ErrorCode = "DUPLICATE_EMAIL"
	CodeNotFound       ErrorCode = "NOT_FOUND"

	// Аутентификация и авторизация
	CodeAuthFailed      ErrorCode = "AUTH_FAILED"
	CodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeInvalidToken    ErrorCode = "INVALID_TOKEN"

	// Анкета мастера
	CodeProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"
	CodeProfileExists   ErrorCode = "PROFILE_EXISTS"
	CodeInvalidStatus   ErrorCode = "INVALID_STATUS"

	// Сброс пароля
	CodeInvalidResetCode ErrorCode = "INVALID_OR_EXPIRED_CODE"
)
