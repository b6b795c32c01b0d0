package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError - основная структура ошибки приложения
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Конструктор
func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap - оборачивает существующую ошибку в AppError
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// Вспомогательные методы
func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// Для маршалинга в JSON
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is - обертка над стандартной функцией errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As - обертка над стандартной функцией errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Предопределенные ошибки
var (
	// Аутентификация.
	// ErrAuthFailed используется и для "email не найден", и для "пароль не подошел":
	// одинаковый код и текст не позволяют перебирать зарегистрированные email.
	ErrAuthFailed      = New(CodeAuthFailed, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthenticated = New(CodeUnauthenticated, "Invalid or expired token", http.StatusUnauthorized)
	ErrForbidden       = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken    = New(CodeInvalidToken, "Invalid refresh token", http.StatusUnauthorized)

	// Аккаунты
	ErrUserNotFound       = New(CodeNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeDuplicateEmail, "Email already exists", http.StatusConflict)
	ErrPasswordMismatch   = New(CodePasswordMismatch, "Passwords do not match", http.StatusBadRequest)

	// Анкета мастера
	ErrProfileNotFound = New(CodeProfileNotFound, "Artisan profile not found", http.StatusNotFound)
	ErrProfileExists   = New(CodeProfileExists, "Profile already submitted", http.StatusBadRequest)
	ErrInvalidStatus   = New(CodeInvalidStatus, "Profile is not awaiting review", http.StatusBadRequest)

	// Сброс пароля
	ErrInvalidResetCode = New(CodeInvalidResetCode, "Invalid or expired reset code", http.StatusBadRequest)

	// Валидация
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
)

// InternalError оборачивает неизвестную системную ошибку
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

// ValidationError создает ошибку валидации с деталями
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "Validation failed", http.StatusBadRequest).WithDetails(details)
}

// EmailDeliveryError сообщает о сбое отправки письма.
// Генерация кода при этом не откатывается - каллер узнает о сбое отдельным кодом.
func EmailDeliveryError(err error) *AppError {
	return Wrap(err, CodeEmailDelivery, "Failed to send email", http.StatusInternalServerError)
}

// NewUnauthorizedError создает ошибку авторизации
func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthenticated, message, http.StatusUnauthorized)
}

// NewBadRequestError создает ошибку 400
func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}
