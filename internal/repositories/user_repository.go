package repositories

import (
	"errors"
	"strings"
	"time"

	"findartisan_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// Все методы принимают 'db *gorm.DB', чтобы хендлер мог передать транзакцию
type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error

	// Refresh token: единственное активное значение на аккаунте
	SetRefreshToken(db *gorm.DB, userID, token string) error
	FindByIDAndRefreshToken(db *gorm.DB, userID, token string) (*models.User, error)
	ClearRefreshToken(db *gorm.DB, token string) error

	// Сброс пароля
	SetResetCode(db *gorm.DB, userID, code string, expiresAt time.Time) error
	FindByEmailAndResetCode(db *gorm.DB, email, code string) (*models.User, error)
	UpdatePasswordAndClearResetCode(db *gorm.DB, userID, passwordHash string) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("ArtisanProfile").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail ищет аккаунт по email без учета регистра
func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Preload("ArtisanProfile").
		First(&user, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	user.Email = strings.ToLower(user.Email)

	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return db.Create(user).Error
}

func (r *UserRepositoryImpl) SetRefreshToken(db *gorm.DB, userID, token string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"refresh_token": token,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindByIDAndRefreshToken(db *gorm.DB, userID, token string) (*models.User, error) {
	var user models.User
	err := db.Where("id = ? AND refresh_token = ? AND refresh_token != ''", userID, token).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ClearRefreshToken снимает токен с владельца. Идемпотентна:
// отсутствие совпадения не считается ошибкой (повторный logout)
func (r *UserRepositoryImpl) ClearRefreshToken(db *gorm.DB, token string) error {
	return db.Model(&models.User{}).Where("refresh_token = ?", token).
		Update("refresh_token", "").Error
}

func (r *UserRepositoryImpl) SetResetCode(db *gorm.DB, userID, code string, expiresAt time.Time) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"reset_code":     code,
		"reset_code_exp": expiresAt,
		"updated_at":     time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// FindByEmailAndResetCode находит аккаунт по паре email+код с еще не истекшим сроком.
// Любое несовпадение неразличимо для вызывающего - просто ErrUserNotFound.
func (r *UserRepositoryImpl) FindByEmailAndResetCode(db *gorm.DB, email, code string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ? AND reset_code = ? AND reset_code != '' AND reset_code_exp > ?",
		strings.ToLower(email), code, time.Now()).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePasswordAndClearResetCode записывает новый хеш и гасит код (одноразовость)
func (r *UserRepositoryImpl) UpdatePasswordAndClearResetCode(db *gorm.DB, userID, passwordHash string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash":  passwordHash,
		"reset_code":     "",
		"reset_code_exp": nil,
		"updated_at":     time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
