package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"findartisan_backend/internal/auth"
	"findartisan_backend/internal/email"
	"findartisan_backend/internal/logger"
	"findartisan_backend/internal/models"
	"findartisan_backend/internal/repositories"
	"findartisan_backend/internal/services/dto"
	"findartisan_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Срок жизни кода сброса пароля
const resetCodeTTL = time.Hour

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserDTO, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(db *gorm.DB, refreshToken string) (*dto.RefreshResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	RequestPasswordReset(db *gorm.DB, emailAddr string) error
	ResetPassword(db *gorm.DB, emailAddr, code, newPassword string) error
	GetUserInfo(db *gorm.DB, userID string) (*dto.UserDTO, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	profileRepo   repositories.ArtisanProfileRepository
	emailProvider email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ArtisanProfileRepository,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		emailProvider: emailProvider,
	}
}

// Register - регистрация нового аккаунта.
// Для роли artisan в той же транзакции создается минимальная анкета
// в статусе incomplete: либо появляются оба документа, либо ни одного.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserDTO, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	role := req.Role
	if role == "" {
		role = models.UserRoleUser
	}
	if role != models.UserRoleUser && role != models.UserRoleArtisan {
		return nil, apperrors.NewBadRequestError("Invalid role specified")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.userRepo.Create(tx, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if role == models.UserRoleArtisan {
		// Анкета заранее заполняется данными аккаунта
		profile := &models.ArtisanProfile{
			UserID: user.ID,
			Name:   req.Firstname + " " + req.Lastname,
			Email:  user.Email,
			Status: models.ArtisanStatusIncomplete,
		}
		if err := s.profileRepo.Create(tx, profile); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	userDTO := dto.NewUserDTO(user)
	return &userDTO, nil
}

// Login - аутентификация по email и паролю.
// "Email не найден" и "пароль не подошел" дают один и тот же ответ.
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrAuthFailed
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrAuthFailed
	}

	if !user.IsActive {
		return nil, apperrors.ErrForbidden
	}

	accessToken, refreshToken, expiresIn, err := issueTokenPair(db, s.userRepo, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Success:      true,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         dto.NewUserDTO(user),
	}, nil
}

// RefreshToken выпускает новый access токен по refresh токену.
// Refresh токен не ротируется: каждый новый логин перезаписывает сохраненное
// значение, поэтому предъявленный токен сверяется с текущим на аккаунте.
func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, refreshToken string) (*dto.RefreshResponse, error) {
	claims, err := auth.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// Несовпадение с сохраненным значением покрывает logout и перезапись логином
	user, err := s.userRepo.FindByIDAndRefreshToken(db, claims.UserID, refreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	accessToken, err := auth.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.RefreshResponse{
		Success:     true,
		AccessToken: accessToken,
		ExpiresIn:   int(auth.AccessTokenTTL().Seconds()),
	}, nil
}

// Logout отзывает refresh токен. Идемпотентен:
// повторный выход с тем же токеном не считается ошибкой.
func (s *AuthServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	if err := s.userRepo.ClearRefreshToken(db, refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// RequestPasswordReset генерирует 6-значный код и отправляет его на email.
// Для неизвестного email отвечает NOT_FOUND - унаследованное поведение,
// компромисс с перечислимостью адресов принят осознанно.
func (s *AuthServiceImpl) RequestPasswordReset(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	code, err := generateResetCode()
	if err != nil {
		return apperrors.InternalError(err)
	}

	expiresAt := time.Now().Add(resetCodeTTL)
	if err := s.userRepo.SetResetCode(db, user.ID, code, expiresAt); err != nil {
		return apperrors.InternalError(err)
	}

	// Сбой доставки не откатывает код: пользователь может запросить повторно,
	// а каллер видит отдельный код ошибки
	if err := s.emailProvider.SendPasswordResetCode(user.Email, code); err != nil {
		logger.Error("failed to deliver password reset code", "error", err, "user_id", user.ID)
		return apperrors.EmailDeliveryError(err)
	}

	return nil
}

// ResetPassword - одноразовое погашение кода сброса.
// Какая именно часть тройки {email, код, срок} не совпала - не раскрывается.
func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, emailAddr, code, newPassword string) error {
	user, err := s.userRepo.FindByEmailAndResetCode(db, emailAddr, code)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidResetCode
		}
		return apperrors.InternalError(err)
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePasswordAndClearResetCode(db, user.ID, hashedPassword); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

// GetUserInfo возвращает данные аутентифицированного пользователя
func (s *AuthServiceImpl) GetUserInfo(db *gorm.DB, userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	userDTO := dto.NewUserDTO(user)
	return &userDTO, nil
}

// issueTokenPair выпускает пару токенов и сохраняет refresh на аккаунте.
// Перезапись предыдущего значения и есть его отзыв ("последний логин побеждает").
func issueTokenPair(db *gorm.DB, userRepo repositories.UserRepository, user *models.User) (string, string, int, error) {
	accessToken, err := auth.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", "", 0, apperrors.InternalError(err)
	}

	refreshToken, err := auth.GenerateRefreshToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", "", 0, apperrors.InternalError(err)
	}

	if err := userRepo.SetRefreshToken(db, user.ID, refreshToken); err != nil {
		return "", "", 0, apperrors.InternalError(err)
	}

	return accessToken, refreshToken, int(auth.AccessTokenTTL().Seconds()), nil
}

// generateResetCode возвращает равномерно случайный 6-значный код.
// Совпадения с ранее выданными кодами не проверяются.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
