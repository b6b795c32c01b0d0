package services

import (
	"encoding/json"

	"findartisan_backend/internal/auth"
	"findartisan_backend/internal/models"
	"findartisan_backend/internal/repositories"
	"findartisan_backend/internal/services/dto"
	"findartisan_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ArtisanService interface {
	RegisterArtisan(db *gorm.DB, req *dto.ArtisanRegisterRequest) (*dto.ArtisanAuthResponse, error)
	LoginArtisan(db *gorm.DB, req *dto.LoginRequest) (*dto.ArtisanAuthResponse, error)
	CompleteProfile(db *gorm.DB, userID string, req *dto.CompleteProfileRequest) (*dto.ArtisanProfileResponse, error)
	GetProfile(db *gorm.DB, userID string) (*dto.ArtisanProfileResponse, error)
	ReviewProfile(db *gorm.DB, profileID string, decision models.ArtisanStatus) (*dto.ArtisanProfileResponse, error)
}

type ArtisanServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ArtisanProfileRepository
	authService AuthService
}

func NewArtisanService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ArtisanProfileRepository,
	authService AuthService,
) ArtisanService {
	return &ArtisanServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		authService: authService,
	}
}

// RegisterArtisan - регистрация мастера: аккаунт + минимальная анкета + токены
func (s *ArtisanServiceImpl) RegisterArtisan(db *gorm.DB, req *dto.ArtisanRegisterRequest) (*dto.ArtisanAuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}

	if _, err := s.authService.Register(db, &dto.RegisterRequest{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Password:  req.Password,
		Role:      models.UserRoleArtisan,
	}); err != nil {
		return nil, asAppError(err)
	}

	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	accessToken, refreshToken, expiresIn, err := issueTokenPair(db, s.userRepo, user)
	if err != nil {
		return nil, err
	}

	var profileResp *dto.ArtisanProfileResponse
	if user.ArtisanProfile != nil {
		profileResp = dto.NewArtisanProfileResponse(user.ArtisanProfile)
	}

	return &dto.ArtisanAuthResponse{
		Success:        true,
		Message:        "Artisan registered successfully",
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
		ExpiresIn:      expiresIn,
		User:           dto.NewUserDTO(user),
		ArtisanProfile: profileResp,
	}, nil
}

// LoginArtisan - вход мастера. В отличие от общего Login, чужая роль
// получает FORBIDDEN, а в ответ добавляется анкета.
func (s *ArtisanServiceImpl) LoginArtisan(db *gorm.DB, req *dto.LoginRequest) (*dto.ArtisanAuthResponse, error) {
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

	if user.Role != models.UserRoleArtisan {
		return nil, apperrors.ErrForbidden
	}

	profile, err := s.profileRepo.FindByUserID(db, user.ID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	accessToken, refreshToken, expiresIn, err := issueTokenPair(db, s.userRepo, user)
	if err != nil {
		return nil, err
	}

	return &dto.ArtisanAuthResponse{
		Success:        true,
		Message:        "Login successful",
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
		ExpiresIn:      expiresIn,
		User:           dto.NewUserDTO(user),
		ArtisanProfile: dto.NewArtisanProfileResponse(profile),
	}, nil
}

// CompleteProfile - одношаговое завершение анкеты: incomplete -> pending.
// Все нарушения собираются в один список, чтобы клиент исправил их за один
// круг. Сам переход - одно условное обновление по статусу, поэтому гонка
// повторных отправок не перетирает уже отправленные данные.
func (s *ArtisanServiceImpl) CompleteProfile(db *gorm.DB, userID string, req *dto.CompleteProfileRequest) (*dto.ArtisanProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleArtisan {
		return nil, apperrors.ErrForbidden
	}

	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if profile.Status != models.ArtisanStatusIncomplete {
		return nil, apperrors.ErrProfileExists
	}

	if violations := validateCompletion(req); len(violations) > 0 {
		return nil, apperrors.ValidationError(violations)
	}

	skills := make([]models.Skill, 0, len(req.ProfessionalInfo.Skills))
	for _, sk := range req.ProfessionalInfo.Skills {
		skills = append(skills, models.Skill{
			SkillName: sk.SkillName,
			Pricing: models.SkillPricing{
				PricePerHour: sk.Pricing.PricePerHour,
				Availability: sk.Pricing.Availability,
				Address:      sk.Pricing.Address,
			},
		})
	}
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	completion := &repositories.ProfileCompletion{
		Name:            req.PersonalInfo.Name,
		PhoneNumber:     req.PersonalInfo.PhoneNumber,
		Gender:          req.PersonalInfo.Gender,
		FullAddress:     req.PersonalInfo.FullAddress,
		State:           req.PersonalInfo.State,
		City:            req.PersonalInfo.City,
		LocalGovernment: req.PersonalInfo.LocalGovernment,

		BusinessName: req.ProfessionalInfo.BusinessName,
		ArtisanType:  req.ProfessionalInfo.ArtisanType,
		Skills:       datatypes.JSON(skillsJSON),

		PassportPhoto:       req.VerificationDocuments.PassportPhoto,
		GovIDCard:           req.VerificationDocuments.GovIDCard,
		BusinessCertificate: req.VerificationDocuments.BusinessCertificate,
		ProofOfAddress:      req.VerificationDocuments.ProofOfAddress,
	}

	if err := s.profileRepo.CompleteOnboarding(db, userID, completion); err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotIncomplete) {
			// Конкурирующая отправка успела раньше
			return nil, apperrors.ErrProfileExists
		}
		return nil, apperrors.InternalError(err)
	}

	updated, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewArtisanProfileResponse(updated), nil
}

// GetProfile возвращает анкету мастера по владельцу
func (s *ArtisanServiceImpl) GetProfile(db *gorm.DB, userID string) (*dto.ArtisanProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewArtisanProfileResponse(profile), nil
}

// ReviewProfile - решение администратора: pending -> approved/rejected.
// approved и rejected терминальны, повторное решение не принимается.
func (s *ArtisanServiceImpl) ReviewProfile(db *gorm.DB, profileID string, decision models.ArtisanStatus) (*dto.ArtisanProfileResponse, error) {
	if decision != models.ArtisanStatusApproved && decision != models.ArtisanStatusRejected {
		return nil, apperrors.NewBadRequestError("Decision must be 'approved' or 'rejected'")
	}

	profile, err := s.profileRepo.FindByID(db, profileID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if profile.Status != models.ArtisanStatusPending {
		return nil, apperrors.ErrInvalidStatus
	}

	if err := s.profileRepo.UpdateReviewStatus(db, profileID, decision); err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotPending) {
			return nil, apperrors.ErrInvalidStatus
		}
		return nil, apperrors.InternalError(err)
	}

	updated, err := s.profileRepo.FindByID(db, profileID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewArtisanProfileResponse(updated), nil
}

// validateCompletion собирает ВСЕ нарушения, без fail-fast:
// сначала обязательные поля, затем четыре документа, порядок стабильный
func validateCompletion(req *dto.CompleteProfileRequest) []dto.FieldViolation {
	var violations []dto.FieldViolation

	require := func(field, value, message string) {
		if value == "" {
			violations = append(violations, dto.FieldViolation{Field: field, Message: message})
		}
	}

	require("personal_info.name", req.PersonalInfo.Name, "Name is required")
	require("personal_info.phone_number", req.PersonalInfo.PhoneNumber, "Phone number is required")
	require("professional_info.artisan_type", req.ProfessionalInfo.ArtisanType, "Artisan type is required")

	docs := req.VerificationDocuments
	require("verification_documents.passport_photo", docs.PassportPhoto, "Passport photo is required")
	require("verification_documents.gov_id_card", docs.GovIDCard, "Government ID card is required")
	require("verification_documents.business_certificate", docs.BusinessCertificate, "Business certificate is required")
	require("verification_documents.proof_of_address", docs.ProofOfAddress, "Proof of address is required")

	return violations
}

// asAppError приводит ошибку сервиса к *AppError, заворачивая неизвестные
func asAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr
	}
	return apperrors.InternalError(err)
}
