package services

import (
	"testing"

	"findartisan_backend/internal/models"
	"findartisan_backend/internal/services/dto"
	"findartisan_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newArtisanService() (ArtisanService, *fakeStore, func(t *testing.T) *gorm.DB) {
	userRepo, profileRepo, store := newFakeRepos()
	authSvc := NewAuthService(userRepo, profileRepo, &fakeEmailProvider{})
	svc := NewArtisanService(userRepo, profileRepo, authSvc)

	newDB := func(t *testing.T) *gorm.DB {
		db, mock := newTestDB(t)
		// Каждая регистрация - одна транзакция; неуспешная завершается откатом
		mock.MatchExpectationsInOrder(false)
		for i := 0; i < 4; i++ {
			mock.ExpectBegin()
			mock.ExpectCommit()
			mock.ExpectRollback()
		}
		return db
	}
	return svc, store, newDB
}

func artisanRegisterRequest() *dto.ArtisanRegisterRequest {
	return &dto.ArtisanRegisterRequest{
		Firstname:       "Bola",
		Lastname:        "Ade",
		Email:           "bola@example.com",
		Password:        "Passw0rd!",
		ConfirmPassword: "Passw0rd!",
	}
}

func completeProfileRequest() *dto.CompleteProfileRequest {
	return &dto.CompleteProfileRequest{
		PersonalInfo: dto.PersonalInfo{
			Name:            "Bola Ade",
			PhoneNumber:     "+2348012345678",
			Gender:          "female",
			FullAddress:     "12 Marina Road",
			State:           "Lagos",
			City:            "Ikeja",
			LocalGovernment: "Ikeja LGA",
		},
		ProfessionalInfo: dto.ProfessionalInfo{
			BusinessName: "Ade Woodworks",
			ArtisanType:  "carpenter",
			Skills: []dto.SkillInfo{
				{
					SkillName: "furniture",
					Pricing: dto.SkillPricing{
						PricePerHour: 25,
						Availability: "weekdays",
						Address:      "Ikeja",
					},
				},
			},
		},
		VerificationDocuments: dto.VerificationDocuments{
			PassportPhoto:       "verification/u1/passport.jpg",
			GovIDCard:           "verification/u1/gov-id.png",
			BusinessCertificate: "verification/u1/cert.pdf",
			ProofOfAddress:      "verification/u1/address.pdf",
		},
	}
}

func TestRegisterArtisan_PasswordMismatch(t *testing.T) {
	svc, store, newDB := newArtisanService()
	db := newDB(t)

	req := artisanRegisterRequest()
	req.ConfirmPassword = "Other0ne!"

	_, err := svc.RegisterArtisan(db, req)
	assertAppCode(t, err, apperrors.CodePasswordMismatch)
	assert.Empty(t, store.users)
}

func TestRegisterArtisan_Success(t *testing.T) {
	svc, _, newDB := newArtisanService()
	db := newDB(t)

	resp, err := svc.RegisterArtisan(db, artisanRegisterRequest())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, models.UserRoleArtisan, resp.User.Role)

	require.NotNil(t, resp.ArtisanProfile)
	assert.Equal(t, models.ArtisanStatusIncomplete, resp.ArtisanProfile.Status)
	assert.Equal(t, "Bola Ade", resp.ArtisanProfile.PersonalInfo.Name)
}

func TestRegisterArtisan_DuplicateEmail(t *testing.T) {
	svc, _, newDB := newArtisanService()
	db := newDB(t)

	_, err := svc.RegisterArtisan(db, artisanRegisterRequest())
	require.NoError(t, err)

	_, err = svc.RegisterArtisan(db, artisanRegisterRequest())
	assertAppCode(t, err, apperrors.CodeDuplicateEmail)
}

func TestLoginArtisan_RejectsOtherRoles(t *testing.T) {
	userRepo, profileRepo, _ := newFakeRepos()
	authSvc := NewAuthService(userRepo, profileRepo, &fakeEmailProvider{})
	svc := NewArtisanService(userRepo, profileRepo, authSvc)
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := authSvc.Register(db, registerRequest())
	require.NoError(t, err)

	_, err = svc.LoginArtisan(db, &dto.LoginRequest{Email: "ada@example.com", Password: "Passw0rd!"})
	assertAppCode(t, err, apperrors.CodeForbidden)
}

func TestLoginArtisan_ReturnsProfile(t *testing.T) {
	svc, _, newDB := newArtisanService()
	db := newDB(t)

	_, err := svc.RegisterArtisan(db, artisanRegisterRequest())
	require.NoError(t, err)

	resp, err := svc.LoginArtisan(db, &dto.LoginRequest{Email: "bola@example.com", Password: "Passw0rd!"})
	require.NoError(t, err)

	require.NotNil(t, resp.ArtisanProfile)
	assert.Equal(t, models.ArtisanStatusIncomplete, resp.ArtisanProfile.Status)
}

func TestCompleteProfile_AccumulatesAllViolations(t *testing.T) {
	svc, _, newDB := newArtisanService()
	db := newDB(t)

	reg, err := svc.RegisterArtisan(db, artisanRegisterRequest())
	require.NoError(t, err)

	req := completeProfileRequest()
	req.PersonalInfo.Name = ""
	req.ProfessionalInfo.ArtisanType = ""
	req.VerificationDocuments.ProofOfAddress = ""

	_, err = svc.CompleteProfile(db, reg.User.ID, req)
	appErr := assertAppCode(t, err, apperrors.CodeValidationFailed)

	// Все нарушения одним списком, порядок стабильный
	violations, ok := appErr.Details.([]dto.FieldViolation)
	require.True(t, ok, "expected []dto.FieldViolation details, got %T", appErr.Details)
	require.Len(t, violations, 3)
	assert.Equal(t, "personal_info.name", violations[0].Field)
	assert.Equal(t, "professional_info.artisan_type", violations[1].Field)
	assert.Equal(t, "verification_documents.proof_of_address", violations[2].Field)
}

func TestCompleteProfile_TransitionsToPending(t *testing.T) {
	svc, store, newDB := newArtisanService()
	db := newDB(t)

	reg, err := svc.RegisterArtisan(db, artisanRegisterRequest())
	require.NoError(t, err)

	profile, err := svc.CompleteProfile(db, reg.User.ID, completeProfileRequest())
	require.NoError(t, err)

	assert.Equal(t, models.ArtisanStatusPending, profile.Status)
	assert.Equal(t, "carpenter", profile.ProfessionalInfo.ArtisanType)
	require.Len(t, profile.ProfessionalInfo.Skills, 1)
	assert.Equal(t, "furniture", profile.ProfessionalInfo.Skills[0].SkillName)
	assert.Equal(t, float64(25), profile.ProfessionalInfo.Skills[0].Pricing.PricePerHour)

	stored := store.profiles[profile.ID]
	require.NotNil(t, stored)
	assert.Equal(t, models.ArtisanStatusPending, stored.Status)
}

func TestCompleteProfile_SecondSubmissionRejected(t *testing.T) {
	svc, store, newDB := newArtisanService()
	db := newDB(t)

	reg, err := svc.RegisterArtisan(db, artisanRegisterRequest())
	require.NoError(t, err)

	first, err := svc.CompleteProfile(db, reg.User.ID, completeProfileRequest())
	require.NoError(t, err)

	again := completeProfileRequest()
	again.PersonalInfo.Name = "Someone Else"

	_, err = svc.CompleteProfile(db, reg.User.ID, again)
	assertAppCode(t, err, apperrors.CodeProfileExists)

	// Отклоненная повторная отправка не перетирает данные
	assert.Equal(t, "Bola Ade", store.profiles[first.ID].Name)
}

func TestCompleteProfile_NonArtisanForbidden(t *testing.T) {
	userRepo, profileRepo, _ := newFakeRepos()
	authSvc := NewAuthService(userRepo, profileRepo, &fakeEmailProvider{})
	svc := NewArtisanService(userRepo, profileRepo, authSvc)
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	reg, err := authSvc.Register(db, registerRequest())
	require.NoError(t, err)

	_, err = svc.CompleteProfile(db, reg.ID, completeProfileRequest())
	assertAppCode(t, err, apperrors.CodeForbidden)
}

func TestGetProfile_NotFound(t *testing.T) {
	svc, _, newDB := newArtisanService()
	db := newDB(t)

	_, err := svc.GetProfile(db, "missing-user")
	assertAppCode(t, err, apperrors.CodeProfileNotFound)
}

func TestReviewProfile_ApproveIsTerminal(t *testing.T) {
	svc, _, newDB := newArtisanService()
	db := newDB(t)

	reg, err := svc.RegisterArtisan(db, artisanRegisterRequest())
	require.NoError(t, err)
	pending, err := svc.CompleteProfile(db, reg.User.ID, completeProfileRequest())
	require.NoError(t, err)

	approved, err := svc.ReviewProfile(db, pending.ID, models.ArtisanStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ArtisanStatusApproved, approved.Status)

	// Решение окончательное, пересмотр не принимается
	_, err = svc.ReviewProfile(db, pending.ID, models.ArtisanStatusRejected)
	assertAppCode(t, err, apperrors.CodeInvalidStatus)
}

func TestReviewProfile_RejectIsTerminal(t *testing.T) {
	svc, _, newDB := newArtisanService()
	db := newDB(t)

	reg, err := svc.RegisterArtisan(db, artisanRegisterRequest())
	require.NoError(t, err)
	pending, err := svc.CompleteProfile(db, reg.User.ID, completeProfileRequest())
	require.NoError(t, err)

	rejected, err := svc.ReviewProfile(db, pending.ID, models.ArtisanStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.ArtisanStatusRejected, rejected.Status)

	// Отклоненная анкета не возвращается в incomplete
	_, err = svc.CompleteProfile(db, reg.User.ID, completeProfileRequest())
	assertAppCode(t, err, apperrors.CodeProfileExists)
}

func TestReviewProfile_InvalidDecision(t *testing.T) {
	svc, _, newDB := newArtisanService()
	db := newDB(t)

	_, err := svc.ReviewProfile(db, "any-id", models.ArtisanStatusIncomplete)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestReviewProfile_IncompleteNotReviewable(t *testing.T) {
	svc, _, newDB := newArtisanService()
	db := newDB(t)

	reg, err := svc.RegisterArtisan(db, artisanRegisterRequest())
	require.NoError(t, err)
	require.NotNil(t, reg.ArtisanProfile)

	_, err = svc.ReviewProfile(db, reg.ArtisanProfile.ID, models.ArtisanStatusApproved)
	assertAppCode(t, err, apperrors.CodeInvalidStatus)
}
