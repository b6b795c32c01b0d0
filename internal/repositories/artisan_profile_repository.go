package repositories

import (
	"errors"
	"time"

	"findartisan_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("artisan profile not found")
	ErrProfileNotIncomplete = errors.New("profile is not in incomplete status")
	ErrProfileNotPending    = errors.New("profile is not in pending status")
)

// ProfileCompletion - набор полей, записываемых при завершении анкеты
type ProfileCompletion struct {
	Name            string
	PhoneNumber     string
	Gender          string
	FullAddress     string
	State           string
	City            string
	LocalGovernment string

	BusinessName string
	ArtisanType  string
	Skills       datatypes.JSON

	PassportPhoto       string
	GovIDCard           string
	BusinessCertificate string
	ProofOfAddress      string
}

type ArtisanProfileRepository interface {
	Create(db *gorm.DB, profile *models.ArtisanProfile) error
	FindByID(db *gorm.DB, id string) (*models.ArtisanProfile, error)
	FindByUserID(db *gorm.DB, userID string) (*models.ArtisanProfile, error)

	// CompleteOnboarding - единое условное обновление incomplete -> pending
	CompleteOnboarding(db *gorm.DB, userID string, completion *ProfileCompletion) error

	// UpdateReviewStatus - единое условное обновление pending -> approved/rejected
	UpdateReviewStatus(db *gorm.DB, profileID string, status models.ArtisanStatus) error
}

type ArtisanProfileRepositoryImpl struct{}

func NewArtisanProfileRepository() ArtisanProfileRepository {
	return &ArtisanProfileRepositoryImpl{}
}

func (r *ArtisanProfileRepositoryImpl) Create(db *gorm.DB, profile *models.ArtisanProfile) error {
	return db.Create(profile).Error
}

func (r *ArtisanProfileRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.ArtisanProfile, error) {
	var profile models.ArtisanProfile
	err := db.First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ArtisanProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.ArtisanProfile, error) {
	var profile models.ArtisanProfile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// CompleteOnboarding переводит анкету в pending одним условным UPDATE.
// Конкурирующая повторная отправка получит RowsAffected == 0,
// а не затрет уже отправленные данные.
func (r *ArtisanProfileRepositoryImpl) CompleteOnboarding(db *gorm.DB, userID string, c *ProfileCompletion) error {
	result := db.Model(&models.ArtisanProfile{}).
		Where("user_id = ? AND status = ?", userID, models.ArtisanStatusIncomplete).
		Updates(map[string]interface{}{
			"name":                 c.Name,
			"phone_number":         c.PhoneNumber,
			"gender":               c.Gender,
			"full_address":         c.FullAddress,
			"state":                c.State,
			"city":                 c.City,
			"local_government":     c.LocalGovernment,
			"business_name":        c.BusinessName,
			"artisan_type":         c.ArtisanType,
			"skills":               c.Skills,
			"passport_photo":       c.PassportPhoto,
			"gov_id_card":          c.GovIDCard,
			"business_certificate": c.BusinessCertificate,
			"proof_of_address":     c.ProofOfAddress,
			"status":               models.ArtisanStatusPending,
			"updated_at":           time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotIncomplete
	}
	return nil
}

func (r *ArtisanProfileRepositoryImpl) UpdateReviewStatus(db *gorm.DB, profileID string, status models.ArtisanStatus) error {
	result := db.Model(&models.ArtisanProfile{}).
		Where("id = ? AND status = ?", profileID, models.ArtisanStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotPending
	}
	return nil
}
