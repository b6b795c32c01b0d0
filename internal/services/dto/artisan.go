package dto

import (
	"time"

	"findartisan_backend/internal/models"
)

// ArtisanRegisterRequest - запрос регистрации мастера
type ArtisanRegisterRequest struct {
	Firstname       string `json:"firstname" binding:"required,min=2"`
	Lastname        string `json:"lastname" binding:"required,min=2"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// PersonalInfo - персональные данные анкеты
type PersonalInfo struct {
	Name            string `json:"name"`
	PhoneNumber     string `json:"phone_number"`
	Gender          string `json:"gender" binding:"omitempty,oneof=male female other"`
	FullAddress     string `json:"full_address"`
	State           string `json:"state"`
	City            string `json:"city"`
	LocalGovernment string `json:"local_government"`
}

// SkillPricing - условия по одному навыку
type SkillPricing struct {
	PricePerHour float64 `json:"price_per_hour" binding:"omitempty,gte=0"`
	Availability string  `json:"availability"`
	Address      string  `json:"address"`
}

// SkillInfo - один навык мастера
type SkillInfo struct {
	SkillName string       `json:"skill_name" binding:"required"`
	Pricing   SkillPricing `json:"pricing"`
}

// ProfessionalInfo - бизнес-данные анкеты
type ProfessionalInfo struct {
	BusinessName string      `json:"business_name"`
	ArtisanType  string      `json:"artisan_type"`
	Skills       []SkillInfo `json:"skills" binding:"omitempty,dive"`
}

// VerificationDocuments - ссылки на четыре обязательных документа
// (выданные blob-хранилищем, сами файлы сюда не попадают)
type VerificationDocuments struct {
	PassportPhoto       string `json:"passport_photo"`
	GovIDCard           string `json:"gov_id_card"`
	BusinessCertificate string `json:"business_certificate"`
	ProofOfAddress      string `json:"proof_of_address"`
}

// CompleteProfileRequest - полный payload завершения анкеты.
// Типизированный разбор вместо "утиных" JSON-объектов: либо вся структура
// распарсилась, либо единый список нарушений.
type CompleteProfileRequest struct {
	PersonalInfo          PersonalInfo          `json:"personal_info"`
	ProfessionalInfo      ProfessionalInfo      `json:"professional_info"`
	VerificationDocuments VerificationDocuments `json:"verification_documents"`
}

// FieldViolation - одно нарушение в списке валидации
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ReviewProfileRequest - решение администратора по анкете
type ReviewProfileRequest struct {
	Decision models.ArtisanStatus `json:"decision" binding:"required,oneof=approved rejected"`
}

// ArtisanProfileResponse - анкета мастера наружу
type ArtisanProfileResponse struct {
	ID                    string                `json:"id"`
	UserID                string                `json:"user_id"`
	PersonalInfo          PersonalInfo          `json:"personal_info"`
	ProfessionalInfo      ProfessionalInfo      `json:"professional_info"`
	VerificationDocuments VerificationDocuments `json:"verification_documents"`
	Status                models.ArtisanStatus  `json:"status"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
}

// ArtisanAuthResponse - ответ на регистрацию/логин мастера
type ArtisanAuthResponse struct {
	Success        bool                    `json:"success"`
	Message        string                  `json:"message,omitempty"`
	AccessToken    string                  `json:"access_token"`
	RefreshToken   string                  `json:"refresh_token"`
	ExpiresIn      int                     `json:"expires_in"`
	User           UserDTO                 `json:"user"`
	ArtisanProfile *ArtisanProfileResponse `json:"artisan_profile,omitempty"`
}

// NewArtisanProfileResponse собирает DTO анкеты из модели
func NewArtisanProfileResponse(p *models.ArtisanProfile) *ArtisanProfileResponse {
	skills := make([]SkillInfo, 0)
	for _, s := range p.GetSkills() {
		skills = append(skills, SkillInfo{
			SkillName: s.SkillName,
			Pricing: SkillPricing{
				PricePerHour: s.Pricing.PricePerHour,
				Availability: s.Pricing.Availability,
				Address:      s.Pricing.Address,
			},
		})
	}

	return &ArtisanProfileResponse{
		ID:     p.ID,
		UserID: p.UserID,
		PersonalInfo: PersonalInfo{
			Name:            p.Name,
			PhoneNumber:     p.PhoneNumber,
			Gender:          p.Gender,
			FullAddress:     p.FullAddress,
			State:           p.State,
			City:            p.City,
			LocalGovernment: p.LocalGovernment,
		},
		ProfessionalInfo: ProfessionalInfo{
			BusinessName: p.BusinessName,
			ArtisanType:  p.ArtisanType,
			Skills:       skills,
		},
		VerificationDocuments: VerificationDocuments{
			PassportPhoto:       p.PassportPhoto,
			GovIDCard:           p.GovIDCard,
			BusinessCertificate: p.BusinessCertificate,
			ProofOfAddress:      p.ProofOfAddress,
		},
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
