package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type ArtisanProfile struct {
	BaseModel
	UserID string `gorm:"uniqueIndex;not null"`

	// Personal info
	Name            string `gorm:"not null"`
	Email           string `gorm:"not null"`
	PhoneNumber     string
	Gender          string
	FullAddress     string
	State           string
	City            string
	LocalGovernment string

	// Professional info
	BusinessName string
	ArtisanType  string
	Skills       datatypes.JSON `gorm:"type:jsonb"` // [{"skill_name": ..., "pricing": {...}}]

	// Verification documents - ссылки в blob-хранилище, не сами файлы
	PassportPhoto       string
	GovIDCard           string
	BusinessCertificate string
	ProofOfAddress      string

	Status ArtisanStatus `gorm:"type:varchar(20);default:'incomplete'"`
}

// Skill - одна позиция из списка навыков мастера
type Skill struct {
	SkillName string       `json:"skill_name"`
	Pricing   SkillPricing `json:"pricing"`
}

type SkillPricing struct {
	PricePerHour float64 `json:"price_per_hour"`
	Availability string  `json:"availability"`
	Address      string  `json:"address"`
}

// GetSkills возвращает навыки профиля как slice
func (p *ArtisanProfile) GetSkills() []Skill {
	var skills []Skill
	if len(p.Skills) > 0 {
		_ = json.Unmarshal(p.Skills, &skills)
	}
	return skills
}

// SetSkills устанавливает навыки профиля
func (p *ArtisanProfile) SetSkills(skills []Skill) {
	data, _ := json.Marshal(skills)
	p.Skills = datatypes.JSON(data)
}

// HasAllDocuments проверяет, что все четыре обязательных документа загружены
func (p *ArtisanProfile) HasAllDocuments() bool {
	return p.PassportPhoto != "" && p.GovIDCard != "" &&
		p.BusinessCertificate != "" && p.ProofOfAddress != ""
}
