package models

import "time"

type User struct {
	BaseModel
	Firstname     string   `gorm:"not null"`
	Lastname      string   `gorm:"not null"`
	Email         string   `gorm:"uniqueIndex;not null"`
	PasswordHash  string   `gorm:"not null"`
	Role          UserRole `gorm:"type:varchar(20);not null"`
	IsActive      bool     `gorm:"default:true"`
	EmailVerified bool     `gorm:"default:false"`

	// Единственный активный refresh token ("последний логин побеждает").
	// Перезапись при новом логине неявно отзывает предыдущий.
	RefreshToken string

	// Пара для сброса пароля: 6-значный код + срок действия
	ResetCode    string
	ResetCodeExp *time.Time

	// Relations
	ArtisanProfile *ArtisanProfile `gorm:"foreignKey:UserID"`
}
