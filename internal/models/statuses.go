package models

type UserRole string
type ArtisanStatus string

const (
	UserRoleUser    UserRole = "user"
	UserRoleArtisan UserRole = "artisan"
	UserRoleAdmin   UserRole = "admin"

	// Жизненный цикл анкеты мастера: заполняется пошагово,
	// approved/rejected - терминальные статусы
	ArtisanStatusIncomplete ArtisanStatus = "incomplete"
	ArtisanStatusPending    ArtisanStatus = "pending"
	ArtisanStatusApproved   ArtisanStatus = "approved"
	ArtisanStatusRejected   ArtisanStatus = "rejected"
)

// IsTerminal сообщает, можно ли еще менять статус анкеты
func (s ArtisanStatus) IsTerminal() bool {
	return s == ArtisanStatusApproved || s == ArtisanStatusRejected
}
