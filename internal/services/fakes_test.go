package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"findartisan_backend/internal/email"
	"findartisan_backend/internal/models"
	"findartisan_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var errSMTPDown = errors.New("smtp connection refused")

// fakeStore - общее in-memory состояние для фейковых репозиториев.
// Аргумент db игнорируется, транзакционность проверяется через sqlmock.
type fakeStore struct {
	users    map[string]*models.User           // по ID
	profiles map[string]*models.ArtisanProfile // по ID
}

type fakeUserRepo struct{ *fakeStore }
type fakeProfileRepo struct{ *fakeStore }

var (
	_ repositories.UserRepository           = fakeUserRepo{}
	_ repositories.ArtisanProfileRepository = fakeProfileRepo{}
)

func newFakeRepos() (fakeUserRepo, fakeProfileRepo, *fakeStore) {
	store := &fakeStore{
		users:    make(map[string]*models.User),
		profiles: make(map[string]*models.ArtisanProfile),
	}
	return fakeUserRepo{store}, fakeProfileRepo{store}, store
}

func (s *fakeStore) profileOf(userID string) *models.ArtisanProfile {
	for _, p := range s.profiles {
		if p.UserID == userID {
			cp := *p
			return &cp
		}
	}
	return nil
}

func (r fakeUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	u := *user
	u.ArtisanProfile = r.profileOf(id)
	return &u, nil
}

func (r fakeUserRepo) FindByEmail(db *gorm.DB, emailAddr string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == strings.ToLower(emailAddr) {
			u := *user
			u.ArtisanProfile = r.profileOf(user.ID)
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r fakeUserRepo) Create(db *gorm.DB, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r fakeUserRepo) SetRefreshToken(db *gorm.DB, userID, token string) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.RefreshToken = token
	return nil
}

func (r fakeUserRepo) FindByIDAndRefreshToken(db *gorm.DB, userID, token string) (*models.User, error) {
	user, ok := r.users[userID]
	if !ok || user.RefreshToken == "" || user.RefreshToken != token {
		return nil, repositories.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (r fakeUserRepo) ClearRefreshToken(db *gorm.DB, token string) error {
	for _, user := range r.users {
		if user.RefreshToken == token {
			user.RefreshToken = ""
		}
	}
	return nil
}

func (r fakeUserRepo) SetResetCode(db *gorm.DB, userID, code string, expiresAt time.Time) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.ResetCode = code
	exp := expiresAt
	user.ResetCodeExp = &exp
	return nil
}

func (r fakeUserRepo) FindByEmailAndResetCode(db *gorm.DB, emailAddr, code string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email != strings.ToLower(emailAddr) {
			continue
		}
		if user.ResetCode == "" || user.ResetCode != code {
			break
		}
		if user.ResetCodeExp == nil || !user.ResetCodeExp.After(time.Now()) {
			break
		}
		u := *user
		return &u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r fakeUserRepo) UpdatePasswordAndClearResetCode(db *gorm.DB, userID, passwordHash string) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.ResetCode = ""
	user.ResetCodeExp = nil
	return nil
}

func (r fakeProfileRepo) Create(db *gorm.DB, profile *models.ArtisanProfile) error {
	profile.ID = uuid.New().String()
	profile.CreatedAt = time.Now()
	stored := *profile
	r.profiles[profile.ID] = &stored
	return nil
}

func (r fakeProfileRepo) FindByID(db *gorm.DB, id string) (*models.ArtisanProfile, error) {
	profile, ok := r.profiles[id]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	cp := *profile
	return &cp, nil
}

func (r fakeProfileRepo) FindByUserID(db *gorm.DB, userID string) (*models.ArtisanProfile, error) {
	if p := r.profileOf(userID); p != nil {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (r fakeProfileRepo) CompleteOnboarding(db *gorm.DB, userID string, c *repositories.ProfileCompletion) error {
	for _, p := range r.profiles {
		if p.UserID != userID || p.Status != models.ArtisanStatusIncomplete {
			continue
		}
		p.Name = c.Name
		p.PhoneNumber = c.PhoneNumber
		p.Gender = c.Gender
		p.FullAddress = c.FullAddress
		p.State = c.State
		p.City = c.City
		p.LocalGovernment = c.LocalGovernment
		p.BusinessName = c.BusinessName
		p.ArtisanType = c.ArtisanType
		p.Skills = c.Skills
		p.PassportPhoto = c.PassportPhoto
		p.GovIDCard = c.GovIDCard
		p.BusinessCertificate = c.BusinessCertificate
		p.ProofOfAddress = c.ProofOfAddress
		p.Status = models.ArtisanStatusPending
		p.UpdatedAt = time.Now()
		return nil
	}
	return repositories.ErrProfileNotIncomplete
}

func (r fakeProfileRepo) UpdateReviewStatus(db *gorm.DB, profileID string, status models.ArtisanStatus) error {
	profile, ok := r.profiles[profileID]
	if !ok || profile.Status != models.ArtisanStatusPending {
		return repositories.ErrProfileNotPending
	}
	profile.Status = status
	profile.UpdatedAt = time.Now()
	return nil
}

// newTestDB строит *gorm.DB поверх sqlmock: фейковые репозитории сам db
// игнорируют, но Begin/Commit в сервисах должны ложиться на реальные вызовы.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

// fakeEmailProvider записывает отправленные коды вместо реальной доставки
type fakeEmailProvider struct {
	sentTo    []string
	sentCodes []string
	failNext  bool
}

var _ email.Provider = (*fakeEmailProvider)(nil)

func (f *fakeEmailProvider) Send(msg *email.Email) error { return nil }

func (f *fakeEmailProvider) SendWithTemplate(templateName string, data email.TemplateData, msg *email.Email) error {
	return nil
}

func (f *fakeEmailProvider) SendPasswordResetCode(to, code string) error {
	if f.failNext {
		f.failNext = false
		return errSMTPDown
	}
	f.sentTo = append(f.sentTo, to)
	f.sentCodes = append(f.sentCodes, code)
	return nil
}

func (f *fakeEmailProvider) Validate() error { return nil }
func (f *fakeEmailProvider) Close() error    { return nil }
