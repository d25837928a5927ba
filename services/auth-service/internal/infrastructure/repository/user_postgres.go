package repository

import (
	"context"
	"errors"
	"time"

	"heroacademy/services/auth-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserGorm struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email         string    `gorm:"uniqueIndex;not null;size:255"`
	DisplayName   string    `gorm:"size:100"`
	PhotoURL      string
	Password      string
	GoogleSubject *string `gorm:"uniqueIndex;size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (UserGorm) TableName() string {
	return "identities"
}

func (ug *UserGorm) ToDomain() *domain.User {
	u := &domain.User{
		ID:           ug.ID,
		Email:        ug.Email,
		DisplayName:  ug.DisplayName,
		PhotoURL:     ug.PhotoURL,
		PasswordHash: ug.Password,
		CreatedAt:    ug.CreatedAt,
		UpdatedAt:    ug.UpdatedAt,
	}
	if ug.GoogleSubject != nil {
		u.GoogleSubject = *ug.GoogleSubject
	}
	return u
}

func toGormUser(u *domain.User) *UserGorm {
	ug := &UserGorm{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		Password:    u.PasswordHash,
	}
	if u.GoogleSubject != "" {
		sub := u.GoogleSubject
		ug.GoogleSubject = &sub
	}
	return ug
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	result := r.db.WithContext(ctx).Create(toGormUser(user))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return result.Error
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) GetByGoogleSubject(ctx context.Context, subject string) (*domain.User, error) {
	return r.first(ctx, "google_subject = ?", subject)
}

// LinkGoogle attaches a Google account to an existing user. Profile fields
// are only filled when empty.
func (r *UserRepository) LinkGoogle(ctx context.Context, id uuid.UUID, subject, displayName, photoURL string) error {
	updates := map[string]interface{}{"google_subject": subject}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ug UserGorm
		if err := tx.Where("id = ?", id).First(&ug).Error; err != nil {
			return err
		}
		if ug.DisplayName == "" && displayName != "" {
			updates["display_name"] = displayName
		}
		if ug.PhotoURL == "" && photoURL != "" {
			updates["photo_url"] = photoURL
		}
		return tx.Model(&UserGorm{}).Where("id = ?", id).Updates(updates).Error
	})
}

func (r *UserRepository) first(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var userModel UserGorm
	err := r.db.WithContext(ctx).Where(query, arg).First(&userModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return userModel.ToDomain(), nil
}
