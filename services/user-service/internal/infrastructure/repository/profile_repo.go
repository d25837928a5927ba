package repository

import (
	"context"
	"errors"
	"time"

	"heroacademy/pkg/hero"
	"heroacademy/services/user-service/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Get(ctx context.Context, uid string) (*hero.Profile, error) {
	return getProfile(r.db.WithContext(ctx), uid)
}

// CreateIfAbsent inserts p unless a profile with the same uid exists. It
// reports whether this call created the row.
func (r *ProfileRepository) CreateIfAbsent(ctx context.Context, p *hero.Profile) (bool, error) {
	row, err := newProfileGorm(p)
	if err != nil {
		return false, err
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "uid"}}, DoNothing: true}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*hero.Profile, error) {
	var row ProfileGorm
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		Order("created_at asc").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.ToDomain()
}

// Mutate runs fn against the locked row and saves the result in the same
// transaction. An error from fn rolls everything back.
func (r *ProfileRepository) Mutate(ctx context.Context, uid string, fn func(*hero.Profile) error) (*hero.Profile, error) {
	var out *hero.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockProfile(tx, uid)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		if err := saveProfile(tx, p, time.Now().UTC()); err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

func (r *ProfileRepository) PinHash(ctx context.Context, uid string) (string, error) {
	var row ProfileGorm
	err := r.db.WithContext(ctx).Select("uid", "parent_pin_hash").Where("uid = ?", uid).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domain.ErrProfileNotFound
	}
	return row.ParentPinHash, err
}

func (r *ProfileRepository) SetPinHash(ctx context.Context, uid, hash string) (*hero.Profile, error) {
	res := r.db.WithContext(ctx).Model(&ProfileGorm{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{"parent_pin_hash": hash, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrProfileNotFound
	}
	return r.Get(ctx, uid)
}

func (r *ProfileRepository) Leaderboard(ctx context.Context, limit int) ([]*hero.Profile, error) {
	var rows []ProfileGorm
	err := r.db.WithContext(ctx).
		Order("xp desc").
		Order("created_at asc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*hero.Profile, 0, len(rows))
	for i := range rows {
		p, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func getProfile(db *gorm.DB, uid string) (*hero.Profile, error) {
	var row ProfileGorm
	err := db.Where("uid = ?", uid).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.ToDomain()
}

func lockProfile(tx *gorm.DB, uid string) (*hero.Profile, error) {
	return getProfile(tx.Clauses(clause.Locking{Strength: "UPDATE"}), uid)
}

func saveProfile(tx *gorm.DB, p *hero.Profile, now time.Time) error {
	cols, err := updatesFor(p, now)
	if err != nil {
		return err
	}
	res := tx.Model(&ProfileGorm{}).Where("uid = ?", p.UID).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProfileNotFound
	}
	p.UpdatedAt = now
	return nil
}
