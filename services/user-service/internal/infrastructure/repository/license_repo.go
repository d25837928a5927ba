package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"heroacademy/pkg/hero"
	"heroacademy/pkg/license"
	"heroacademy/services/user-service/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LicenseRepository consumes activation codes. Licenses and profiles share a
// database so the code and the entitlement flip commit together.
type LicenseRepository struct {
	db *gorm.DB
}

func NewLicenseRepository(db *gorm.DB) *LicenseRepository {
	return &LicenseRepository{db: db}
}

// Activate marks code as used by email and grants uid the entitlement. A
// serialization failure or deadlock is retried once before it is reported
// as license.ErrTransient.
func (r *LicenseRepository) Activate(ctx context.Context, code, uid, email string, now time.Time) (*hero.Profile, error) {
	var (
		p   *hero.Profile
		err error
	)
	for attempt := 0; attempt < 2; attempt++ {
		p, err = r.activateOnce(ctx, code, uid, email, now)
		if err == nil || !isRetryable(err) {
			return p, err
		}
	}
	return nil, fmt.Errorf("%w: %v", license.ErrTransient, err)
}

func (r *LicenseRepository) activateOnce(ctx context.Context, code, uid, email string, now time.Time) (*hero.Profile, error) {
	var out *hero.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lic domain.License
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("code = ?", code).
			First(&lic).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return license.ErrInvalidCode
		}
		if err != nil {
			return err
		}
		if lic.Used {
			return license.ErrAlreadyUsed
		}

		res := tx.Model(&domain.License{}).
			Where("code = ? AND used = ?", code, false).
			Updates(map[string]interface{}{"used": true, "used_by": email, "used_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return license.ErrAlreadyUsed
		}

		res = tx.Model(&ProfileGorm{}).
			Where("uid = ?", uid).
			Updates(map[string]interface{}{"entitlement": datatypes.JSON("true"), "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrProfileNotFound
		}

		p, err := getProfile(tx, uid)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

// Seed inserts codes that do not exist yet.
func (r *LicenseRepository) Seed(ctx context.Context, codes []string) error {
	rows := make([]domain.License, 0, len(codes))
	for _, c := range codes {
		if c = license.Normalize(c); c != "" {
			rows = append(rows, domain.License{Code: c})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&rows).Error
}

// isRetryable matches postgres serialization_failure and deadlock_detected.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
