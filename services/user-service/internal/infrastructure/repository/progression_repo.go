package repository

import (
	"context"
	"time"

	"heroacademy/pkg/hero"
	"heroacademy/pkg/progression"
	"heroacademy/services/user-service/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressionRepository credits mission completions exactly once per event id.
type ProgressionRepository struct {
	db *gorm.DB
}

func NewProgressionRepository(db *gorm.DB) *ProgressionRepository {
	return &ProgressionRepository{db: db}
}

// Complete records eventID and applies one completion of track to uid. A
// repeated eventID returns the delta stored the first time with Duplicate set
// and leaves the profile untouched.
func (r *ProgressionRepository) Complete(ctx context.Context, uid string, track hero.Track, eventID string, now time.Time) (progression.Delta, *hero.Profile, error) {
	var (
		delta progression.Delta
		out   *hero.Profile
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ev := domain.CompletionEvent{EventID: eventID, UserID: uid, Track: string(track), CreatedAt: now}
		res := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).Create(&ev)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			var stored domain.CompletionEvent
			if err := tx.Where("event_id = ?", eventID).First(&stored).Error; err != nil {
				return err
			}
			if stored.UserID != uid {
				return domain.ErrEventIDReused
			}
			delta = stored.Delta()
			delta.Duplicate = true
			p, err := getProfile(tx, uid)
			if err != nil {
				return err
			}
			out = p
			return nil
		}

		p, err := lockProfile(tx, uid)
		if err != nil {
			return err
		}
		d, err := progression.Complete(track, p)
		if err != nil {
			return err
		}
		domain.ApplyStreak(p, now)
		if err := saveProfile(tx, p, now); err != nil {
			return err
		}

		ev.Record(d)
		if err := tx.Save(&ev).Error; err != nil {
			return err
		}
		delta, out = d, p
		return nil
	})
	if err != nil {
		return progression.Delta{}, nil, err
	}
	return delta, out, nil
}
