package repository

import (
	"context"
	"encoding/json"
	"time"

	"heroacademy/services/user-service/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	missionListKey = "missions:list"
	missionListTTL = 10 * time.Minute
)

// MissionRepository reads the mission map through a short redis cache.
type MissionRepository struct {
	db  *gorm.DB
	rdb *redis.Client
	log zerolog.Logger
}

func NewMissionRepository(db *gorm.DB, rdb *redis.Client, log zerolog.Logger) *MissionRepository {
	return &MissionRepository{db: db, rdb: rdb, log: log}
}

func (r *MissionRepository) List(ctx context.Context) ([]domain.Mission, error) {
	if val, err := r.rdb.Get(ctx, missionListKey).Bytes(); err == nil {
		var missions []domain.Mission
		if json.Unmarshal(val, &missions) == nil {
			return missions, nil
		}
	} else if err != redis.Nil {
		r.log.Warn().Err(err).Msg("mission cache read failed")
	}

	var missions []domain.Mission
	err := r.db.WithContext(ctx).Order(`"order" asc`).Find(&missions).Error
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(missions); err == nil {
		if err := r.rdb.Set(ctx, missionListKey, data, missionListTTL).Err(); err != nil {
			r.log.Warn().Err(err).Msg("mission cache write failed")
		}
	}
	return missions, nil
}

// Seed inserts missions that are missing and drops the cached list.
func (r *MissionRepository) Seed(ctx context.Context, missions []domain.Mission) error {
	if len(missions) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&missions).Error
	if err != nil {
		return err
	}
	return r.rdb.Del(ctx, missionListKey).Err()
}

// DefaultMissions is the starting mission map.
func DefaultMissions() []domain.Mission {
	return []domain.Mission{
		{
			ID:          "ciudad-fuerza",
			Track:       "strength",
			Title:       "Ciudad Fuerza",
			Sector:      "Sector Alpha",
			Description: "Entrenamiento de resistencia y poder muscular.",
			ImageURL:    "https://images.unsplash.com/photo-1573333233956-618817fc1ad5?auto=format&fit=crop&q=80&w=800",
			VideoURL:    "https://iapixeels-premium-content.s3.us-east-2.amazonaws.com/avatares-iapixeels/sophia-clips/sophia-saludo-subt-4-5.mp4",
			Order:       1,
		},
		{
			ID:          "pista-turbo",
			Track:       "speed",
			Title:       "Pista Turbo",
			Sector:      "Sector Beta",
			Description: "Agilidad, velocidad y reflejos de superhéroe.",
			ImageURL:    "https://images.unsplash.com/photo-1534438327276-14e5300c3a48?auto=format&fit=crop&q=80&w=800",
			Locked:      true,
			Order:       2,
		},
		{
			ID:          "jungla-zen",
			Track:       "flexibility",
			Title:       "Jungla Zen",
			Sector:      "Sector Omega",
			Description: "Flexibilidad, equilibrio y enfoque mental.",
			ImageURL:    "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?auto=format&fit=crop&q=80&w=800",
			Locked:      true,
			Order:       3,
		},
	}
}
