package repository

import (
	"context"
	"errors"
	"time"

	"heroacademy/services/auth-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Touch records that userID is active on deviceID.
func (r *DeviceRepository) Touch(ctx context.Context, userID uuid.UUID, deviceID string) error {
	var device domain.Device
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND device_id = ?", userID, deviceID).
		First(&device).Error
	if err == nil {
		return r.db.WithContext(ctx).Model(&domain.Device{}).
			Where("id = ?", device.ID).
			Update("last_active_at", time.Now()).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(&domain.Device{
		UserID:       userID,
		DeviceID:     deviceID,
		LastActiveAt: time.Now(),
		CreatedAt:    time.Now(),
	}).Error
}

func (r *DeviceRepository) Delete(ctx context.Context, userID uuid.UUID, deviceID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND device_id = ?", userID, deviceID).
		Delete(&domain.Device{}).Error
}
