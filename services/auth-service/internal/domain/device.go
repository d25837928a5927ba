package domain

import (
	"time"

	"github.com/google/uuid"
)

// Device is a browser a user has signed in from. DeviceID comes from the
// gateway's device cookie.
type Device struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uuid.UUID `gorm:"index;type:uuid"`
	DeviceID     string    `gorm:"size:64;index"`
	LastActiveAt time.Time
	CreatedAt    time.Time
}
