package domain

import "time"

// License is a one-time activation code seeded by operators.
type License struct {
	Code      string `gorm:"primaryKey;size:64"`
	Used      bool   `gorm:"not null;default:false"`
	UsedBy    string `gorm:"size:255"`
	UsedAt    *time.Time
	CreatedAt time.Time
}

func (License) TableName() string {
	return "licenses"
}
