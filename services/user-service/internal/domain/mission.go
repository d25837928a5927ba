package domain

import "time"

// Mission is one entry of the mission map.
type Mission struct {
	ID          string `gorm:"primaryKey;size:64"`
	Track       string `gorm:"size:32;index;not null"`
	Title       string `gorm:"not null"`
	Sector      string
	Description string
	VideoURL    string
	ImageURL    string
	Locked      bool `gorm:"default:false"`
	Order       int  `gorm:"default:0"`
	CreatedAt   time.Time
}

func (Mission) TableName() string {
	return "missions"
}
