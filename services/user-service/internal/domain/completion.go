package domain

import (
	"time"

	"heroacademy/pkg/hero"
	"heroacademy/pkg/progression"
)

// CompletionEvent records one credited mission completion. EventID is chosen
// by the client so a retried request is credited once.
type CompletionEvent struct {
	EventID     string `gorm:"primaryKey;size:64"`
	UserID      string `gorm:"size:64;index;not null"`
	Track       string `gorm:"size:32;not null"`
	XPGained    int    `gorm:"not null;default:0"`
	CoinsGained int    `gorm:"not null;default:0"`
	LeveledUp   bool   `gorm:"not null;default:false"`
	NewLevel    int    `gorm:"not null;default:1"`
	CycleClosed bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

func (CompletionEvent) TableName() string {
	return "completion_events"
}

func (e *CompletionEvent) Delta() progression.Delta {
	return progression.Delta{
		Track:       hero.Track(e.Track),
		XPGained:    e.XPGained,
		CoinsGained: e.CoinsGained,
		LeveledUp:   e.LeveledUp,
		NewLevel:    e.NewLevel,
		CycleClosed: e.CycleClosed,
	}
}

func (e *CompletionEvent) Record(d progression.Delta) {
	e.XPGained = d.XPGained
	e.CoinsGained = d.CoinsGained
	e.LeveledUp = d.LeveledUp
	e.NewLevel = d.NewLevel
	e.CycleClosed = d.CycleClosed
}
