package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"heroacademy/pkg/hero"

	"gorm.io/datatypes"
)

// ProfileGorm is the storage shape of hero.Profile. Document-like fields live
// in jsonb columns; xp and level stay as columns so the leaderboard can sort.
type ProfileGorm struct {
	UID               string         `gorm:"primaryKey;size:64"`
	Email             string         `gorm:"index;size:255"`
	Entitlement       datatypes.JSON `gorm:"type:jsonb"`
	HeroProfile       datatypes.JSON `gorm:"type:jsonb"`
	XP                int            `gorm:"index;not null;default:0"`
	Level             int            `gorm:"not null;default:1"`
	Items             datatypes.JSON `gorm:"type:jsonb"`
	Coins             int            `gorm:"not null;default:0"`
	EquippedItems     datatypes.JSON `gorm:"type:jsonb"`
	CompletedMissions datatypes.JSON `gorm:"type:jsonb"`
	Rewards           datatypes.JSON `gorm:"type:jsonb"`
	TimeLimit         int            `gorm:"not null;default:30"`
	ProfilePhoto      string
	Streak            int `gorm:"not null;default:0"`
	LastStreakAt      time.Time
	ParentPinHash     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (ProfileGorm) TableName() string {
	return "users"
}

// ToDomain decodes the row. The entitlement column is normalized here and
// nowhere else.
func (pg *ProfileGorm) ToDomain() (*hero.Profile, error) {
	p := &hero.Profile{
		UID:          pg.UID,
		Email:        pg.Email,
		Entitled:     hero.EntitledJSON(pg.Entitlement),
		Coins:        pg.Coins,
		TimeLimit:    pg.TimeLimit,
		ProfilePhoto: pg.ProfilePhoto,
		Streak:       pg.Streak,
		LastStreakAt: pg.LastStreakAt,
		HasParentPin: pg.ParentPinHash != "",
		CreatedAt:    pg.CreatedAt,
		UpdatedAt:    pg.UpdatedAt,
	}
	p.Inventory.XP = pg.XP
	p.Inventory.Level = pg.Level

	fields := []struct {
		name string
		raw  datatypes.JSON
		dst  any
	}{
		{"hero_profile", pg.HeroProfile, &p.HeroProfile},
		{"items", pg.Items, &p.Inventory.Items},
		{"equipped_items", pg.EquippedItems, &p.EquippedItems},
		{"completed_missions", pg.CompletedMissions, &p.CompletedMissions},
		{"rewards", pg.Rewards, &p.Rewards},
	}
	for _, f := range fields {
		if len(f.raw) == 0 || string(f.raw) == "null" {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("decode %s of %s: %w", f.name, pg.UID, err)
		}
	}
	if p.TimeLimit == 0 {
		p.TimeLimit = hero.DefaultTimeLimit
	}
	p.EnsureMaps()
	return p, nil
}

// newProfileGorm encodes a freshly created profile.
func newProfileGorm(p *hero.Profile) (*ProfileGorm, error) {
	cols, err := documentColumns(p)
	if err != nil {
		return nil, err
	}
	entitlement := datatypes.JSON("false")
	if p.Entitled {
		entitlement = datatypes.JSON("true")
	}
	return &ProfileGorm{
		UID:               p.UID,
		Email:             p.Email,
		Entitlement:       entitlement,
		HeroProfile:       cols["hero_profile"].(datatypes.JSON),
		XP:                p.Inventory.XP,
		Level:             p.Inventory.Level,
		Items:             cols["items"].(datatypes.JSON),
		Coins:             p.Coins,
		EquippedItems:     cols["equipped_items"].(datatypes.JSON),
		CompletedMissions: cols["completed_missions"].(datatypes.JSON),
		Rewards:           cols["rewards"].(datatypes.JSON),
		TimeLimit:         p.TimeLimit,
		ProfilePhoto:      p.ProfilePhoto,
		Streak:            p.Streak,
		LastStreakAt:      p.LastStreakAt,
	}, nil
}

// updatesFor lists every gameplay column of p. Entitlement and the parent pin
// have dedicated writers and are never overwritten from a profile value.
func updatesFor(p *hero.Profile, now time.Time) (map[string]interface{}, error) {
	cols, err := documentColumns(p)
	if err != nil {
		return nil, err
	}
	cols["xp"] = p.Inventory.XP
	cols["level"] = p.Inventory.Level
	cols["coins"] = p.Coins
	cols["time_limit"] = p.TimeLimit
	cols["profile_photo"] = p.ProfilePhoto
	cols["streak"] = p.Streak
	cols["last_streak_at"] = p.LastStreakAt
	cols["updated_at"] = now
	return cols, nil
}

func documentColumns(p *hero.Profile) (map[string]interface{}, error) {
	p.EnsureMaps()
	docs := map[string]any{
		"hero_profile":       p.HeroProfile,
		"items":              p.Inventory.Items,
		"equipped_items":     p.EquippedItems,
		"completed_missions": p.CompletedMissions,
		"rewards":            p.Rewards,
	}
	cols := make(map[string]interface{}, len(docs)+8)
	for name, v := range docs {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		cols[name] = datatypes.JSON(raw)
	}
	return cols, nil
}
