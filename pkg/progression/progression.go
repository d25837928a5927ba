// Package progression converts completed missions into experience, coins,
// levels and reward cycles.
package progression

import (
	"errors"
	"math"

	"heroacademy/pkg/hero"
	"heroacademy/pkg/inventory"
)

// CycleLength is the number of completions of one track that close a cycle.
const CycleLength = 20

const (
	CycleBonusXP    = 500
	CycleBonusCoins = 200
)

var ErrUnknownTrack = errors.New("unknown track")

type Reward struct {
	XP    int
	Coins int
}

var baseRewards = map[hero.Track]Reward{
	hero.TrackStrength:    {XP: 50, Coins: 25},
	hero.TrackSpeed:       {XP: 60, Coins: 30},
	hero.TrackFlexibility: {XP: 70, Coins: 35},
}

// Tracks lists the tracks in display order.
var Tracks = []hero.Track{hero.TrackStrength, hero.TrackSpeed, hero.TrackFlexibility}

func BaseReward(track hero.Track) (Reward, bool) {
	r, ok := baseRewards[track]
	return r, ok
}

func ValidTrack(track hero.Track) bool {
	_, ok := baseRewards[track]
	return ok
}

// Delta is what a single completion added to the profile.
type Delta struct {
	Track       hero.Track `json:"track"`
	XPGained    int        `json:"xpGained"`
	CoinsGained int        `json:"coinsGained"`
	LeveledUp   bool       `json:"leveledUp"`
	NewLevel    int        `json:"newLevel"`
	CycleClosed bool       `json:"cycleClosed"`
	Duplicate   bool       `json:"duplicate,omitempty"`
}

// Complete applies one completion of track to p in place and returns the
// applied delta. Exactly-once delivery is the caller's responsibility.
func Complete(track hero.Track, p *hero.Profile) (Delta, error) {
	base, ok := baseRewards[track]
	if !ok {
		return Delta{}, ErrUnknownTrack
	}
	p.EnsureMaps()

	n := p.CompletedMissions[track]
	closing := n >= CycleLength-1

	xp, coins := base.XP, base.Coins
	if closing {
		xp += CycleBonusXP
		coins += CycleBonusCoins
	}
	xp = applyMultiplier(xp, inventory.XPMultiplier(p))

	oldLevel := p.Inventory.Level
	p.Inventory.XP += xp
	p.Inventory.Level = hero.LevelFor(p.Inventory.XP)

	if closing {
		p.CompletedMissions[track] = 0
		r := p.Rewards[track]
		r.CyclesCompleted++
		r.RewardDelivered = false
		p.Rewards[track] = r
	} else {
		p.CompletedMissions[track] = n + 1
	}
	p.Coins += coins

	return Delta{
		Track:       track,
		XPGained:    xp,
		CoinsGained: coins,
		LeveledUp:   p.Inventory.Level > oldLevel,
		NewLevel:    p.Inventory.Level,
		CycleClosed: closing,
	}, nil
}

// applyMultiplier floors v*m. The epsilon keeps 1.10 products such as 50*1.1
// from landing just below the integer.
func applyMultiplier(v int, m float64) int {
	return int(math.Floor(float64(v)*m + 1e-9))
}
