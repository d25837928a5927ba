package domain

import (
	"time"

	"heroacademy/pkg/hero"
)

// ApplyStreak counts a training day. The first activity of a day extends the
// streak when yesterday was active and restarts it after a gap.
func ApplyStreak(p *hero.Profile, now time.Time) bool {
	now = now.UTC()
	if !p.LastStreakAt.IsZero() {
		switch daysBetween(p.LastStreakAt.UTC(), now) {
		case 0:
			return false
		case 1:
			p.Streak++
		default:
			p.Streak = 1
		}
	} else {
		p.Streak = 1
	}
	p.LastStreakAt = now
	return true
}

// CurrentStreak is the streak as shown on the dashboard: it drops to zero once
// a whole day has been missed.
func CurrentStreak(p *hero.Profile, now time.Time) int {
	if p.LastStreakAt.IsZero() || daysBetween(p.LastStreakAt.UTC(), now.UTC()) > 1 {
		return 0
	}
	return p.Streak
}

func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
