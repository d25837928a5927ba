package domain

import "heroacademy/pkg/hero"

// ProfileSubscription delivers every committed state of one profile, in
// commit order, until Close.
type ProfileSubscription interface {
	Updates() <-chan *hero.Profile
	Close() error
}
