package session

import (
	"context"
	"errors"

	"heroacademy/pkg/authpb"
	"heroacademy/pkg/hero"

	"github.com/rs/zerolog"
)

var ErrStreamClosed = errors.New("profile stream closed")

// Snapshot is one profile change notification.
type Snapshot struct {
	Exists  bool
	Profile *hero.Profile
	Err     error
}

type ProfileStore interface {
	// Watch streams snapshots of uid's profile until ctx ends.
	Watch(ctx context.Context, uid string) (<-chan Snapshot, error)
	// Create stores p unless a profile for p.UID already exists.
	Create(ctx context.Context, p *hero.Profile) error
}

// State is what the client renders from.
type State struct {
	Identity *authpb.Identity `json:"identity"`
	Profile  *hero.Profile    `json:"profile"`
	Loading  bool             `json:"loading"`
	Err      error            `json:"-"`
}

type Binder struct {
	Store ProfileStore
	Log   zerolog.Logger
}

type subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// release stops the subscription and waits until it can no longer deliver.
func (s *subscription) release() {
	if s == nil {
		return
	}
	s.cancel()
	<-s.done
}

// Run follows resolver events and keeps at most one profile subscription,
// the one of the current identity.
func (b *Binder) Run(ctx context.Context, events <-chan Event) <-chan State {
	out := make(chan State, 1)
	go func() {
		var sub *subscription
		defer close(out)
		defer func() { sub.release() }()

		var currentID string
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if !ev.Resolved {
					if !send(ctx, out, State{Loading: true}) {
						return
					}
					continue
				}
				if ev.Identity != nil && ev.Identity.ID == currentID && sub != nil {
					continue
				}

				sub.release()
				sub = nil
				if ev.Identity == nil {
					currentID = ""
					if !send(ctx, out, State{}) {
						return
					}
					continue
				}

				currentID = ev.Identity.ID
				if !send(ctx, out, State{Identity: ev.Identity, Loading: true}) {
					return
				}
				sub = b.follow(ctx, ev.Identity, out)
			}
		}
	}()
	return out
}

func (b *Binder) follow(parent context.Context, ident *authpb.Identity, out chan<- State) *subscription {
	ctx, cancel := context.WithCancel(parent)
	sub := &subscription{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(sub.done)
		log := b.Log.With().Str("user_id", ident.ID).Logger()

		fail := func(err error) {
			log.Error().Err(err).Msg("profile subscription failed")
			send(ctx, out, State{Identity: ident, Err: err})
		}

		snaps, err := b.Store.Watch(ctx, ident.ID)
		if err != nil {
			if ctx.Err() == nil {
				fail(err)
			}
			return
		}

		created := false
		for {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-snaps:
				if !ok {
					if ctx.Err() == nil {
						fail(ErrStreamClosed)
					}
					return
				}
				if s.Err != nil {
					fail(s.Err)
					return
				}
				if !s.Exists {
					if created {
						continue
					}
					created = true
					p := hero.NewDefaultProfile(ident.ID, ident.Email, ident.DisplayName)
					if err := b.Store.Create(ctx, p); err != nil {
						fail(err)
						return
					}
					log.Info().Msg("default profile created")
					continue
				}
				if !send(ctx, out, State{Identity: ident, Profile: s.Profile}) {
					return
				}
			}
		}
	}()
	return sub
}
