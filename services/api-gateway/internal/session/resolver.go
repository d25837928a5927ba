// Package session turns the provider's redirect result and auth-state stream
// into one identity per transition, and binds each identity to its live
// profile.
package session

import (
	"context"

	"heroacademy/pkg/authpb"

	"github.com/rs/zerolog"
)

// RedirectChecker reports the identity produced by a completed redirect
// sign-in, or nil when there was none. It is called once.
type RedirectChecker interface {
	CheckRedirect(ctx context.Context) (*authpb.Identity, error)
}

// AuthStateSource streams the device's identity, nil meaning signed out. The
// channel closes when the stream ends.
type AuthStateSource interface {
	Watch(ctx context.Context) (<-chan *authpb.Identity, error)
}

// Event is one resolver output. Resolved is false only for the initial
// loading event.
type Event struct {
	Identity *authpb.Identity
	Resolved bool
}

type Resolver struct {
	Redirect RedirectChecker
	Auth     AuthStateSource
	Log      zerolog.Logger
}

type redirectResult struct {
	identity *authpb.Identity
	err      error
}

// Run emits {nil, false} and then every identity transition exactly once.
// Stream values seen while the redirect check is pending are held back; the
// check's identity, when present, wins the first resolution.
func (r *Resolver) Run(ctx context.Context) <-chan Event {
	out := make(chan Event, 1)
	go r.run(ctx, out)
	return out
}

func (r *Resolver) run(ctx context.Context, out chan<- Event) {
	defer close(out)
	if !send(ctx, out, Event{}) {
		return
	}

	stream, err := r.Auth.Watch(ctx)
	if err != nil {
		r.Log.Error().Err(err).Msg("auth state stream unavailable")
		stream = nil
	}

	checked := make(chan redirectResult, 1)
	go func() {
		id, err := r.Redirect.CheckRedirect(ctx)
		checked <- redirectResult{identity: id, err: err}
	}()

	var (
		latest     *authpb.Identity
		haveLatest bool
		result     redirectResult
	)
wait:
	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-stream:
			if !ok {
				stream = nil
				continue
			}
			latest, haveLatest = id, true
		case result = <-checked:
			break wait
		}
	}
	if result.err != nil {
		r.Log.Warn().Err(result.err).Msg("redirect check failed, using auth state")
	}

	var current *authpb.Identity
	switch {
	case result.identity != nil:
		current = result.identity
	case haveLatest:
		current = latest
	case stream == nil:
		current = nil
	default:
		select {
		case <-ctx.Done():
			return
		case id, ok := <-stream:
			if !ok {
				stream = nil
			}
			current = id
		}
	}
	if !send(ctx, out, Event{Identity: current, Resolved: true}) {
		return
	}

	for stream != nil {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-stream:
			if !ok {
				return
			}
			if sameIdentity(current, id) {
				continue
			}
			current = id
			if !send(ctx, out, Event{Identity: current, Resolved: true}) {
				return
			}
		}
	}
}

func sameIdentity(a, b *authpb.Identity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

func send[T any](ctx context.Context, out chan<- T, v T) bool {
	select {
	case out <- v:
		return true
	case <-ctx.Done():
		return false
	}
}
