package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// AuthStateFeed announces sign-in and sign-out per device on channel
// auth_state:<device>. The payload is the user id, empty for signed out.
type AuthStateFeed struct {
	client *redis.Client
}

func NewAuthStateFeed(client *redis.Client) *AuthStateFeed {
	return &AuthStateFeed{client: client}
}

func authChannel(deviceID string) string {
	return "auth_state:" + deviceID
}

func (f *AuthStateFeed) Publish(ctx context.Context, deviceID, userID string) error {
	return f.client.Publish(ctx, authChannel(deviceID), userID).Err()
}

// Subscribe returns once the subscription is active. The channel closes when
// ctx ends or the returned cancel func is called.
func (f *AuthStateFeed) Subscribe(ctx context.Context, deviceID string) (<-chan string, func(), error) {
	ps := f.client.Subscribe(ctx, authChannel(deviceID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, fmt.Errorf("subscribe %s: %w", authChannel(deviceID), err)
	}

	out := make(chan string, 8)
	done := make(chan struct{})
	go func() {
		defer close(out)
		for msg := range ps.Channel() {
			select {
			case out <- msg.Payload:
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	var closed bool
	cancel := func() {
		if closed {
			return
		}
		closed = true
		close(done)
		_ = ps.Close()
	}
	return out, cancel, nil
}
