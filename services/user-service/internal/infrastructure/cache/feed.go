package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"heroacademy/pkg/hero"
	"heroacademy/services/user-service/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ProfileFeed fans committed profile states out over redis pub/sub on
// channel profile:<uid>.
type ProfileFeed struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewProfileFeed(client *redis.Client, log zerolog.Logger) *ProfileFeed {
	return &ProfileFeed{client: client, log: log}
}

func channel(uid string) string {
	return "profile:" + uid
}

func (f *ProfileFeed) Publish(ctx context.Context, p *hero.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return f.client.Publish(ctx, channel(p.UID), data).Err()
}

// Subscribe returns once redis has confirmed the subscription, so a read made
// afterwards cannot miss a later publish.
func (f *ProfileFeed) Subscribe(ctx context.Context, uid string) (domain.ProfileSubscription, error) {
	ps := f.client.Subscribe(ctx, channel(uid))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", channel(uid), err)
	}

	sub := &subscription{ps: ps, updates: make(chan *hero.Profile, 16), done: make(chan struct{})}
	go sub.pump(f.log)
	return sub, nil
}

type subscription struct {
	ps      *redis.PubSub
	updates chan *hero.Profile
	done    chan struct{}
}

func (s *subscription) Updates() <-chan *hero.Profile {
	return s.updates
}

func (s *subscription) Close() error {
	select {
	case <-s.done:
		return nil
	default:
		close(s.done)
	}
	return s.ps.Close()
}

func (s *subscription) pump(log zerolog.Logger) {
	defer close(s.updates)
	for msg := range s.ps.Channel() {
		var p hero.Profile
		if err := json.Unmarshal([]byte(msg.Payload), &p); err != nil {
			log.Error().Err(err).Str("channel", msg.Channel).Msg("drop malformed profile message")
			continue
		}
		p.EnsureMaps()
		select {
		case s.updates <- &p:
		case <-s.done:
			return
		}
	}
}
