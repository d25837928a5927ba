package client

import (
	"context"

	"heroacademy/pkg/hero"
	"heroacademy/pkg/rpc"
	"heroacademy/pkg/userpb"
	"heroacademy/services/api-gateway/internal/session"

	"google.golang.org/grpc"
)

type UserClient struct {
	Client userpb.UserServiceClient
	conn   *grpc.ClientConn
}

func NewUserClient(url string) (*UserClient, error) {
	cc, err := rpc.Dial(url)
	if err != nil {
		return nil, err
	}
	return &UserClient{
		Client: userpb.NewUserServiceClient(cc),
		conn:   cc,
	}, nil
}

func (c *UserClient) Close() error {
	return c.conn.Close()
}

// ProfileWatcher adapts the user service to session.ProfileStore.
type ProfileWatcher struct {
	client userpb.UserServiceClient
}

func NewProfileWatcher(client userpb.UserServiceClient) *ProfileWatcher {
	return &ProfileWatcher{client: client}
}

func (w *ProfileWatcher) Watch(ctx context.Context, uid string) (<-chan session.Snapshot, error) {
	stream, err := w.client.WatchProfile(ctx, &userpb.WatchProfileRequest{UserID: uid})
	if err != nil {
		return nil, err
	}
	out := make(chan session.Snapshot)
	go func() {
		defer close(out)
		for {
			snap, err := stream.Recv()
			var s session.Snapshot
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s = session.Snapshot{Err: err}
			} else {
				s = session.Snapshot{Exists: snap.Exists, Profile: snap.Profile}
			}
			select {
			case out <- s:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return out, nil
}

func (w *ProfileWatcher) Create(ctx context.Context, p *hero.Profile) error {
	_, err := w.client.CreateProfile(ctx, &userpb.CreateProfileRequest{
		UserID:      p.UID,
		Email:       p.Email,
		DisplayName: p.HeroProfile.Name,
	})
	return err
}
