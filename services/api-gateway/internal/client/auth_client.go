package client

import (
	"context"

	"heroacademy/pkg/authpb"
	"heroacademy/pkg/rpc"

	"google.golang.org/grpc"
)

type AuthClient struct {
	Client authpb.AuthServiceClient
	conn   *grpc.ClientConn
}

func NewAuthClient(url string) (*AuthClient, error) {
	cc, err := rpc.Dial(url)
	if err != nil {
		return nil, err
	}
	return &AuthClient{
		Client: authpb.NewAuthServiceClient(cc),
		conn:   cc,
	}, nil
}

func (c *AuthClient) Close() error {
	return c.conn.Close()
}

// DeviceAuth exposes one device's view of the auth service to the session
// resolver.
type DeviceAuth struct {
	client   authpb.AuthServiceClient
	deviceID string
}

func NewDeviceAuth(client authpb.AuthServiceClient, deviceID string) *DeviceAuth {
	return &DeviceAuth{client: client, deviceID: deviceID}
}

func (d *DeviceAuth) CheckRedirect(ctx context.Context) (*authpb.Identity, error) {
	resp, err := d.client.ConsumeRedirectResult(ctx, &authpb.ConsumeRedirectResultRequest{DeviceID: d.deviceID})
	if err != nil {
		return nil, err
	}
	if !resp.Found || resp.Result == nil {
		return nil, nil
	}
	return resp.Result.Identity, nil
}

func (d *DeviceAuth) Watch(ctx context.Context) (<-chan *authpb.Identity, error) {
	stream, err := d.client.WatchAuthState(ctx, &authpb.WatchAuthStateRequest{DeviceID: d.deviceID})
	if err != nil {
		return nil, err
	}
	out := make(chan *authpb.Identity)
	go func() {
		defer close(out)
		for {
			ev, err := stream.Recv()
			if err != nil {
				return
			}
			select {
			case out <- ev.Identity:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
