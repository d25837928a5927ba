package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Dial opens a client connection that speaks the JSON codec.
func Dial(target string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}, opts...)
	return grpc.NewClient(target, opts...)
}

// ClientStream receives typed messages from a server-streaming call.
type ClientStream[T any] struct {
	grpc.ClientStream
}

func (c *ClientStream[T]) Recv() (*T, error) {
	m := new(T)
	if err := c.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// OpenServerStream starts a server-streaming call and sends its only request.
func OpenServerStream[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, desc *grpc.StreamDesc, method string, req *Req, opts ...grpc.CallOption) (*ClientStream[Resp], error) {
	s, err := cc.NewStream(ctx, desc, method, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.SendMsg(req); err != nil {
		return nil, err
	}
	if err := s.CloseSend(); err != nil {
		return nil, err
	}
	return &ClientStream[Resp]{ClientStream: s}, nil
}
