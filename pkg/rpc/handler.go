package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// Unary adapts a typed method into a grpc.MethodDesc handler.
func Unary[S, Req, Resp any](fullMethod string, call func(S, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServerStream sends typed messages on a server-streaming call.
type ServerStream[T any] struct {
	grpc.ServerStream
}

func (s ServerStream[T]) Send(m *T) error {
	return s.ServerStream.SendMsg(m)
}

// ServerStreaming adapts a typed server-streaming method into a
// grpc.StreamDesc handler.
func ServerStreaming[S, Req, Resp any](call func(S, *Req, ServerStream[Resp]) error) func(any, grpc.ServerStream) error {
	return func(srv any, stream grpc.ServerStream) error {
		in := new(Req)
		if err := stream.RecvMsg(in); err != nil {
			return err
		}
		return call(srv.(S), in, ServerStream[Resp]{ServerStream: stream})
	}
}
