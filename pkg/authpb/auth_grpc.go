package authpb

import (
	"context"

	"heroacademy/pkg/rpc"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "heroacademy.auth.v1.AuthService"

const (
	methodRegister              = "/" + ServiceName + "/Register"
	methodLogin                 = "/" + ServiceName + "/Login"
	methodSocialSignIn          = "/" + ServiceName + "/SocialSignIn"
	methodConsumeRedirectResult = "/" + ServiceName + "/ConsumeRedirectResult"
	methodWatchAuthState        = "/" + ServiceName + "/WatchAuthState"
	methodRefresh               = "/" + ServiceName + "/Refresh"
	methodLogout                = "/" + ServiceName + "/Logout"
	methodValidate              = "/" + ServiceName + "/Validate"
	methodSignInMethods         = "/" + ServiceName + "/SignInMethods"
)

// AuthStateStream is the server side of WatchAuthState.
type AuthStateStream interface {
	Send(*AuthStateEvent) error
	Context() context.Context
}

type AuthServiceServer interface {
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	SocialSignIn(context.Context, *SocialSignInRequest) (*AuthResponse, error)
	ConsumeRedirectResult(context.Context, *ConsumeRedirectResultRequest) (*ConsumeRedirectResultResponse, error)
	WatchAuthState(*WatchAuthStateRequest, AuthStateStream) error
	Refresh(context.Context, *RefreshRequest) (*AuthResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	Validate(context.Context, *ValidateRequest) (*ValidateResponse, error)
	SignInMethods(context.Context, *SignInMethodsRequest) (*SignInMethodsResponse, error)
}

// UnimplementedAuthServiceServer can be embedded to satisfy the interface.
type UnimplementedAuthServiceServer struct{}

func (UnimplementedAuthServiceServer) Register(context.Context, *RegisterRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedAuthServiceServer) Login(context.Context, *LoginRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedAuthServiceServer) SocialSignIn(context.Context, *SocialSignInRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SocialSignIn not implemented")
}
func (UnimplementedAuthServiceServer) ConsumeRedirectResult(context.Context, *ConsumeRedirectResultRequest) (*ConsumeRedirectResultResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ConsumeRedirectResult not implemented")
}
func (UnimplementedAuthServiceServer) WatchAuthState(*WatchAuthStateRequest, AuthStateStream) error {
	return status.Error(codes.Unimplemented, "method WatchAuthState not implemented")
}
func (UnimplementedAuthServiceServer) Refresh(context.Context, *RefreshRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Refresh not implemented")
}
func (UnimplementedAuthServiceServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedAuthServiceServer) Validate(context.Context, *ValidateRequest) (*ValidateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Validate not implemented")
}
func (UnimplementedAuthServiceServer) SignInMethods(context.Context, *SignInMethodsRequest) (*SignInMethodsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignInMethods not implemented")
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: rpc.Unary(methodRegister, AuthServiceServer.Register)},
		{MethodName: "Login", Handler: rpc.Unary(methodLogin, AuthServiceServer.Login)},
		{MethodName: "SocialSignIn", Handler: rpc.Unary(methodSocialSignIn, AuthServiceServer.SocialSignIn)},
		{MethodName: "ConsumeRedirectResult", Handler: rpc.Unary(methodConsumeRedirectResult, AuthServiceServer.ConsumeRedirectResult)},
		{MethodName: "Refresh", Handler: rpc.Unary(methodRefresh, AuthServiceServer.Refresh)},
		{MethodName: "Logout", Handler: rpc.Unary(methodLogout, AuthServiceServer.Logout)},
		{MethodName: "Validate", Handler: rpc.Unary(methodValidate, AuthServiceServer.Validate)},
		{MethodName: "SignInMethods", Handler: rpc.Unary(methodSignInMethods, AuthServiceServer.SignInMethods)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchAuthState",
			ServerStreams: true,
			Handler: rpc.ServerStreaming(func(s AuthServiceServer, req *WatchAuthStateRequest, stream rpc.ServerStream[AuthStateEvent]) error {
				return s.WatchAuthState(req, stream)
			}),
		},
	},
	Metadata: "auth.proto",
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// AuthStateClient is the client side of WatchAuthState.
type AuthStateClient interface {
	Recv() (*AuthStateEvent, error)
}

type AuthServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	SocialSignIn(ctx context.Context, in *SocialSignInRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	ConsumeRedirectResult(ctx context.Context, in *ConsumeRedirectResultRequest, opts ...grpc.CallOption) (*ConsumeRedirectResultResponse, error)
	WatchAuthState(ctx context.Context, in *WatchAuthStateRequest, opts ...grpc.CallOption) (AuthStateClient, error)
	Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	Validate(ctx context.Context, in *ValidateRequest, opts ...grpc.CallOption) (*ValidateResponse, error)
	SignInMethods(ctx context.Context, in *SignInMethodsRequest, opts ...grpc.CallOption) (*SignInMethodsResponse, error)
}

type authServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) AuthServiceClient {
	return &authServiceClient{cc: cc}
}

func (c *authServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	out := new(AuthResponse)
	if err := c.cc.Invoke(ctx, methodRegister, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	out := new(AuthResponse)
	if err := c.cc.Invoke(ctx, methodLogin, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) SocialSignIn(ctx context.Context, in *SocialSignInRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	out := new(AuthResponse)
	if err := c.cc.Invoke(ctx, methodSocialSignIn, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) ConsumeRedirectResult(ctx context.Context, in *ConsumeRedirectResultRequest, opts ...grpc.CallOption) (*ConsumeRedirectResultResponse, error) {
	out := new(ConsumeRedirectResultResponse)
	if err := c.cc.Invoke(ctx, methodConsumeRedirectResult, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) WatchAuthState(ctx context.Context, in *WatchAuthStateRequest, opts ...grpc.CallOption) (AuthStateClient, error) {
	stream, err := rpc.OpenServerStream[WatchAuthStateRequest, AuthStateEvent](ctx, c.cc, &serviceDesc.Streams[0], methodWatchAuthState, in, opts...)
	if err != nil {
		return nil, err
	}
	return stream, nil
}

func (c *authServiceClient) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	out := new(AuthResponse)
	if err := c.cc.Invoke(ctx, methodRefresh, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	out := new(LogoutResponse)
	if err := c.cc.Invoke(ctx, methodLogout, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) Validate(ctx context.Context, in *ValidateRequest, opts ...grpc.CallOption) (*ValidateResponse, error) {
	out := new(ValidateResponse)
	if err := c.cc.Invoke(ctx, methodValidate, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) SignInMethods(ctx context.Context, in *SignInMethodsRequest, opts ...grpc.CallOption) (*SignInMethodsResponse, error) {
	out := new(SignInMethodsResponse)
	if err := c.cc.Invoke(ctx, methodSignInMethods, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
