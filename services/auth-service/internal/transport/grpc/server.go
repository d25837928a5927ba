package grpc_server

import (
	"context"

	"heroacademy/pkg/authpb"
	"heroacademy/services/auth-service/internal/application/usecase"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type AuthServer struct {
	authpb.UnimplementedAuthServiceServer
	useCase *usecase.AuthUseCase
	log     zerolog.Logger
}

func NewAuthServer(uc *usecase.AuthUseCase, log zerolog.Logger) *AuthServer {
	return &AuthServer{useCase: uc, log: log}
}

func (s *AuthServer) fail(method string, err error) error {
	st := toStatus(err)
	if status.Code(st) == codes.Internal {
		s.log.Error().Err(err).Str("method", method).Msg("request failed")
	}
	return st
}

func (s *AuthServer) Register(ctx context.Context, req *authpb.RegisterRequest) (*authpb.AuthResponse, error) {
	resp, err := s.useCase.Register(ctx, req.Email, req.Password, req.DisplayName, req.DeviceID)
	if err != nil {
		return nil, s.fail("Register", err)
	}
	return resp, nil
}

func (s *AuthServer) Login(ctx context.Context, req *authpb.LoginRequest) (*authpb.AuthResponse, error) {
	resp, err := s.useCase.Login(ctx, req.Email, req.Password, req.DeviceID)
	if err != nil {
		return nil, s.fail("Login", err)
	}
	return resp, nil
}

func (s *AuthServer) SocialSignIn(ctx context.Context, req *authpb.SocialSignInRequest) (*authpb.AuthResponse, error) {
	resp, err := s.useCase.SocialSignIn(ctx, req.Provider, req.IDToken, req.DeviceID, req.Mode)
	if err != nil {
		return nil, s.fail("SocialSignIn", err)
	}
	return resp, nil
}

func (s *AuthServer) ConsumeRedirectResult(ctx context.Context, req *authpb.ConsumeRedirectResultRequest) (*authpb.ConsumeRedirectResultResponse, error) {
	resp, found, err := s.useCase.ConsumeRedirectResult(ctx, req.DeviceID)
	if err != nil {
		return nil, s.fail("ConsumeRedirectResult", err)
	}
	return &authpb.ConsumeRedirectResultResponse{Found: found, Result: resp}, nil
}

func (s *AuthServer) WatchAuthState(req *authpb.WatchAuthStateRequest, stream authpb.AuthStateStream) error {
	err := s.useCase.WatchAuthState(stream.Context(), req.DeviceID, func(id *authpb.Identity) error {
		return stream.Send(&authpb.AuthStateEvent{Identity: id})
	})
	if err != nil {
		return s.fail("WatchAuthState", err)
	}
	return nil
}

func (s *AuthServer) Refresh(ctx context.Context, req *authpb.RefreshRequest) (*authpb.AuthResponse, error) {
	resp, err := s.useCase.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.fail("Refresh", err)
	}
	return resp, nil
}

func (s *AuthServer) Logout(ctx context.Context, req *authpb.LogoutRequest) (*authpb.LogoutResponse, error) {
	if err := s.useCase.Logout(ctx, req.RefreshToken, req.DeviceID); err != nil {
		return nil, s.fail("Logout", err)
	}
	return &authpb.LogoutResponse{Success: true}, nil
}

func (s *AuthServer) Validate(ctx context.Context, req *authpb.ValidateRequest) (*authpb.ValidateResponse, error) {
	id, err := s.useCase.Validate(ctx, req.AccessToken)
	if err != nil {
		return nil, s.fail("Validate", err)
	}
	return &authpb.ValidateResponse{Identity: id}, nil
}

func (s *AuthServer) SignInMethods(ctx context.Context, req *authpb.SignInMethodsRequest) (*authpb.SignInMethodsResponse, error) {
	methods, err := s.useCase.SignInMethods(ctx, req.Email)
	if err != nil {
		return nil, s.fail("SignInMethods", err)
	}
	return &authpb.SignInMethodsResponse{Methods: methods}, nil
}
