package grpc_server

import (
	"context"
	"errors"

	"heroacademy/services/auth-service/internal/domain"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{domain.ErrInvalidEmail, codes.InvalidArgument},
	{domain.ErrWeakPassword, codes.InvalidArgument},
	{domain.ErrUnsupportedProvider, codes.InvalidArgument},
	{domain.ErrInvalidMode, codes.InvalidArgument},
	{domain.ErrMissingDevice, codes.InvalidArgument},
	{domain.ErrUserAlreadyExists, codes.AlreadyExists},
	{domain.ErrInvalidCredentials, codes.Unauthenticated},
	{domain.ErrInvalidToken, codes.Unauthenticated},
	{domain.ErrTokenRevoked, codes.Unauthenticated},
	{domain.ErrProviderMismatch, codes.FailedPrecondition},
	{domain.ErrUserNotFound, codes.NotFound},
	{context.Canceled, codes.Canceled},
	{context.DeadlineExceeded, codes.DeadlineExceeded},
}

func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return status.Error(e.code, e.err.Error())
		}
	}
	return status.Error(codes.Internal, "internal error")
}
