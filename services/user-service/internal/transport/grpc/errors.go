package grpc_server

import (
	"context"
	"errors"

	"heroacademy/pkg/inventory"
	"heroacademy/pkg/license"
	"heroacademy/pkg/progression"
	"heroacademy/services/user-service/internal/application/usecase"
	"heroacademy/services/user-service/internal/domain"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{usecase.ErrMissingUserID, codes.InvalidArgument},
	{domain.ErrInvalidHeroName, codes.InvalidArgument},
	{domain.ErrInvalidGender, codes.InvalidArgument},
	{domain.ErrInvalidAvatar, codes.InvalidArgument},
	{domain.ErrInvalidTimeLimit, codes.InvalidArgument},
	{domain.ErrInvalidPin, codes.InvalidArgument},
	{domain.ErrPhotoTooLarge, codes.InvalidArgument},
	{domain.ErrUnsupportedImage, codes.InvalidArgument},
	{progression.ErrUnknownTrack, codes.InvalidArgument},
	{inventory.ErrUnknownItem, codes.InvalidArgument},
	{inventory.ErrSlotMismatch, codes.InvalidArgument},
	{domain.ErrProfileNotFound, codes.NotFound},
	{license.ErrInvalidCode, codes.NotFound},
	{license.ErrAlreadyUsed, codes.AlreadyExists},
	{license.ErrNotAuthenticated, codes.Unauthenticated},
	{license.ErrTransient, codes.Unavailable},
	{inventory.ErrAlreadyOwned, codes.AlreadyExists},
	{domain.ErrEventIDReused, codes.AlreadyExists},
	{inventory.ErrInsufficientFunds, codes.FailedPrecondition},
	{inventory.ErrNotOwned, codes.FailedPrecondition},
	{domain.ErrPinNotSet, codes.FailedPrecondition},
	{domain.ErrPinMismatch, codes.PermissionDenied},
	{context.Canceled, codes.Canceled},
	{context.DeadlineExceeded, codes.DeadlineExceeded},
}

// toStatus maps domain failures onto gRPC codes. The message is the sentinel
// text so callers can tell failures that share a code apart.
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
