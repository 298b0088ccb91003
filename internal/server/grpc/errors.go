package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
)

// toStatus maps the service error taxonomy to gRPC status codes. Anything
// unexpected becomes Internal without leaking details.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrStaleAccount):
		return status.Error(codes.Aborted, common.ErrStaleAccount.Error())
	case errors.Is(err, common.ErrConflict):
		return status.Error(codes.AlreadyExists, common.ErrLoginTaken.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "account not found")
	case errors.Is(err, common.ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, common.ErrPermissionDenied.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.InvalidArgument, common.ErrInvalidCredentials.Error())
	case errors.Is(err, common.ErrAuthenticationFailed):
		return status.Error(codes.Unauthenticated, common.ErrAuthenticationFailed.Error())
	case errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	case errors.Is(err, common.ErrAlreadyActive):
		return status.Error(codes.FailedPrecondition, common.ErrAlreadyActive.Error())
	case errors.Is(err, common.ErrAlreadyRevoked):
		return status.Error(codes.FailedPrecondition, common.ErrAlreadyRevoked.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	s.logger.Error(ctx, err.Error())
	return status.Error(codes.Internal, "internal error")
}
