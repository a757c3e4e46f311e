package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/shoplist/internal/auth"
	"github.com/mmynk/shoplist/internal/models"
)

var (
	errNoActiveGroup = errors.New("no active group: create or join a group first")
	errInternal      = errors.New("internal error")
)

// codeOf maps domain errors to Connect codes.
func codeOf(err error) connect.Code {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, models.ErrDuplicateName),
		errors.Is(err, models.ErrDuplicateMerchant),
		errors.Is(err, models.ErrDuplicateItem),
		errors.Is(err, auth.ErrEmailExists):
		return connect.CodeAlreadyExists
	case errors.Is(err, models.ErrPermission):
		return connect.CodePermissionDenied
	case errors.Is(err, models.ErrInvalidState),
		errors.Is(err, errNoActiveGroup):
		return connect.CodeFailedPrecondition
	case errors.Is(err, models.ErrInvalidLeader),
		errors.Is(err, models.ErrValidation),
		errors.Is(err, auth.ErrWeakPassword):
		return connect.CodeInvalidArgument
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken):
		return connect.CodeUnauthenticated
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeInternal
	}
}

// toConnectError converts err for the wire. Internal errors are logged with
// their detail and replaced by a generic message.
func toConnectError(ctx context.Context, log *slog.Logger, op string, err error) error {
	code := codeOf(err)
	if code == connect.CodeInternal {
		log.ErrorContext(ctx, op+" failed", slog.String("error", err.Error()))
		return connect.NewError(code, errInternal)
	}
	log.DebugContext(ctx, op+" rejected", slog.String("code", code.String()), slog.String("error", err.Error()))
	return connect.NewError(code, err)
}
