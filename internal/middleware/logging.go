package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor logs every unary call with its outcome. Client errors are
// logged at warn level, internal ones at error level.
func LoggingInterceptor(log *slog.Logger) connect.UnaryInterceptorFunc {
	log = log.With("component", "rpc")
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{
				slog.String("procedure", req.Spec().Procedure),
				slog.String("user_id", GetUserID(ctx)),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if err == nil {
				log.InfoContext(ctx, "RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			attrs = append(attrs, slog.String("code", code.String()))
			var connectErr *connect.Error
			if errors.As(err, &connectErr) {
				attrs = append(attrs, slog.String("error", connectErr.Message()))
			} else {
				attrs = append(attrs, slog.String("error", err.Error()))
			}
			if code == connect.CodeInternal || code == connect.CodeUnknown {
				log.ErrorContext(ctx, "RPC failed", attrs...)
			} else {
				log.WarnContext(ctx, "RPC rejected", attrs...)
			}
			return resp, err
		}
	}
}
