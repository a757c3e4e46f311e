package middleware

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/shoplist/internal/metrics"
)

// MetricsInterceptor returns a Connect interceptor that records RPC counts
// and latencies by procedure and result code.
func MetricsInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			done := metrics.RPCStarted(req.Spec().Procedure)

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			done(code)
			return resp, err
		}
	}
}
