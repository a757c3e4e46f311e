package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/shoplist/internal/auth"
	"github.com/mmynk/shoplist/internal/catalog"
	"github.com/mmynk/shoplist/internal/config"
	"github.com/mmynk/shoplist/internal/ledger"
	"github.com/mmynk/shoplist/internal/metrics"
	"github.com/mmynk/shoplist/internal/middleware"
	"github.com/mmynk/shoplist/internal/notify"
	"github.com/mmynk/shoplist/internal/registry"
	"github.com/mmynk/shoplist/internal/service"
	"github.com/mmynk/shoplist/internal/session"
	"github.com/mmynk/shoplist/internal/storage"
	"github.com/mmynk/shoplist/internal/storage/redis"
	"github.com/mmynk/shoplist/internal/storage/sqlite"
	"github.com/mmynk/shoplist/internal/support"
	"github.com/mmynk/shoplist/pkg/api/apiconnect"
	"github.com/mmynk/shoplist/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, _ := cfg.Log.SlogLevel()
	logger := logging.Setup(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.Database.Path)

	sessions, closeSessions, err := openSessions(ctx, cfg.Session, store)
	if err != nil {
		return err
	}
	defer closeSessions()
	logger.Info("Session store initialized", "backend", cfg.Session.Backend)

	// Domain services
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	groups := registry.NewService(logger, store)
	selector := session.NewSelector(logger, sessions, groups)
	items := ledger.NewService(logger, store, groups)
	shops := catalog.NewService(logger, store, groups)
	tickets := support.NewService(logger, store, notify.NewLogSender(logger), support.Config{
		MaxTickets: cfg.Support.MaxTicketsPerUser,
		NotifyTo:   cfg.Support.NotifyTo,
	})

	interceptors := []connect.Interceptor{
		middleware.MetricsInterceptor(),
		middleware.LoggingInterceptor(logger),
		middleware.RequireAuth(jwtManager),
	}
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		interceptors = append(interceptors, limiter.Interceptor())
	}
	opts := connect.WithInterceptors(interceptors...)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, logger), opts))
	mux.Handle(apiconnect.NewGroupServiceHandler(
		service.NewGroupService(groups, selector, store, logger), opts))
	mux.Handle(apiconnect.NewItemServiceHandler(
		service.NewItemService(items, selector, logger), opts))
	mux.Handle(apiconnect.NewCatalogServiceHandler(
		service.NewCatalogService(shops, selector, logger), opts))
	mux.Handle(apiconnect.NewSupportServiceHandler(
		service.NewSupportService(tickets, cfg.Support.IsAdmin, logger), opts))
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler := h2c.NewHandler(accessLog(logger, corsMiddleware(mux)), &http2.Server{})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openSessions returns the configured session backend and its closer.
func openSessions(ctx context.Context, cfg config.SessionConfig, store *sqlite.SQLiteStore) (storage.SessionStore, func(), error) {
	if cfg.Backend != config.SessionBackendRedis {
		return store.Sessions(), func() {}, nil
	}
	rs, err := redis.NewSessionStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TTL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect session redis: %w", err)
	}
	return rs, func() { _ = rs.Close() }, nil
}

// accessLog logs every HTTP request with its duration.
func accessLog(logger *slog.Logger, next http.Handler) http.Handler {
	logger = logger.With("component", "http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
