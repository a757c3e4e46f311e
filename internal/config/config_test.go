package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this-is-a-very-long-jwt-secret-for-testing-32+"

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  shutdown_timeout: "5s"

database:
  path: "/tmp/shoplist-test.db"

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"
  token_ttl: "1h"

log:
  level: "debug"

session:
  backend: "redis"
  redis_addr: "redis:6379"

rate_limit:
  requests_per_second: 5
  burst: 10

support:
  max_tickets_per_user: 3
  admins: ["root-user"]
  notify_to: ["support@example.com"]
`

func TestLoad_ValidYAML(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeYAML(t, validYAML))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "/tmp/shoplist-test.db", cfg.Database.Path)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Equal(t, "redis:6379", cfg.Session.RedisAddr)
	assert.Equal(t, 3, cfg.Support.MaxTicketsPerUser)
	assert.True(t, cfg.Support.IsAdmin("root-user"))
	assert.False(t, cfg.Support.IsAdmin("alice"))

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_EnvDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("AUTH_JWT_SECRET", testSecret)
	t.Setenv("SUPPORT_ADMINS", "a,b")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "./data/shoplist.db", cfg.Database.Path)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, SessionBackendSQLite, cfg.Session.Backend)
	assert.Equal(t, 10, cfg.Support.MaxTicketsPerUser)
	assert.Equal(t, []string{"a", "b"}, cfg.Support.Admins)
	assert.Equal(t, float64(10), cfg.RateLimit.RequestsPerSecond)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func validConfig() Config {
	return Config{
		Server:    ServerConfig{Port: 8080},
		Database:  DatabaseConfig{Path: "db"},
		Auth:      AuthConfig{JWTSecret: testSecret, TokenTTL: time.Hour},
		Log:       LogConfig{Level: "info"},
		Session:   SessionConfig{Backend: SessionBackendSQLite},
		RateLimit: RateLimitConfig{RequestsPerSecond: 1, Burst: 1},
		Support:   SupportConfig{MaxTicketsPerUser: 10},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"unknown backend", func(c *Config) { c.Session.Backend = "memcached" }, true},
		{"redis without addr", func(c *Config) {
			c.Session.Backend = SessionBackendRedis
			c.Session.RedisAddr = ""
		}, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"rate limit disabled", func(c *Config) { c.RateLimit = RateLimitConfig{} }, false},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }, true},
		{"zero ticket cap", func(c *Config) { c.Support.MaxTicketsPerUser = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
