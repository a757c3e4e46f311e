// Package config loads the server configuration.
package config

import (
	"slices"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Session   SessionConfig   `yaml:"session"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Support   SupportConfig   `yaml:"support"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"DB_PATH" env-default:"./data/shoplist.db"`
}

// AuthConfig holds token settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"24h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Session backends.
const (
	SessionBackendSQLite = "sqlite"
	SessionBackendRedis  = "redis"
)

// SessionConfig selects where per-session values live.
type SessionConfig struct {
	Backend       string        `yaml:"backend"        env:"SESSION_BACKEND"        env-default:"sqlite"`
	RedisAddr     string        `yaml:"redis_addr"     env:"SESSION_REDIS_ADDR"     env-default:"localhost:6379"`
	RedisPassword string        `yaml:"redis_password" env:"SESSION_REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db"       env:"SESSION_REDIS_DB"       env-default:"0"`
	TTL           time.Duration `yaml:"ttl"            env:"SESSION_TTL"            env-default:"720h"`
}

// RateLimitConfig holds the per-user RPC rate limit. A zero rate disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"   env-default:"10"`
	Burst             int     `yaml:"burst"               env:"RATE_LIMIT_BURST" env-default:"20"`
}

// SupportConfig holds support log settings.
type SupportConfig struct {
	MaxTicketsPerUser int      `yaml:"max_tickets_per_user" env:"SUPPORT_MAX_TICKETS" env-default:"10"`
	Admins            []string `yaml:"admins"               env:"SUPPORT_ADMINS"      env-separator:","`
	NotifyTo          []string `yaml:"notify_to"            env:"SUPPORT_NOTIFY_TO"   env-separator:","`
}

// IsAdmin reports whether the user may work on support tickets.
func (c SupportConfig) IsAdmin(userID string) bool {
	return slices.Contains(c.Admins, userID)
}
