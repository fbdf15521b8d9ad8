package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Waitlist WaitlistConfig `yaml:"waitlist"`
	Notify   NotifyConfig   `yaml:"notify"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
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

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// WaitlistConfig holds ranking policy settings.
//
// AdvanceDelta is how many positions a referrer moves toward the front per
// credited referral. TopSize is the number of leaderboard slots. Positions
// are clamped at 1; the leaderboard is recomputed after every signup.
type WaitlistConfig struct {
	AdvanceDelta     int `yaml:"advance_delta"      env:"WAITLIST_ADVANCE_DELTA"      env-default:"2"`
	TopSize          int `yaml:"top_size"           env:"WAITLIST_TOP_SIZE"           env-default:"50"`
	CodeLength       int `yaml:"code_length"        env:"WAITLIST_CODE_LENGTH"        env-default:"8"`
	CodeMaxAttempts  int `yaml:"code_max_attempts"  env:"WAITLIST_CODE_MAX_ATTEMPTS"  env-default:"5"`
}

// NotifyConfig holds notification delivery settings.
// When Enabled is false (or no API key is set) events are logged instead
// of emailed, which is the mode used in development and tests.
type NotifyConfig struct {
	Enabled   bool   `yaml:"enabled"    env:"NOTIFY_ENABLED"    env-default:"false"`
	APIKey    string `yaml:"api_key"    env:"NOTIFY_API_KEY"`
	FromEmail string `yaml:"from_email" env:"NOTIFY_FROM_EMAIL" env-default:"Waitlist <onboarding@yourdomain.com>"`
	PublicURL string `yaml:"public_url" env:"NOTIFY_PUBLIC_URL" env-default:"https://yourdomain.com"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
