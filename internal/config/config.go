package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the development fallback. It is rejected outside development.
const DefaultJWTSecret = "dev-secret"

// MinSecretBytes is the minimum secret length (256 bits) accepted outside development.
const MinSecretBytes = 32

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Session      SessionClientConfig
	Notification NotificationConfig
	Tracing      TracingConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN                  string
	ApplicationName      string
	MaxConns             int32
	MinConns             int32
	RunMigrations        bool
	MigrationsDir        string
	ConnMaxIdleSec       int32
	ConnMaxLifeSec       int32
	HealthCheckSec       int32
	ConnectTimeoutSec    int32
	StatementTimeoutMsec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	CookieName            string
	LoginPath             string
	ProtectedPaths        []string
	RedirectWithReturn    bool
	LoginMaxAttempts      int
	LoginWindowMinutes    int
}

// SessionClientConfig configures the client-side session provider.
type SessionClientConfig struct {
	BaseURL        string
	IdentityPath   string
	LogoutPath     string
	TimeoutSeconds int
}

// TracingConfig selects the span exporter. "none" keeps tracing disabled.
type TracingConfig struct {
	Exporter    string
	SampleRatio float64
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "gamer-marketplace"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:                  os.Getenv("POSTGRES_DSN"),
			ApplicationName:      getEnv("POSTGRES_APPLICATION_NAME", getEnv("APP_NAME", "gamer-marketplace")),
			MaxConns:             int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:             int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:        getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:        getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec:       int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec:       int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
			HealthCheckSec:       int32(getEnvAsInt("POSTGRES_HEALTH_CHECK_SECONDS", 15)),
			ConnectTimeoutSec:    int32(getEnvAsInt("POSTGRES_CONNECT_TIMEOUT_SECONDS", 5)),
			StatementTimeoutMsec: int32(getEnvAsInt("POSTGRES_STATEMENT_TIMEOUT_MS", 5000)),
		},
		Redis: RedisConfig{
			Addr:         getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:     os.Getenv("REDIS_PASSWORD"),
			DB:           redisDB,
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			DialTimeout:  time.Duration(getEnvAsInt("REDIS_DIAL_TIMEOUT_MS", 2000)) * time.Millisecond,
			ReadTimeout:  time.Duration(getEnvAsInt("REDIS_READ_TIMEOUT_MS", 500)) * time.Millisecond,
			WriteTimeout: time.Duration(getEnvAsInt("REDIS_WRITE_TIMEOUT_MS", 500)) * time.Millisecond,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", DefaultJWTSecret),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60*24),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			CookieName:            getEnv("AUTH_COOKIE_NAME", "session_token"),
			LoginPath:             getEnv("AUTH_LOGIN_PATH", "/login"),
			ProtectedPaths:        getEnvAsList("AUTH_PROTECTED_PATHS", []string{"/dashboard/*"}),
			RedirectWithReturn:    getEnvAsBool("AUTH_REDIRECT_WITH_RETURN", false),
			LoginMaxAttempts:      getEnvAsInt("AUTH_LOGIN_MAX_ATTEMPTS", 5),
			LoginWindowMinutes:    getEnvAsInt("AUTH_LOGIN_WINDOW_MINUTES", 15),
		},
		Session: SessionClientConfig{
			BaseURL:        getEnv("SESSION_BASE_URL", "http://127.0.0.1:8080"),
			IdentityPath:   getEnv("SESSION_IDENTITY_PATH", "/api/auth/me"),
			LogoutPath:     getEnv("SESSION_LOGOUT_PATH", "/api/auth/logout"),
			TimeoutSeconds: getEnvAsInt("SESSION_TIMEOUT_SECONDS", 5),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
		Tracing: TracingConfig{
			Exporter:    strings.ToLower(getEnv("TRACING_EXPORTER", "none")),
			SampleRatio: getEnvAsFloat("TRACING_SAMPLE_RATIO", 1),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces startup requirements. The signing secret must be supplied,
// non-default and at least MinSecretBytes long unless running in development.
func (c *Config) Validate() error {
	if len(c.Auth.ProtectedPaths) == 0 {
		return errors.New("AUTH_PROTECTED_PATHS must list at least one pattern")
	}
	for _, pattern := range c.Auth.ProtectedPaths {
		if !strings.HasPrefix(pattern, "/") {
			return fmt.Errorf("AUTH_PROTECTED_PATHS entry %q must be absolute", pattern)
		}
		if _, err := path.Match(pattern, "/"); err != nil {
			return fmt.Errorf("AUTH_PROTECTED_PATHS entry %q: %w", pattern, err)
		}
	}
	if !strings.HasPrefix(c.Auth.LoginPath, "/") {
		return fmt.Errorf("AUTH_LOGIN_PATH must be absolute, got %q", c.Auth.LoginPath)
	}
	switch c.Tracing.Exporter {
	case "", "none", "stdout":
	default:
		return fmt.Errorf("TRACING_EXPORTER must be none or stdout, got %q", c.Tracing.Exporter)
	}
	if c.App.IsDevelopment() {
		return nil
	}
	secret := c.Auth.JWTSecret
	switch {
	case secret == "":
		return errors.New("AUTH_JWT_SECRET is required")
	case secret == DefaultJWTSecret:
		return fmt.Errorf("AUTH_JWT_SECRET must not use the default value in %s", c.App.Env)
	case len(secret) < MinSecretBytes:
		return fmt.Errorf("AUTH_JWT_SECRET must be at least %d bytes", MinSecretBytes)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsDevelopment reports whether the app runs in a development environment.
func (a AppConfig) IsDevelopment() bool {
	switch strings.ToLower(a.Env) {
	case "development", "dev", "local", "test":
		return true
	}
	return false
}

// IsProduction reports whether the app runs in production.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL returns the session token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// LoginWindow returns the login throttle window.
func (a AuthConfig) LoginWindow() time.Duration {
	return time.Duration(a.LoginWindowMinutes) * time.Minute
}

// Timeout bounds a single identity fetch.
func (s SessionClientConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
