// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xxayder/NFC-Check/internal/domain"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// AdminKey is the shared secret required by tag registration. Required.
	AdminKey string

	// RedirectTemplate is the deep-link template used when a tag has no
	// redirect target of its own. Required; must contain {ROWID}.
	RedirectTemplate string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFile, when set, receives a rotated copy of the log stream.
	LogFile string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["*"]. Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StoreTimeout bounds the store work of a single request. Defaults to 5s.
	StoreTimeout time.Duration

	// DBMaxConns caps the connection pool. Zero keeps the pgxpool default.
	DBMaxConns int32

	// AdminRateLimit and AdminRateBurst bound registration requests per client
	// IP. Defaults: 1 request/s, burst 5.
	AdminRateLimit float64
	AdminRateBurst int

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// TrustProxy makes the server take the client address from
	// X-Forwarded-For / X-Real-IP. Enable it only behind a proxy that
	// overwrites those headers. Defaults to false.
	TrustProxy bool
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or
// describing the first malformed optional value.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     os.Getenv("LOG_FILE"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "*")),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.AdminKey = strings.TrimSpace(os.Getenv("ADMIN_KEY"))
	if cfg.AdminKey == "" {
		missing = append(missing, "ADMIN_KEY")
	}

	cfg.RedirectTemplate = strings.TrimSpace(os.Getenv("REDIRECT_TEMPLATE"))
	if cfg.RedirectTemplate == "" {
		missing = append(missing, "REDIRECT_TEMPLATE")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if err := domain.ValidateTemplate(cfg.RedirectTemplate); err != nil {
		return Config{}, fmt.Errorf("REDIRECT_TEMPLATE: %w", err)
	}

	var err error
	if cfg.StoreTimeout, err = getDuration("STORE_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.DBMaxConns, err = getInt32("DB_MAX_CONNS", 0); err != nil {
		return Config{}, err
	}
	if cfg.AdminRateLimit, err = getFloat("ADMIN_RATE_LIMIT", 1); err != nil {
		return Config{}, err
	}
	if cfg.AdminRateBurst, err = getInt("ADMIN_RATE_BURST", 5); err != nil {
		return Config{}, err
	}
	maxBody, err := getInt("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxBodyBytes = int64(maxBody)
	if cfg.TrustProxy, err = getBool("TRUST_PROXY", false); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Redacted returns a copy safe to print: secrets and credentials are masked.
func (c Config) Redacted() Config {
	out := c
	if out.AdminKey != "" {
		out.AdminKey = "****"
	}
	out.DatabaseURL = redactURL(out.DatabaseURL)
	return out
}

// redactURL masks the password of a postgres:// URL.
func redactURL(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return dsn
	}
	user, _, hasPass := strings.Cut(creds, ":")
	if !hasPass {
		return dsn
	}
	return scheme + "://" + user + ":****@" + host
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var errNotPositive = errors.New("must be positive")

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: %w", key, errNotPositive)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s: %w", key, errNotPositive)
	}
	return n, nil
}

// getInt32 rejects values that do not fit in an int32 instead of wrapping.
func getInt32(key string, fallback int32) (int32, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s: %w", key, errNotPositive)
	}
	return int32(n), nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if f <= 0 {
		return 0, fmt.Errorf("%s: %w", key, errNotPositive)
	}
	return f, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
