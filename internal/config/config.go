// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/radif/mediadrop/internal/logger"
)

const (
	defaultSessionTTL    = 7 * 24 * time.Hour
	defaultBucketLimit   = "10GiB"
	defaultMaxUploadSize = "100MiB"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	// AppURL is the public base of the dashboard itself; embed links point at <AppURL>/view/<key>.
	AppURL string

	// AdminPassword is the shared login secret. Empty means every login is rejected.
	AdminPassword      string
	SessionTTL         time.Duration
	LoginRatePerMinute int

	// TrustProxy makes client addresses come from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a reverse proxy that overwrites those headers.
	TrustProxy bool

	// Object storage: "minio" (any S3-compatible endpoint), "s3" (AWS SDK, e.g. Cloudflare R2) or "memory".
	StorageDriver     string
	StorageEndpoint   string
	StorageRegion     string
	StorageAccessKey  string
	StorageSecretKey  string
	StorageBucket     string
	StorageUseSSL     bool
	StoragePublicBase string // browser-accessible base URL, e.g. "http://localhost:9000/uploads"

	BucketLimit   int64 // total bytes the bucket may hold
	MaxUploadSize int64 // per-file cap
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found, reading from environment")
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		AppURL:   strings.TrimRight(getEnv("APP_URL", "http://localhost:3000"), "/"),

		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		TrustProxy:    getEnv("TRUSTED_PROXY", "false") == "true",

		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", "minio")),
		StorageEndpoint:   getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageRegion:     getEnv("STORAGE_REGION", "auto"),
		StorageAccessKey:  getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
		StorageSecretKey:  getEnv("STORAGE_SECRET_KEY", "minioadmin"),
		StorageBucket:     getEnv("STORAGE_BUCKET", "uploads"),
		StorageUseSSL:     getEnv("STORAGE_USE_SSL", "false") == "true",
		StoragePublicBase: strings.TrimRight(getEnv("STORAGE_PUBLIC_BASE", "http://localhost:9000/uploads"), "/"),
	}

	// Cloudflare R2 endpoints are derived from the account id.
	if id := os.Getenv("R2_ACCOUNT_ID"); id != "" && cfg.StorageDriver == "s3" && os.Getenv("STORAGE_ENDPOINT") == "" {
		cfg.StorageEndpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", id)
	}

	switch cfg.StorageDriver {
	case "minio", "s3", "memory":
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER: unsupported driver %q", cfg.StorageDriver)
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", defaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.LoginRatePerMinute, err = getInt("LOGIN_RATE_PER_MINUTE", 10); err != nil {
		return nil, err
	}
	if cfg.BucketLimit, err = getBytes("BUCKET_LIMIT", defaultBucketLimit); err != nil {
		return nil, err
	}
	if cfg.MaxUploadSize, err = getBytes("MAX_UPLOAD_SIZE", defaultMaxUploadSize); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

// getBytes accepts plain byte counts ("10737418240") as well as
// humanized sizes ("10GiB", "500 MB").
func getBytes(key, fallback string) (int64, error) {
	v := getEnv(key, fallback)
	n, err := humanize.ParseBytes(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid size %q: %w", key, v, err)
	}
	if n == 0 || n > uint64(1<<62) {
		return 0, fmt.Errorf("%s: size %q out of range", key, v)
	}
	return int64(n), nil
}
