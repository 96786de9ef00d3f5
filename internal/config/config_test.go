package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("BUCKET_LIMIT", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("TRUSTED_PROXY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:3000", cfg.AppURL)
	assert.Empty(t, cfg.AdminPassword)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "minio", cfg.StorageDriver)
	assert.Equal(t, int64(10*1024*1024*1024), cfg.BucketLimit)
	assert.Equal(t, int64(100*1024*1024), cfg.MaxUploadSize)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.TrustProxy)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_URL", "https://files.example.com/")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("BUCKET_LIMIT", "5368709120")
	t.Setenv("MAX_UPLOAD_SIZE", "10 MiB")
	t.Setenv("STORAGE_PUBLIC_BASE", "https://cdn.example.com/")
	t.Setenv("TRUSTED_PROXY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://files.example.com", cfg.AppURL)
	assert.Equal(t, "https://cdn.example.com", cfg.StoragePublicBase)
	assert.Equal(t, "hunter2", cfg.AdminPassword)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(5*1024*1024*1024), cfg.BucketLimit)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadSize)
	assert.True(t, cfg.TrustProxy)
}

func TestLoadR2Endpoint(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("STORAGE_ENDPOINT", "")
	t.Setenv("R2_ACCOUNT_ID", "abc123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://abc123.r2.cloudflarestorage.com", cfg.StorageEndpoint)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"SESSION_TTL":           "forever",
		"BUCKET_LIMIT":          "lots",
		"LOGIN_RATE_PER_MINUTE": "-1",
		"STORAGE_DRIVER":        "ftp",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}
