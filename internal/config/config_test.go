package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.AllowedOrigin)
	assert.Equal(t, int64(10*1024*1024), cfg.Resize.MaxFileSize)
	assert.Equal(t, 80, cfg.Resize.DefaultQuality)
	assert.Equal(t, 10000, cfg.Resize.MaxDimension)
	assert.Equal(t, int64(50_000_000), cfg.Resize.MaxPixels)
	assert.Equal(t, BackendLocal, cfg.Storage.Backend)
	assert.Equal(t, "uploads", cfg.Storage.PublicPrefix)
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("READ_TIMEOUT", "5s")
	t.Setenv("ALLOWED_ORIGIN", "https://resize.example.com")
	t.Setenv("STORAGE_BACKEND", "MINIO")
	t.Setenv("PUBLIC_PREFIX", "/files/")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MINIO_PUBLIC_URL", "https://cdn.example.com/")
	t.Setenv("MAX_DIMENSION", "4096")
	t.Setenv("MAX_PIXELS", "16777216")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "https://resize.example.com", cfg.Server.AllowedOrigin)
	assert.Equal(t, BackendMinio, cfg.Storage.Backend)
	assert.Equal(t, "files", cfg.Storage.PublicPrefix)
	assert.True(t, cfg.Minio.UseSSL)
	assert.Equal(t, "https://cdn.example.com", cfg.Minio.PublicURL)
	assert.Equal(t, 4096, cfg.Resize.MaxDimension)
	assert.Equal(t, int64(16777216), cfg.Resize.MaxPixels)
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("WRITE_TIMEOUT", "soon")
	t.Setenv("MAX_FILE_SIZE", "big")
	t.Setenv("DEFAULT_QUALITY", "150")
	t.Setenv("MAX_DIMENSION", "-1")
	t.Setenv("MAX_PIXELS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, int64(10*1024*1024), cfg.Resize.MaxFileSize)
	assert.Equal(t, 80, cfg.Resize.DefaultQuality)
	assert.Equal(t, 10000, cfg.Resize.MaxDimension)
	assert.Equal(t, int64(50_000_000), cfg.Resize.MaxPixels)
}
