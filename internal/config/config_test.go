package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"TELEMATIK_ADDR", "TELEMATIK_MAX_UPLOAD_MB", "TELEMATIK_ARCHIVE_DIR", "TELEMATIK_INBOX_DIR",
		"TELEMATIK_OUTPUT_DIR", "TELEMATIK_LAYOUT_FILE", "LOG_LEVEL", "LOG_DEVELOPMENT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":5003", cfg.Server.Addr)
	assert.Equal(t, 50, cfg.Server.MaxUploadMB)
	assert.Equal(t, int64(50<<20), cfg.Server.MaxUploadBytes())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.Empty(t, cfg.Paths.ArchiveDir)
}

func TestFromEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TELEMATIK_ADDR", "127.0.0.1:8080")
	t.Setenv("TELEMATIK_MAX_UPLOAD_MB", "5")
	t.Setenv("TELEMATIK_ARCHIVE_DIR", dir)
	t.Setenv("TELEMATIK_LAYOUT_FILE", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_DEVELOPMENT", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 5, cfg.Server.MaxUploadMB)
	assert.Equal(t, dir, cfg.Paths.ArchiveDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestFromEnvInvalid(t *testing.T) {
	t.Setenv("TELEMATIK_MAX_UPLOAD_MB", "-1")
	t.Setenv("TELEMATIK_LAYOUT_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEMATIK_MAX_UPLOAD_MB")
	assert.Contains(t, err.Error(), "TELEMATIK_LAYOUT_FILE")
}
