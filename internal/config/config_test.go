package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "blogpost", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
	assert.Equal(t, "BlogPost.db", cfg.SQLite.Path)
	assert.Equal(t, "blogsession", cfg.Auth.SessionName)
	assert.Equal(t, 16, cfg.Uploads.MaxUploadMiB)
	assert.Equal(t, int64(16<<20), cfg.Uploads.MaxUploadBytes())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SQLITE_PATH", "/tmp/blog.db")
	t.Setenv("UPLOADS_DIR", "/tmp/uploads")
	t.Setenv("MAX_UPLOAD_MIB", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "s3cret", cfg.Auth.SessionSecret)
	assert.Equal(t, "/tmp/blog.db", cfg.SQLite.Path)
	assert.Equal(t, "/tmp/uploads", cfg.Uploads.Dir)
	assert.Equal(t, int64(4<<20), cfg.Uploads.MaxUploadBytes())
}

func TestLoadFromFileWithEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := []byte("[app]\nport = 7070\n\n[uploads]\nmax_upload_mib = 8\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_PORT", "7171")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7171, cfg.App.Port, "env must win over the file")
	assert.Equal(t, 8, cfg.Uploads.MaxUploadMiB)
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("APP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
}
