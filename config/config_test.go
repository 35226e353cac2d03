package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config directory at a temp dir and clears every
// STREAMBOT_ variable for the duration of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STREAMBOT_CONFIG_DIR", dir)
	for _, name := range []string{"STREAMBOT_ENDPOINT", "STREAMBOT_CSRF_TOKEN", "STREAMBOT_TIMEOUT", "STREAMBOT_DEBUG"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return dir
}

func writeSettings(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.toml"), []byte(content), 0600))
}

func TestLoadFirstRunWritesDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ConfigDir())
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Empty(t, cfg.CSRFToken)
	assert.Zero(t, cfg.Timeout)
	assert.FileExists(t, filepath.Join(dir, "settings.toml"))
	assert.FileExists(t, filepath.Join(dir, "keybindings.toml"))

	info, err := os.Stat(filepath.Join(dir, "settings.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadReadsSettings(t *testing.T) {
	dir := isolate(t)
	writeSettings(t, dir, `
endpoint = "https://shop.example.com"
csrf_token = "from-file"
timeout = "15s"
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com", cfg.Endpoint)
	assert.Equal(t, "from-file", cfg.CSRFToken)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
}

func TestEnvOverridesSettings(t *testing.T) {
	dir := isolate(t)
	writeSettings(t, dir, `
endpoint = "https://file.example.com"
csrf_token = "from-file"
`)

	t.Setenv("STREAMBOT_ENDPOINT", "http://env.example.com:9000")
	t.Setenv("STREAMBOT_CSRF_TOKEN", "")
	t.Setenv("STREAMBOT_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://env.example.com:9000", cfg.Endpoint)
	assert.Empty(t, cfg.CSRFToken, "an empty token in the environment still wins")
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not a duration", "soon"},
		{"negative", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv("STREAMBOT_TIMEOUT", tt.raw)

			_, err := Load()
			assert.ErrorContains(t, err, "STREAMBOT_TIMEOUT")
		})
	}
}

func TestLoadRejectsBrokenSettings(t *testing.T) {
	dir := isolate(t)
	writeSettings(t, dir, "endpoint = ")

	_, err := Load()
	assert.ErrorContains(t, err, "failed to parse settings")
}

func TestInitDebugLog(t *testing.T) {
	dir := isolate(t)
	t.Cleanup(func() {
		Log = zerolog.Nop()
	})

	InitDebugLog(dir, false)
	assert.NoFileExists(t, filepath.Join(dir, "debug.log"))

	InitDebugLog(dir, true)

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug logging started")
}
