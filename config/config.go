package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	ConfigDirectory string
	Endpoint        string
	CSRFToken       string
	Timeout         time.Duration
	Keybindings     *KeyBindingsConfig
}

// Log is the debug logger. It discards everything until InitDebugLog enables it.
var Log = zerolog.Nop()

func (c *Config) ConfigDir() string {
	return ExpandPath(c.ConfigDirectory)
}

func (c *Config) applySettings(s *Settings) error {
	if s.Endpoint != "" {
		c.Endpoint = s.Endpoint
	}
	c.CSRFToken = s.CSRFToken
	if s.Timeout != "" {
		d, err := parseTimeout(s.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout in settings: %w", err)
		}
		c.Timeout = d
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if endpoint := strings.TrimSpace(os.Getenv("STREAMBOT_ENDPOINT")); endpoint != "" {
		c.Endpoint = endpoint
	}
	if token, ok := os.LookupEnv("STREAMBOT_CSRF_TOKEN"); ok {
		c.CSRFToken = token
	}
	if raw := strings.TrimSpace(os.Getenv("STREAMBOT_TIMEOUT")); raw != "" {
		d, err := parseTimeout(raw)
		if err != nil {
			return fmt.Errorf("invalid STREAMBOT_TIMEOUT value %q: %w", raw, err)
		}
		c.Timeout = d
	}
	return nil
}

func parseTimeout(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative")
	}
	return d, nil
}

func CheckDebug() bool {
	debug := os.Getenv("STREAMBOT_DEBUG")
	return debug == "true" || debug == "1"
}

// InitDebugLog points Log at <dir>/debug.log when debugging is requested
// via STREAMBOT_DEBUG or force.
func InitDebugLog(dir string, force bool) {
	if !force && !CheckDebug() {
		return
	}

	logPath := filepath.Join(dir, "debug.log")

	// 0600 - requests and replies end up in here
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	Log = zerolog.New(f).With().Timestamp().Caller().Logger()
	Log.Debug().Str("path", logPath).Msg("debug logging started")
}

// loadDotEnv loads .env from the working directory. A missing file is fine.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load builds the effective configuration: defaults, then settings.toml,
// then .env and process environment.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		ConfigDirectory: GetConfigDir(),
		Endpoint:        DefaultEndpoint,
	}

	dir := cfg.ConfigDir()
	if err := EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	settings, err := LoadSettings(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.applySettings(settings); err != nil {
		return nil, err
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	kb, err := LoadKeybindings(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybindings: %w", err)
	}
	cfg.Keybindings = kb

	return cfg, nil
}
