package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Settings is the on-disk shape of settings.toml
type Settings struct {
	Endpoint  string `toml:"endpoint"`
	CSRFToken string `toml:"csrf_token"`
	Timeout   string `toml:"timeout,omitempty"`
}

// LoadSettings reads settings.toml from dir, creating it from the template
// on first run.
func LoadSettings(dir string) (*Settings, error) {
	cfg := DefaultSettings()
	settingsPath := filepath.Join(dir, "settings.toml")

	if !FileExists(settingsPath) {
		if err := CreateDefaultSettings(dir); err != nil {
			return nil, fmt.Errorf("failed to create settings: %w", err)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(settingsPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	return cfg, nil
}

func CreateDefaultSettings(dir string) error {
	if err := EnsureDir(dir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	settingsPath := filepath.Join(dir, "settings.toml")
	if FileExists(settingsPath) {
		return nil
	}

	if err := os.WriteFile(settingsPath, []byte(GenerateSettingsTemplate()), 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}
