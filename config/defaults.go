package config

const (
	DefaultEndpoint = "http://localhost:8000"
)

func DefaultSettings() *Settings {
	return &Settings{
		Endpoint:  DefaultEndpoint,
		CSRFToken: "",
	}
}

func GenerateSettingsTemplate() string {
	return `# StreamBot Configuration
# Location: ~/.config/streambot/settings.toml
# This file uses TOML format: https://toml.io

# Base URL of the StreamPlus site. Messages are posted to <endpoint>/chatbot/
endpoint = "http://localhost:8000"

# Anti-forgery token sent as the X-CSRFToken header (empty if unset)
csrf_token = ""

# Optional request timeout (Go duration, e.g. "30s"). Empty means no timeout.
timeout = ""
`
}
