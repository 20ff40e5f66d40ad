package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/goldennotes"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary.
type rawConfig struct {
	Server rawServerConfig `json:"server"`
	Auth   rawAuthConfig   `json:"auth"`
	UI     rawUIConfig     `json:"ui"`
}

type rawServerConfig struct {
	BaseURL        string `json:"baseUrl"`
	MediaBaseURL   string `json:"mediaBaseUrl"`
	RequestTimeout string `json:"requestTimeout"`
}

type rawAuthConfig struct {
	Email string `json:"email"`
}

type rawUIConfig struct {
	ShowFooter *bool `json:"showFooter"`
	ShowClock  *bool `json:"showClock"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/goldennotes/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return cfg, nil // Return defaults on error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Server
	if raw.Server.BaseURL != "" {
		cfg.Server.BaseURL = strings.TrimRight(raw.Server.BaseURL, "/")
	}
	if raw.Server.MediaBaseURL != "" {
		cfg.Server.MediaBaseURL = strings.TrimRight(raw.Server.MediaBaseURL, "/")
	}
	if raw.Server.RequestTimeout != "" {
		if d, err := time.ParseDuration(raw.Server.RequestTimeout); err == nil {
			cfg.Server.RequestTimeout = d
		}
	}

	// Auth
	if raw.Auth.Email != "" {
		cfg.Auth.Email = raw.Auth.Email
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.ShowClock != nil {
		cfg.UI.ShowClock = *raw.UI.ShowClock
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
