package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Server saveServerConfig `json:"server"`
	Auth   rawAuthConfig    `json:"auth"`
	UI     UIConfig         `json:"ui"`
}

type saveServerConfig struct {
	BaseURL        string `json:"baseUrl,omitempty"`
	MediaBaseURL   string `json:"mediaBaseUrl,omitempty"`
	RequestTimeout string `json:"requestTimeout,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Server: saveServerConfig{
			BaseURL:        cfg.Server.BaseURL,
			MediaBaseURL:   cfg.Server.MediaBaseURL,
			RequestTimeout: cfg.Server.RequestTimeout.String(),
		},
		Auth: rawAuthConfig{Email: cfg.Auth.Email},
		UI:   cfg.UI,
	}
}

// testConfigPath overrides ConfigPath during tests.
var testConfigPath string

// SetTestConfigPath points Save and Load at a specific file. Test use only.
func SetTestConfigPath(path string) { testConfigPath = path }

// ResetTestConfigPath restores the default config location.
func ResetTestConfigPath() { testConfigPath = "" }

// Save writes the config to ~/.config/goldennotes/config.json, keeping
// any top-level keys it does not manage.
func Save(cfg *Config) error {
	path := ConfigPath()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Merge over existing file so unmanaged keys survive a save.
	raw := map[string]json.RawMessage{}
	if existing, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(existing, &raw)
	}

	sc := toSaveConfig(cfg)
	for key, val := range map[string]interface{}{
		"server": sc.Server,
		"auth":   sc.Auth,
		"ui":     sc.UI,
	} {
		data, err := json.Marshal(val)
		if err != nil {
			return err
		}
		raw[key] = data
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SaveEmail updates only the login email in config and saves.
func SaveEmail(email string) error {
	cfg, err := LoadFrom(ConfigPath())
	if err != nil {
		return err
	}
	cfg.Auth.Email = email
	return Save(cfg)
}
