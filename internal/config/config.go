package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `json:"server"`
	Auth   AuthConfig   `json:"auth"`
	UI     UIConfig     `json:"ui"`
}

// ServerConfig configures the remote note service.
type ServerConfig struct {
	BaseURL        string        `json:"baseUrl"`
	MediaBaseURL   string        `json:"mediaBaseUrl"`
	RequestTimeout time.Duration `json:"requestTimeout"`
}

// AuthConfig holds login defaults. Passwords never live in the config
// file; they are prompted for or passed on the command line.
type AuthConfig struct {
	Email string `json:"email"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter bool `json:"showFooter"`
	ShowClock  bool `json:"showClock"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:        "http://localhost:8000",
			RequestTimeout: 10 * time.Second,
		},
		UI: UIConfig{
			ShowFooter: true,
			ShowClock:  true,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server.baseUrl is required")
	}
	if _, err := url.Parse(c.Server.BaseURL); err != nil {
		return fmt.Errorf("server.baseUrl: %w", err)
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = 10 * time.Second
	}
	if c.Server.MediaBaseURL == "" {
		c.Server.MediaBaseURL = c.Server.BaseURL
	}
	return nil
}
