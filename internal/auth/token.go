// Package auth caches the API tokens obtained from login so the user
// does not have to re-authenticate on every launch.
package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/ritwikchawla/Golden-Notes/internal/api"
)

const (
	cacheDir  = ".config/goldennotes"
	cacheFile = "token.json"
)

// Credentials is the on-disk token cache entry.
type Credentials struct {
	Email   string    `json:"email"`
	Access  string    `json:"access"`
	Refresh string    `json:"refresh"`
	SavedAt time.Time `json:"savedAt"`
}

// CachePath returns the path to the token cache file.
func CachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, cacheDir, cacheFile)
}

// Load reads cached credentials. Returns nil with no error if nothing
// has been cached yet.
func Load() (*Credentials, error) {
	path := CachePath()
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	if creds.Refresh == "" {
		return nil, nil
	}
	return &creds, nil
}

// Save writes credentials to the cache. The file is user-readable only
// since it holds bearer tokens.
func Save(email string, tok api.Token) error {
	path := CachePath()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(Credentials{
		Email:   email,
		Access:  tok.Access,
		Refresh: tok.Refresh,
		SavedAt: time.Now(),
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Clear removes cached credentials, if any.
func Clear() error {
	path := CachePath()
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
