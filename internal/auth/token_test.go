package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ritwikchawla/Golden-Notes/internal/api"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := Save("ada@example.com", api.Token{Access: "acc", Refresh: "ref"}); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(CachePath())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("cache file mode = %o, want 600", perm)
	}

	creds, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if creds == nil || creds.Email != "ada@example.com" || creds.Refresh != "ref" {
		t.Errorf("loaded creds = %+v", creds)
	}
}

func TestLoadMissingCache(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	creds, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if creds != nil {
		t.Errorf("creds = %+v, want nil for missing cache", creds)
	}
}

func TestLoadIgnoresEmptyToken(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, cacheDir, cacheFile)
	os.MkdirAll(filepath.Dir(path), 0o755)
	os.WriteFile(path, []byte(`{"email":"a@b.c","refresh":""}`), 0o600)

	creds, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if creds != nil {
		t.Errorf("creds = %+v, want nil for empty token", creds)
	}
}

func TestClear(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	Save("a@b.c", api.Token{Refresh: "ref"})
	if err := Clear(); err != nil {
		t.Fatal(err)
	}
	if creds, _ := Load(); creds != nil {
		t.Error("credentials survived Clear")
	}

	// Clearing again is fine.
	if err := Clear(); err != nil {
		t.Fatal(err)
	}
}
