// ABOUTME: Persists the auth token in the XDG config directory
// ABOUTME: One token file surviving restarts until logout or expiry

package session

import (
	"os"
	"path/filepath"
	"strings"
)

// Store reads and writes the raw token string on disk.
type Store struct {
	configDir string
}

// NewStore creates a token store rooted at the given config directory.
func NewStore(configDir string) *Store {
	return &Store{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "collabform")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "collabform")
}

// tokenFile returns the path to the token file
func (s *Store) tokenFile() string {
	return filepath.Join(s.configDir, "token")
}

// Token returns the stored token, or "" when none is stored.
func (s *Store) Token() string {
	data, err := os.ReadFile(s.tokenFile())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save writes the token to disk, creating the config dir if needed.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}
	return os.WriteFile(s.tokenFile(), []byte(token), 0600)
}

// Clear removes the stored token. Missing token is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.tokenFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
