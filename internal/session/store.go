package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// Credentials is the persisted slice of the session: the token pair, the
// user id, and the cached profile (stored as the server's JSON, matching the
// stale-while-valid cache policy).
type Credentials struct {
	AccessToken  string `toml:"access_token"`
	RefreshToken string `toml:"refresh_token"`
	UserID       string `toml:"user_id"`
	ProfileJSON  string `toml:"cached_profile"`
}

// Store reads and writes credentials at a fixed path.
type Store struct {
	path string
}

// NewStore builds a Store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads persisted credentials, returning zero credentials when the file
// is missing or unreadable. A corrupt file degrades to anonymous rather than
// blocking startup.
func (s *Store) Load() Credentials {
	if s == nil || s.path == "" {
		return Credentials{}
	}

	file, err := os.Open(s.path)
	if err != nil {
		return Credentials{}
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Credentials{}
	}

	var creds Credentials
	if err := toml.Unmarshal(bytes, &creds); err != nil {
		return Credentials{}
	}
	return creds
}

// Save writes creds to disk, creating directories as needed. The file is
// written 0600 since it holds bearer tokens.
func (s *Store) Save(creds Credentials) error {
	if s == nil || s.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	bytes, err := toml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	if err := os.WriteFile(s.path, bytes, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Clear removes the credentials file. Missing files are not an error.
func (s *Store) Clear() error {
	if s == nil || s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
