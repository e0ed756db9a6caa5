package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_LoadMissingFileIsAnonymous(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope.toml"))
	if creds := s.Load(); creds != (Credentials{}) {
		t.Fatalf("Load = %#v, want zero credentials", creds)
	}
}

func TestStore_CorruptFileDegradesToAnonymous(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := os.WriteFile(path, []byte("access_token = ["), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s := NewStore(path)
	if creds := s.Load(); creds != (Credentials{}) {
		t.Fatalf("Load = %#v, want zero credentials on corrupt file", creds)
	}
}

func TestStore_SaveCreatesDirAndRestrictsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.toml")
	s := NewStore(path)

	if err := s.Save(Credentials{AccessToken: "t1", RefreshToken: "r1", UserID: "u1"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0o600 {
		t.Fatalf("file mode = %o, want 600", mode)
	}

	creds := s.Load()
	if creds.AccessToken != "t1" || creds.RefreshToken != "r1" || creds.UserID != "u1" {
		t.Fatalf("round trip = %#v", creds)
	}
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	s := NewStore(path)
	if err := s.Save(Credentials{AccessToken: "t1"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
	if creds := s.Load(); creds != (Credentials{}) {
		t.Fatalf("Load after Clear = %#v, want zero credentials", creds)
	}
}
