package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSession(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		saved := &Session{Token: "tok-789", Username: "reader"}
		if err := SaveSession(path, saved); err != nil {
			t.Fatalf("SaveSession failed: %v", err)
		}

		loaded, err := LoadSession(path)
		if err != nil {
			t.Fatalf("LoadSession failed: %v", err)
		}
		if loaded.Token != "tok-789" || loaded.Username != "reader" {
			t.Errorf("unexpected session %+v", loaded)
		}
		if loaded.SavedAt.IsZero() {
			t.Error("expected SavedAt to be stamped on save")
		}
	})

	t.Run("Owner Only Permissions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		if err := SaveSession(path, &Session{Token: "secret"}); err != nil {
			t.Fatalf("SaveSession failed: %v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected 0600 permissions, got %o", perm)
		}
	})

	t.Run("Missing File Yields Empty Session", func(t *testing.T) {
		session, err := LoadSession(filepath.Join(t.TempDir(), "absent.json"))
		if err != nil {
			t.Fatalf("LoadSession failed: %v", err)
		}
		if session.Token != "" {
			t.Errorf("expected empty session, got %+v", session)
		}
	})

	t.Run("Corrupt File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		os.WriteFile(path, []byte("{not json"), 0600)
		if _, err := LoadSession(path); err == nil {
			t.Error("expected error for corrupt session file")
		}
	})
}
