package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCurlCommand(t *testing.T) {
	t.Run("Cookie Header", func(t *testing.T) {
		cmd := `curl 'https://highlights.example.com/books' \
  -H 'Accept: application/json' \
  -H 'Cookie: theme=dark; access_token=tok-123; lang=en'`

		session, err := ParseCurlCommand([]byte(cmd))
		if err != nil {
			t.Fatalf("ParseCurlCommand failed: %v", err)
		}
		if session.Token != "tok-123" {
			t.Errorf("unexpected token %q", session.Token)
		}
		if session.Headers["Accept"] != "application/json" {
			t.Errorf("expected Accept header to survive, got %v", session.Headers)
		}
		if _, ok := session.Headers["Cookie"]; ok {
			t.Error("cookie header must not be kept as a plain header")
		}
	})

	t.Run("Cookie Flag", func(t *testing.T) {
		cmd := `curl 'https://highlights.example.com/books' -b 'access_token=tok-456'`

		session, err := ParseCurlCommand([]byte(cmd))
		if err != nil {
			t.Fatalf("ParseCurlCommand failed: %v", err)
		}
		if session.Token != "tok-456" {
			t.Errorf("unexpected token %q", session.Token)
		}
	})

	t.Run("Cookie Flag Wins Over Header", func(t *testing.T) {
		cmd := `curl 'https://x' -H 'Cookie: access_token=old' -b "access_token=new"`

		session, err := ParseCurlCommand([]byte(cmd))
		if err != nil {
			t.Fatalf("ParseCurlCommand failed: %v", err)
		}
		if session.Token != "new" {
			t.Errorf("expected -b to take precedence, got %q", session.Token)
		}
	})

	t.Run("Double Quoted Headers", func(t *testing.T) {
		cmd := `curl "https://x" -H "Cookie: access_token=dq-tok"`

		session, err := ParseCurlCommand([]byte(cmd))
		if err != nil {
			t.Fatalf("ParseCurlCommand failed: %v", err)
		}
		if session.Token != "dq-tok" {
			t.Errorf("unexpected token %q", session.Token)
		}
	})

	t.Run("No Session Cookie", func(t *testing.T) {
		cmd := `curl 'https://x' -H 'Cookie: theme=dark'`
		if _, err := ParseCurlCommand([]byte(cmd)); err == nil {
			t.Error("expected error when access_token is absent")
		}
	})
}

func TestParseCurlFile(t *testing.T) {
	t.Run("Reads And Parses", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "request.sh")
		cmd := `curl 'https://x' -H 'Cookie: access_token=from-file'`
		if err := os.WriteFile(path, []byte(cmd), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		session, err := ParseCurlFile(path)
		if err != nil {
			t.Fatalf("ParseCurlFile failed: %v", err)
		}
		if session.Token != "from-file" {
			t.Errorf("unexpected token %q", session.Token)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := ParseCurlFile(filepath.Join(t.TempDir(), "absent.sh")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
