package main

import (
	"bytes"
	"strings"
	"testing"

	"readmark/internal/shared"
	itesting "readmark/internal/testing"
)

func TestNewRunner(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		runner, err := NewRunner(RunnerOpts{})
		if err != nil {
			t.Fatalf("NewRunner failed: %v", err)
		}
		defer runner.Close()

		if runner.config == nil || runner.config.Server.BaseURL == "" {
			t.Error("expected default config with a base url")
		}
		if runner.caller == nil || runner.library == nil || runner.logger == nil {
			t.Error("expected fully wired runner")
		}
	})

	t.Run("Invalid Base URL", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Server.BaseURL = ""
		if _, err := NewRunner(RunnerOpts{Config: config}); err == nil {
			t.Error("expected error for empty base url")
		}
	})

	t.Run("Registers All Commands", func(t *testing.T) {
		runner, err := NewRunner(RunnerOpts{})
		if err != nil {
			t.Fatalf("NewRunner failed: %v", err)
		}
		defer runner.Close()

		commands := runner.register()
		if len(commands) != 6 {
			t.Errorf("expected 6 commands, got %d", len(commands))
		}

		names := map[string]bool{}
		for _, cmd := range commands {
			names[cmd.Name] = true
		}
		for _, want := range []string{"setup", "auth", "sync", "cover", "books", "tui"} {
			if !names[want] {
				t.Errorf("missing command %q", want)
			}
		}
	})
}

func TestRunnerOutput(t *testing.T) {
	newBufferedRunner := func(t *testing.T) (*Runner, *bytes.Buffer) {
		t.Helper()
		var buf bytes.Buffer
		runner, err := NewRunner(RunnerOpts{Output: &buf})
		if err != nil {
			t.Fatalf("NewRunner failed: %v", err)
		}
		t.Cleanup(runner.Close)
		return runner, &buf
	}

	t.Run("WriteJSON Compact", func(t *testing.T) {
		runner, buf := newBufferedRunner(t)
		if err := runner.writeJSON(map[string]string{"status": "idle"}, false); err != nil {
			t.Fatalf("writeJSON failed: %v", err)
		}
		if got := buf.String(); got != "{\"status\":\"idle\"}\n" {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("WriteJSON Pretty", func(t *testing.T) {
		runner, buf := newBufferedRunner(t)
		if err := runner.writeJSON(map[string]string{"status": "idle"}, true); err != nil {
			t.Fatalf("writeJSON failed: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"status\": \"idle\"") {
			t.Errorf("expected indented output, got %q", buf.String())
		}
	})

	t.Run("WritePlainln", func(t *testing.T) {
		runner, buf := newBufferedRunner(t)
		if err := runner.writePlainln("synced %d books", 3); err != nil {
			t.Fatalf("writePlainln failed: %v", err)
		}
		if buf.String() != "synced 3 books\n" {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("Write Failure Surfaces", func(t *testing.T) {
		runner, _ := newBufferedRunner(t)
		runner.output = &itesting.FWriter{}
		if err := runner.writePlainln("lost"); err == nil {
			t.Error("expected write error to surface")
		}
	})
}
