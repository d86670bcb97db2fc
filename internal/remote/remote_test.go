package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"readmark/internal/shared"
)

func TestCaller(t *testing.T) {
	t.Run("GetJSON", func(t *testing.T) {
		t.Run("Decodes Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				if req.URL.Path != "/books" {
					t.Errorf("expected path /books, got %s", req.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"ok": true}`))
			}))
			defer server.Close()

			caller, err := NewCaller(server.URL, nil, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			var payload struct {
				OK bool `json:"ok"`
			}
			if err := caller.GetJSON(context.Background(), "/books", time.Second, &payload); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !payload.OK {
				t.Error("expected payload.OK to be true")
			}
		})

		t.Run("Attaches Session Cookie And Request ID", func(t *testing.T) {
			var gotToken, gotRequestID string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				if cookie, err := req.Cookie("access_token"); err == nil {
					gotToken = cookie.Value
				}
				gotRequestID = req.Header.Get("X-Request-ID")
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			caller, _ := NewCaller(server.URL, nil, nil)
			caller.SetToken("tok-123")

			var dest map[string]any
			if err := caller.GetJSON(context.Background(), "/sync-status", time.Second, &dest); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if gotToken != "tok-123" {
				t.Errorf("expected token cookie tok-123, got %q", gotToken)
			}
			if gotRequestID == "" {
				t.Error("expected a request ID header")
			}
		})

		t.Run("Absolute URL Overrides Base", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				if got := req.URL.Query().Get("q"); got != "intitle:dune" {
					t.Errorf("expected query to survive, got %q", got)
				}
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			caller, _ := NewCaller("http://localhost:1", nil, nil)
			var dest map[string]any
			err := caller.GetJSON(context.Background(), server.URL+"/volumes?q=intitle%3Adune", time.Second, &dest)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})

	t.Run("Error Classification", func(t *testing.T) {
		t.Run("Timeout", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				time.Sleep(200 * time.Millisecond)
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			caller, _ := NewCaller(server.URL, nil, nil)
			err := caller.GetJSON(context.Background(), "/slow", 10*time.Millisecond, nil)
			if !shared.IsTimeout(err) {
				t.Errorf("expected timeout error, got %v", err)
			}
			if shared.IsCancelled(err) {
				t.Error("timeout must not classify as cancellation")
			}
		})

		t.Run("Cancellation", func(t *testing.T) {
			started := make(chan struct{})
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				close(started)
				time.Sleep(200 * time.Millisecond)
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			caller, _ := NewCaller(server.URL, nil, nil)
			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				<-started
				cancel()
			}()

			err := caller.GetJSON(ctx, "/slow", time.Second, nil)
			if !shared.IsCancelled(err) {
				t.Errorf("expected cancellation, got %v", err)
			}
			if shared.IsTimeout(err) {
				t.Error("cancellation must not classify as timeout")
			}
		})

		t.Run("Network Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}))
			server.Close()

			caller, _ := NewCaller(server.URL, nil, nil)
			err := caller.GetJSON(context.Background(), "/gone", time.Second, nil)
			if !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("expected network error, got %v", err)
			}
		})

		t.Run("HTTP Status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			}))
			defer server.Close()

			caller, _ := NewCaller(server.URL, nil, nil)
			err := caller.GetJSON(context.Background(), "/protected", time.Second, nil)

			if got := shared.HTTPStatus(err); got != 403 {
				t.Errorf("expected status 403, got %d (%v)", got, err)
			}
			if !shared.IsAuthRejected(err) {
				t.Error("expected auth rejection")
			}
		})

		t.Run("Malformed Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.Write([]byte("<html>not json</html>"))
			}))
			defer server.Close()

			caller, _ := NewCaller(server.URL, nil, nil)
			var dest map[string]any
			err := caller.GetJSON(context.Background(), "/weird", time.Second, &dest)
			if !errors.Is(err, shared.ErrMalformedResponse) {
				t.Errorf("expected malformed response error, got %v", err)
			}
		})
	})

	t.Run("PostJSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", req.Method)
			}
			if ct := req.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %s", ct)
			}
			w.Write([]byte(`{"initiated": true}`))
		}))
		defer server.Close()

		caller, _ := NewCaller(server.URL, nil, nil)
		var payload struct {
			Initiated bool `json:"initiated"`
		}
		body := map[string]string{"kind": "full"}
		if err := caller.PostJSON(context.Background(), "/check-and-sync", body, time.Second, &payload); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !payload.Initiated {
			t.Error("expected initiated to be true")
		}
	})

	t.Run("NewCaller", func(t *testing.T) {
		t.Run("Requires Base URL", func(t *testing.T) {
			if _, err := NewCaller("", nil, nil); err == nil {
				t.Error("expected error for empty base URL")
			}
		})

		t.Run("Defaults Scheme", func(t *testing.T) {
			caller, err := NewCaller("localhost:8000", nil, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if caller.baseURL.Scheme != "http" {
				t.Errorf("expected http scheme, got %s", caller.baseURL.Scheme)
			}
		})
	})
}
