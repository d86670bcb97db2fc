// package remote implements the single HTTP call primitive shared by every
// backend-facing component.
//
// A [Caller] enforces a per-call timeout, attaches the session cookie and a
// correlation ID, and classifies failures into the shared error taxonomy:
// [shared.ErrTimeout], [shared.ErrNetwork], [shared.HTTPError] and
// [shared.ErrMalformedResponse]. Caller-initiated cancellation propagates as
// [context.Canceled] so teardown is never mistaken for a failure. Retry policy
// belongs to callers; a Caller never retries.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"readmark/internal/shared"
)

const (
	defaultUserAgent = "readmark/0.3"
	sessionCookie    = "access_token"
)

// Caller talks to an HTTP API with bounded, cancellable requests.
type Caller struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     string
	logger    *log.Logger
}

// NewCaller builds a Caller for the given base URL. The http client defaults
// to [http.DefaultClient]; per-call timeouts are enforced via context, not the
// client's Timeout field, so one Caller serves calls with different bounds.
func NewCaller(baseURL string, client *http.Client, logger *log.Logger) (*Caller, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Caller{
		baseURL:   base,
		http:      client,
		userAgent: defaultUserAgent,
		logger:    logger,
	}, nil
}

// SetToken sets the session token attached as a cookie to subsequent calls.
func (c *Caller) SetToken(token string) {
	c.token = token
}

// GetJSON issues a GET to path (relative to the base URL, or absolute) and
// decodes the JSON response body into dest.
func (c *Caller) GetJSON(ctx context.Context, path string, timeout time.Duration, dest any) error {
	return c.callWithToken(ctx, http.MethodGet, path, nil, c.token, timeout, dest)
}

// GetJSONWithToken is GetJSON with an explicit session token in place of the
// Caller's configured one. Used by the verification gate, which checks tokens
// it does not own.
func (c *Caller) GetJSONWithToken(ctx context.Context, path, token string, timeout time.Duration, dest any) error {
	return c.callWithToken(ctx, http.MethodGet, path, nil, token, timeout, dest)
}

// PostJSON issues a POST with an optional JSON body and decodes the response
// into dest.
func (c *Caller) PostJSON(ctx context.Context, path string, body any, timeout time.Duration, dest any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	return c.callWithToken(ctx, http.MethodPost, path, reader, c.token, timeout, dest)
}

func (c *Caller) callWithToken(ctx context.Context, method, path string, body io.Reader, token string, timeout time.Duration, dest any) error {
	rel, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("%w: bad path %q: %v", shared.ErrInvalidInput, path, err)
	}
	reqURL := c.baseURL.ResolveReference(rel)

	callCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(callCtx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := shared.GenerateID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.classify(ctx, callCtx, rel.Path, requestID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &shared.HTTPError{Status: resp.StatusCode, Path: rel.Path}
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", shared.ErrMalformedResponse, rel.Path, err)
	}
	return nil
}

// classify maps a transport error onto the shared taxonomy. The per-call
// deadline expiring is a Timeout; the parent context being cancelled is
// teardown and stays [context.Canceled].
func (c *Caller) classify(parent, callCtx context.Context, path, requestID string, err error) error {
	switch {
	case parent.Err() != nil && errors.Is(parent.Err(), context.Canceled):
		return fmt.Errorf("%s cancelled: %w", path, context.Canceled)
	case errors.Is(callCtx.Err(), context.DeadlineExceeded):
		c.logger.Debug("request timed out", "path", path, "request_id", requestID)
		return fmt.Errorf("%w: %s", shared.ErrTimeout, path)
	default:
		c.logger.Debug("request failed", "path", path, "request_id", requestID, "err", err)
		return fmt.Errorf("%w: %s: %v", shared.ErrNetwork, path, err)
	}
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: base URL required", shared.ErrInvalidConfig)
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: parse base URL %q: %v", shared.ErrInvalidConfig, raw, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
