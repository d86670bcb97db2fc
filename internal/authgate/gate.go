// Package authgate decides whether a session token grants access, backed by a
// single verification round trip with a TTL cache in front of it.
//
// The gate knows nothing about routing. Callers translate Allow/Deny into
// "proceed" or "redirect to login". When the backend is unreachable the gate
// applies a deployment-time policy: deny (fail closed, the default) or allow
// (fail open). Policy verdicts are never cached, so a transient outage cannot
// pin future requests to a stale decision.
package authgate

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"readmark/internal/remote"
	"readmark/internal/shared"
)

const verifyPath = "/auth/verify"

// Decision is the outcome of a verification check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Options configure a Gate. Zero values fall back to the listed defaults.
type Options struct {
	TTL        time.Duration // verdict lifetime, default 5m
	MaxEntries int           // cache ceiling triggering a sweep, default 128
	Timeout    time.Duration // per-call bound, default 3s
	FailOpen   bool          // allow on backend outage, default deny
}

type cacheEntry struct {
	authenticated bool
	recordedAt    time.Time
}

// Gate verifies session tokens against the backend, caching verdicts per
// token for the configured TTL.
type Gate struct {
	caller *remote.Caller
	opts   Options
	logger *log.Logger

	// now is replaceable for TTL tests.
	now func() time.Time

	cache *tokenCache
}

// New creates a Gate using the given Caller for backend round trips.
func New(caller *remote.Caller, opts Options, logger *log.Logger) *Gate {
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = 128
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Gate{
		caller: caller,
		opts:   opts,
		logger: logger,
		now:    time.Now,
		cache:  newTokenCache(),
	}
}

type verifyResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// Verify checks a session token. It never returns an error: every failure
// mode collapses to a Decision per the gate's policy.
func (g *Gate) Verify(ctx context.Context, token string) Decision {
	if token == "" {
		return Deny
	}

	if entry, ok := g.cache.get(token); ok {
		if g.now().Sub(entry.recordedAt) < g.opts.TTL {
			return decisionFor(entry.authenticated)
		}
		// Read-after-expiry evicts lazily.
		g.cache.remove(token)
	}

	var payload verifyResponse
	err := g.caller.GetJSONWithToken(ctx, verifyPath, token, g.opts.Timeout, &payload)
	switch {
	case err == nil:
		g.cache.put(token, cacheEntry{authenticated: payload.Authenticated, recordedAt: g.now()})
		g.cache.sweep(g.opts.MaxEntries, g.opts.TTL, g.now())
		return decisionFor(payload.Authenticated)
	case shared.IsCancelled(err):
		// Teardown mid-navigation: nothing to show, nothing to cache.
		return Deny
	case shared.IsTimeout(err), errors.Is(err, shared.ErrNetwork):
		g.logger.Warn("verification backend unreachable", "fail_open", g.opts.FailOpen, "err", err)
		return decisionFor(g.opts.FailOpen)
	default:
		// Malformed body, unexpected status: deny without caching.
		g.logger.Debug("verification failed", "err", err)
		return Deny
	}
}

func decisionFor(allowed bool) Decision {
	if allowed {
		return Allow
	}
	return Deny
}
