package covers

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"readmark/internal/shared"
)

// Cached is the tri-state outcome of a cache lookup.
type Cached int

const (
	// Miss means the key has never been resolved (or storage was unavailable).
	Miss Cached = iota
	// Resolved means a cover URL is cached for the key.
	Resolved
	// Negative means a prior lookup definitively failed; do not retry.
	Negative
)

// Store persists resolution outcomes in the local SQLite database so covers
// survive restarts. Durability is an optimization: a nil db or any storage
// error degrades to cache misses and swallowed writes, never a failure.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// NewStore wraps db, which may be nil for memory-less operation (every Get is
// a Miss, every Put a no-op).
func NewStore(db *sql.DB, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{db: db, logger: logger}
}

// Key builds the cache key for a title/author pair.
func Key(title, author string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "|" + strings.ToLower(strings.TrimSpace(author))
}

// Get looks up a key. Storage errors are logged and reported as Miss.
func (s *Store) Get(key string) (string, Cached) {
	if s.db == nil {
		return "", Miss
	}

	var coverURL string
	var negative bool
	err := s.db.QueryRow("SELECT url, negative FROM cover_cache WHERE key = ?", key).Scan(&coverURL, &negative)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", Miss
	case err != nil:
		s.logger.Debug("cover cache read failed", "key", key, "err", err)
		return "", Miss
	case negative:
		return "", Negative
	default:
		return coverURL, Resolved
	}
}

// Put records a resolved URL for key. Best effort.
func (s *Store) Put(key, coverURL string) {
	s.write(key, coverURL, false)
}

// PutNegative records that resolution for key definitively failed.
func (s *Store) PutNegative(key string) {
	s.write(key, "", true)
}

func (s *Store) write(key, coverURL string, negative bool) {
	if s.db == nil {
		return
	}
	_, err := s.db.Exec(
		"INSERT INTO cover_cache (key, url, negative) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET url = excluded.url, negative = excluded.negative",
		key, coverURL, negative,
	)
	if err != nil {
		s.logger.Debug("cover cache write failed", "key", key, "err", err)
	}
}
