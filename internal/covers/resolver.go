package covers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"readmark/internal/remote"
	"readmark/internal/shared"
)

// Options configure a Resolver. Zero values fall back to the listed defaults.
type Options struct {
	SearchURL string        // title/author search endpoint
	ISBNURL   string        // base for deterministic ISBN cover URLs
	Timeout   time.Duration // per-search bound, default 5s
	RateLimit float64       // provider requests per second, default 2
	RateBurst int           // default 4
}

// Resolver produces cover URLs. Safe for concurrent use; in-flight
// resolutions are deduplicated per key.
type Resolver struct {
	caller  *remote.Caller
	store   *Store
	flight  singleflight.Group
	limiter *rate.Limiter
	opts    Options
	logger  *log.Logger
}

// NewResolver builds a Resolver over the given caller and cache store.
func NewResolver(caller *remote.Caller, store *Store, opts Options, logger *log.Logger) *Resolver {
	if opts.SearchURL == "" {
		opts.SearchURL = "https://www.googleapis.com/books/v1/volumes"
	}
	if opts.ISBNURL == "" {
		opts.ISBNURL = "https://covers.openlibrary.org/b/isbn"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 4
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Resolver{
		caller:  caller,
		store:   store,
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst),
		opts:    opts,
		logger:  logger,
	}
}

// ResolveCoverURL returns a cover image URL for the given book, or "" when no
// cover could be determined. It never fails: covers are an enhancement, and
// every error collapses to "".
func (r *Resolver) ResolveCoverURL(ctx context.Context, title, author, isbn string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}

	key := Key(title, author)
	if cached, state := r.store.Get(key); state == Resolved {
		return cached
	} else if state == Negative {
		return ""
	}

	// Concurrent callers for the same book join the in-flight resolution
	// instead of issuing duplicates. The flight entry is dropped when the
	// producer returns, success or not.
	flightKey := key + "|" + isbn
	result, _, _ := r.flight.Do(flightKey, func() (any, error) {
		return r.resolve(ctx, key, title, author, isbn), nil
	})

	coverURL, _ := result.(string)
	return coverURL
}

func (r *Resolver) resolve(ctx context.Context, key, title, author, isbn string) string {
	if cleaned := CleanISBN(isbn); cleaned != "" {
		coverURL := fmt.Sprintf("%s/%s-L.jpg", strings.TrimRight(r.opts.ISBNURL, "/"), cleaned)
		r.store.Put(key, coverURL)
		return coverURL
	}

	if !r.limiter.Allow() {
		// Local backpressure counts as transient: no negative entry, the
		// next call may retry.
		r.logger.Debug("cover search throttled", "key", key)
		return ""
	}

	payload, err := r.search(ctx, title, author)
	if err != nil {
		switch {
		case shared.IsCancelled(err):
			return ""
		case shared.HTTPStatus(err) == 429, errors.Is(err, shared.ErrRateLimited):
			// Provider rate limiting is transient; caching a negative here
			// would poison the cache for a book that has a cover.
			r.logger.Debug("cover provider rate limited", "key", key)
			return ""
		case shared.IsTimeout(err), errors.Is(err, shared.ErrNetwork), shared.HTTPStatus(err) >= 500:
			r.logger.Debug("cover search transient failure", "key", key, "err", err)
			return ""
		default:
			// Malformed body or a definitive client error: remember the miss.
			r.store.PutNegative(key)
			return ""
		}
	}

	coverURL := bestImage(payload)
	if coverURL == "" {
		r.store.PutNegative(key)
		return ""
	}

	coverURL = secureScheme(coverURL)
	r.store.Put(key, coverURL)
	return coverURL
}

type searchResponse struct {
	Items []struct {
		VolumeInfo struct {
			ImageLinks imageLinks `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

type imageLinks struct {
	ExtraLarge     string `json:"extraLarge"`
	Large          string `json:"large"`
	Medium         string `json:"medium"`
	Small          string `json:"small"`
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

func (r *Resolver) search(ctx context.Context, title, author string) (*searchResponse, error) {
	query := "intitle:" + title
	if author = strings.TrimSpace(author); author != "" {
		query += " inauthor:" + author
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", "1")

	var payload searchResponse
	searchURL := r.opts.SearchURL + "?" + params.Encode()
	if err := r.caller.GetJSON(ctx, searchURL, r.opts.Timeout, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// bestImage picks the largest available image from the provider's size
// ladder.
func bestImage(payload *searchResponse) string {
	if payload == nil || len(payload.Items) == 0 {
		return ""
	}
	links := payload.Items[0].VolumeInfo.ImageLinks
	for _, candidate := range []string{
		links.ExtraLarge, links.Large, links.Medium,
		links.Small, links.Thumbnail, links.SmallThumbnail,
	} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func secureScheme(coverURL string) string {
	if strings.HasPrefix(coverURL, "http://") {
		return "https://" + strings.TrimPrefix(coverURL, "http://")
	}
	return coverURL
}

// CleanISBN strips separator characters and returns the bare ISBN when the
// remainder is a well-formed ISBN-10 or ISBN-13, otherwise "". An ISBN-10 may
// end in the check character X.
func CleanISBN(isbn string) string {
	var digits strings.Builder
	for _, ch := range isbn {
		switch {
		case ch >= '0' && ch <= '9':
			digits.WriteRune(ch)
		case ch == 'x' || ch == 'X':
			digits.WriteRune('X')
		case ch == '-' || ch == ' ' || ch == '.':
			// separator, skip
		default:
			return ""
		}
	}
	cleaned := digits.String()
	switch {
	case len(cleaned) == 13 && !strings.Contains(cleaned, "X"):
		return cleaned
	case len(cleaned) == 10 && !strings.Contains(cleaned[:9], "X"):
		return cleaned
	}
	return ""
}
