package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/matzehuels/jsonview/pkg/buildinfo"
	"github.com/matzehuels/jsonview/pkg/cache"
)

const (
	httpTimeout = 30 * time.Second

	// MaxBodySize is the largest document Fetch accepts.
	MaxBodySize = 64 << 20
)

var (
	// ErrNotFound is returned when the server answers 404.
	ErrNotFound = errors.New("document not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrTooLarge is returned for bodies over MaxBodySize.
	ErrTooLarge = errors.New("document too large")
)

// RetryableError marks a failure that is worth another attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Fetcher downloads remote documents. The zero value is not usable; see
// [NewFetcher].
type Fetcher struct {
	client   *http.Client
	store    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	attempts int
	delay    time.Duration
	headers  map[string]string
}

// FetchOption configures a [Fetcher].
type FetchOption func(*Fetcher)

// WithCache stores responses in c for ttl. A nil keyer uses the default.
func WithCache(c cache.Cache, keyer cache.Keyer, ttl time.Duration) FetchOption {
	return func(f *Fetcher) {
		if keyer == nil {
			keyer = cache.NewDefaultKeyer()
		}
		f.store, f.keyer, f.ttl = c, keyer, ttl
	}
}

// WithRetry sets the number of attempts and the first backoff delay.
func WithRetry(attempts int, delay time.Duration) FetchOption {
	return func(f *Fetcher) {
		f.attempts, f.delay = max(attempts, 1), delay
	}
}

// WithHeader adds a request header.
func WithHeader(key, value string) FetchOption {
	return func(f *Fetcher) { f.headers[key] = value }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) FetchOption {
	return func(f *Fetcher) { f.client = c }
}

// NewFetcher creates a Fetcher with a 30s timeout, three attempts starting
// at one second, and no cache.
func NewFetcher(opts ...FetchOption) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: httpTimeout},
		store:    cache.NewNullCache(),
		keyer:    cache.NewDefaultKeyer(),
		attempts: 3,
		delay:    time.Second,
		headers: map[string]string{
			"User-Agent": "jsonview/" + buildinfo.Version,
			"Accept":     "application/json, application/yaml, application/toml, text/plain;q=0.9, */*;q=0.5",
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// IsURL reports whether s is an absolute http or https URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Filename returns the last path element of a URL, used to detect the
// input format from its extension.
func Filename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return path.Base(u.Path)
}

// Fetch returns the body at rawURL. Unless refresh is set, a cached body
// is returned without a request. Cache failures never fail a fetch.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, refresh bool) ([]byte, error) {
	key := f.keyer.ResponseKey(rawURL)
	if !refresh {
		if data, ok, err := f.store.Get(ctx, key); err == nil && ok {
			return data, nil
		}
	}

	var body []byte
	err := f.retry(ctx, func() error {
		var err error
		body, err = f.get(ctx, rawURL)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	_ = f.store.Set(ctx, key, body, f.ttl)
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	if len(data) > MaxBodySize {
		return nil, ErrTooLarge
	}
	return data, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests || code >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

// retry runs fn until it succeeds, fails without a RetryableError, or
// runs out of attempts. The delay doubles after each failure.
func (f *Fetcher) retry(ctx context.Context, fn func() error) error {
	delay := f.delay
	var lastErr error
	for i := range f.attempts {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if !errors.As(lastErr, new(*RetryableError)) {
			return lastErr
		}
		if i < f.attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
