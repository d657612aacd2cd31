// Package httputil fetches documents over HTTP for rendering.
//
// # Overview
//
// [Fetcher] downloads a JSON, YAML or TOML document from an http(s) URL
// so that the CLI can render remote input the same way as a local file:
//
//	f := httputil.NewFetcher(httputil.WithCache(store, keyer, time.Hour))
//	data, err := f.Fetch(ctx, "https://example.com/config.json", false)
//
// # Caching
//
// Responses are stored in any [cache.Cache] under the keyer's response
// key. A refresh fetch skips the lookup but still stores the new body.
//
// # Retry
//
// Transient failures are retried with exponential backoff, three
// attempts by default (see [WithRetry]):
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// A 404 is reported as [ErrNotFound] without retrying.
package httputil
