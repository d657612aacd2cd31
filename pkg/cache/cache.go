// Package cache stores rendered artifacts and fetched documents.
//
// Artifacts are keyed by a hash of their input and render options,
// fetched documents by their URL. Both kinds share one store.
//
// Three backends implement [Cache]:
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys come from a [Keyer] so that every caller derives the same key for
// the same input and render options:
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().ArtifactKey(cache.Hash(input), cache.ArtifactKeyOpts{Format: "html"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry. Implementations are safe
// for concurrent use.
type Cache interface {
	// Get returns the data stored under key. A missing or expired entry is
	// reported as ok == false with a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases held resources.
	Close() error
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string `json:"format"`
	InputFormat string `json:"input_format,omitempty"`
	MaxDepth    int    `json:"max_depth,omitempty"`
	Titles      bool   `json:"titles,omitempty"`
	Expand      bool   `json:"expand,omitempty"`
	EmptyBranch bool   `json:"empty_branch,omitempty"`
	HideSize    bool   `json:"hide_size,omitempty"`
	HiddenKeys  bool   `json:"hidden_keys,omitempty"`
	HTML        bool   `json:"html,omitempty"`
	Indent      int    `json:"indent,omitempty"`
	MaxPreview  int    `json:"max_preview,omitempty"`
	Detailed    bool   `json:"detailed,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of an artifact rendered from the input
	// with hash inputHash.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string

	// ResponseKey returns the key of a fetched remote document.
	ResponseKey(url string) string
}

// DefaultKeyer produces keys of the form "artifact:<sha256>" and
// "response:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey(KindArtifact, inputHash, opts)
}

// ResponseKey implements Keyer.
func (DefaultKeyer) ResponseKey(url string) string {
	return hashKey(KindResponse, url)
}
