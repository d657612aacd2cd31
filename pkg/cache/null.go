package cache

import (
	"context"
	"time"
)

// NullCache keeps nothing: every Get misses, so renders are recomputed and
// URLs are fetched again. It backs --no-cache, the "none" backend and the
// fallback for an unreachable Redis.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
