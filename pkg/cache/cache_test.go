package cache

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("<div></div>"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get(k) = hit %v, err %v", hit, err)
	}
	if string(data) != "<div></div>" {
		t.Errorf("Get(k) = %q", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry should be gone after Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("short")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}

	if err := c.Set(ctx, "forever", []byte("y"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, err := os.ReadDir(c.Dir())
	if err != nil {
		t.Fatalf("cache dir should exist after Clear: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Clear left %d entries", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := ArtifactKeyOpts{Format: "html", MaxDepth: 3}
	key := k.ArtifactKey("hash123", base)
	if !strings.HasPrefix(key, "artifact:") {
		t.Errorf("ArtifactKey should be prefixed: %s", key)
	}
	if key != k.ArtifactKey("hash123", base) {
		t.Error("ArtifactKey should be deterministic")
	}

	variants := []ArtifactKeyOpts{
		{Format: "text", MaxDepth: 3},
		{Format: "html", MaxDepth: 4},
		{Format: "html", MaxDepth: 3, Expand: true},
		{Format: "html", MaxDepth: 3, HTML: true},
	}
	for _, v := range variants {
		if k.ArtifactKey("hash123", v) == key {
			t.Errorf("options %+v should change the key", v)
		}
	}
	if k.ArtifactKey("hash456", base) == key {
		t.Error("input hash should change the key")
	}

	resp := k.ResponseKey("https://example.com/data.json")
	if !strings.HasPrefix(resp, "response:") {
		t.Errorf("ResponseKey should be prefixed: %s", resp)
	}
	if resp == k.ResponseKey("https://example.com/other.json") {
		t.Error("URL should change the response key")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "site:")
	opts := ArtifactKeyOpts{Format: "svg"}

	got := scoped.ArtifactKey("h", opts)
	if got != "site:"+inner.ArtifactKey("h", opts) {
		t.Errorf("ScopedKeyer ArtifactKey unexpected: %s", got)
	}

	if key := NewScopedKeyer(nil, "p:").ArtifactKey("h", opts); !strings.HasPrefix(key, "p:artifact:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
	if got := scoped.ResponseKey("u"); got != "site:"+inner.ResponseKey("u") {
		t.Errorf("ScopedKeyer ResponseKey unexpected: %s", got)
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("NewRedisCache() error = %v, want ErrUnavailable", err)
	}

	if _, err := NewRedisCache(ctx, RedisConfig{}); err == nil {
		t.Error("NewRedisCache without address should fail")
	}
}

func TestTransient(t *testing.T) {
	if transient(nil) != nil {
		t.Error("transient(nil) should return nil")
	}
	plain := errors.New("WRONGTYPE")
	if err := transient(plain); err != plain || isTransient(err) {
		t.Errorf("command error should pass through: %v", err)
	}

	err := transient(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})
	if !isTransient(err) {
		t.Error("network error should be transient")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("network error should wrap ErrUnavailable: %v", err)
	}
}

func TestRedisRetry(t *testing.T) {
	ctx := context.Background()
	c := &RedisCache{attempts: 3, delay: time.Millisecond}
	down := &transientError{err: ErrUnavailable}
	permanent := errors.New("permanent")

	tests := []struct {
		name      string
		failures  int
		failWith  error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"recovers", 2, down, 3, nil},
		{"exhausted", 5, down, 3, ErrUnavailable},
		{"permanent", 5, permanent, 1, permanent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := c.do(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("err = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRedisRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &RedisCache{attempts: 3, delay: time.Hour}
	err := c.do(ctx, func() error {
		return &transientError{err: ErrUnavailable}
	})
	if err != context.Canceled {
		t.Errorf("do() error = %v, want context.Canceled", err)
	}
}

func TestKeyKind(t *testing.T) {
	k := NewDefaultKeyer()
	tests := []struct {
		key  string
		want string
	}{
		{k.ArtifactKey("h", ArtifactKeyOpts{Format: "html"}), KindArtifact},
		{k.ResponseKey("https://example.com/a.json"), KindResponse},
		{NewScopedKeyer(nil, "site:").ArtifactKey("h", ArtifactKeyOpts{}), KindArtifact},
		{NewScopedKeyer(nil, "site:").ResponseKey("u"), KindResponse},
		{"plain", KindOther},
		{"session:abc", KindOther},
	}
	for _, tt := range tests {
		if got := KeyKind(tt.key); got != tt.want {
			t.Errorf("KeyKind(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestFileCacheLayout(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	k := NewDefaultKeyer()
	keys := []string{
		k.ArtifactKey("h", ArtifactKeyOpts{Format: "html"}),
		k.ArtifactKey("h", ArtifactKeyOpts{Format: "text"}),
		k.ResponseKey("https://example.com/a.json"),
		"loose",
	}
	for _, key := range keys {
		if err := c.Set(ctx, key, []byte("x"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if rel, _ := filepath.Rel(c.Dir(), c.path(keys[2])); !strings.HasPrefix(rel, KindResponse+string(filepath.Separator)) {
		t.Errorf("response entry stored at %s", rel)
	}

	stats, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := map[string]int{KindArtifact: 2, KindResponse: 1, KindOther: 1}
	for kind, n := range want {
		if stats[kind] != n {
			t.Errorf("Stats()[%s] = %d, want %d", kind, stats[kind], n)
		}
	}
	if len(stats) != len(want) {
		t.Errorf("Stats() = %v", stats)
	}
}

func TestFileCacheKeyMismatch(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "a", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path("b")), 0755); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(c.path("a"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("b"), raw, 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "b"); hit || err != nil {
		t.Errorf("entry written for another key: hit %v, err %v", hit, err)
	}
}
