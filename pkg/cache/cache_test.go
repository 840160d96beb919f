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

	// Get always returns miss
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

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// TreeKey should include every shaping option in the hash
	tk1 := k.TreeKey(TreeKeyOpts{Start: 1, End: 10, Policy: "zero", Width: 800})
	tk2 := k.TreeKey(TreeKeyOpts{Start: 1, End: 10, Policy: "odd", Width: 800})
	if tk1 == tk2 {
		t.Error("Different TreeKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(tk1, "tree:") {
		t.Errorf("TreeKey prefix unexpected: %s", tk1)
	}
	if tk1 != k.TreeKey(TreeKeyOpts{Start: 1, End: 10, Policy: "zero", Width: 800}) {
		t.Error("TreeKey should be deterministic")
	}

	// ArtifactKey
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Nodes: "value"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Nodes: "value"})
	ak3 := k.ArtifactKey("hash456", ArtifactKeyOpts{Format: "svg", Nodes: "value"})
	if ak1 == ak2 || ak1 == ak3 {
		t.Error("Different artifact inputs should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "v1.2.0:")

	opts := TreeKeyOpts{Start: 2, End: 9}
	if got, want := scoped.TreeKey(opts), "v1.2.0:"+inner.TreeKey(opts); got != want {
		t.Errorf("ScopedKeyer TreeKey = %s, want %s", got, want)
	}

	ak := scoped.ArtifactKey("h", ArtifactKeyOpts{Format: "svg"})
	if !strings.HasPrefix(ak, "v1.2.0:artifact:") {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", ak)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.TreeKey(TreeKeyOpts{})
	if want := "prefix:" + NewDefaultKeyer().TreeKey(TreeKeyOpts{}); key != want {
		t.Errorf("Unexpected key with nil inner: %s", key)
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
		t.Errorf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "a", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get(a) = %q, %v, %v", data, hit, err)
	}

	// Entries are sharded by the first two hex digits of the key hash.
	h := Hash([]byte("a"))
	if _, err := os.Stat(filepath.Join(c.Dir(), h[:2], h[2:]+".json")); err != nil {
		t.Errorf("entry not at sharded path: %v", err)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}

	// Zero TTL never expires.
	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero TTL entry should hit")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v, want clean miss", hit, err)
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
	for _, k := range []string{"a", "b", "c", "d"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 4 {
		t.Errorf("Clear removed %d entries, want 4", n)
	}
	left, _ := os.ReadDir(c.Dir())
	if len(left) != 0 {
		t.Errorf("%d shard directories left after Clear", len(left))
	}

	var _ Clearer = c
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("PRIMETREE_TEST_REDIS")
	if addr == "" {
		t.Skip("PRIMETREE_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "primetree-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	if _, err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
	if n, err := c.Clear(ctx); err != nil || n != 1 {
		t.Errorf("Clear = %d, %v, want 1", n, err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestNewRedisCacheRequiresAddr(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), RedisConfig{}); err == nil {
		t.Error("NewRedisCache without address should fail")
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(ErrClosed) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	defer func(d time.Duration) { retryBaseDelay = d }(retryBaseDelay)
	retryBaseDelay = time.Millisecond

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return ErrClosed
	})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}

	netErr := classify(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})
	if !IsRetryable(netErr) || !errors.Is(netErr, ErrNetwork) {
		t.Errorf("network failure = %v, want retryable ErrNetwork", netErr)
	}

	other := errors.New("WRONGTYPE")
	if got := classify(other); got != other || IsRetryable(got) {
		t.Errorf("server error = %v, want unchanged and not retryable", got)
	}
}
