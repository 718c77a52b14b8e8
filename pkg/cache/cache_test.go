package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

type searchParams struct {
	Objects int    `json:"objects"`
	Period  string `json:"period"`
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	sk1 := k.SearchKey("gen", searchParams{3, "3"})
	sk2 := k.SearchKey("gen", searchParams{3, "4"})
	if sk1 == sk2 {
		t.Error("different configs should produce different keys")
	}
	if sk1 != k.SearchKey("gen", searchParams{3, "3"}) {
		t.Error("SearchKey should be deterministic")
	}
	if !strings.HasPrefix(sk1, "search:gen:") {
		t.Errorf("SearchKey unexpected: %s", sk1)
	}
	if k.SearchKey("trans", searchParams{3, "3"}) == sk1 {
		t.Error("the search kind should be part of the key")
	}

	gk1 := k.GraphKey("441", GraphKeyOpts{Format: "svg"})
	gk2 := k.GraphKey("441", GraphKeyOpts{Format: "dot"})
	if gk1 == gk2 {
		t.Error("different GraphKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(gk1, "graph:") {
		t.Errorf("GraphKey unexpected: %s", gk1)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "team:")
	plain := NewDefaultKeyer()

	if got, want := scoped.SearchKey("gen", 1), "team:"+plain.SearchKey("gen", 1); got != want {
		t.Errorf("SearchKey = %s, want %s", got, want)
	}
	if got := scoped.GraphKey("3", GraphKeyOpts{}); !strings.HasPrefix(got, "team:graph:") {
		t.Errorf("GraphKey should be prefixed: %s", got)
	}

	// nil inner falls back to the default keyer
	if got := NewScopedKeyer(nil, "p:").SearchKey("gen", 1); got != "p:"+plain.SearchKey("gen", 1) {
		t.Errorf("unexpected key with nil inner: %s", got)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("empty cache hit")
	}
	if err := c.Set(ctx, "a", []byte("441\n"), time.Hour); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "441\n" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry hit")
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}

	_ = c.Set(ctx, "b", []byte("b"), 0)
	_ = c.Set(ctx, "c", []byte("c"), 0)
	n, err := c.(Clearer).Clear(ctx)
	if err != nil || n != 2 {
		t.Errorf("Clear = %d, %v; want 2", n, err)
	}
	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("entry survived Clear")
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("wrapped error should unwrap")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	retryDelay = time.Millisecond
	ctx := context.Background()

	calls := 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err=%v calls=%d", err, calls)
	}

	fatal := errors.New("fatal")
	calls = 0
	err := RetryWithBackoff(ctx, func() error { calls++; return fatal })
	if err != fatal || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error { calls++; return Retryable(ErrNetwork) })
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err=%v calls=%d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
