package cache

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bitgraph-dev/bitgraph/pkg/graph"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "absent"); err != nil || hit {
		t.Fatalf("Get(absent) = hit %v, err %v; want miss", hit, err)
	}

	want := []byte("score vector")
	if err := c.Set(ctx, "k", want, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v; want hit", hit, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get = %q, want %q", got, want)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of absent key should not error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("expired entry: hit %v, err %v; want miss", hit, err)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("NullCache.Get = hit %v, err %v; want miss", hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h2 := Hash([]byte("hello")); h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h3 := Hash([]byte("world")); h1 == h3 {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
}

func TestGraphHash(t *testing.T) {
	build := func(edges [][2]int) *graph.Graph {
		b := graph.NewBuilder(3)
		for _, e := range edges {
			if err := b.AddEdge(e[0], e[1]); err != nil {
				t.Fatalf("AddEdge error: %v", err)
			}
		}
		return b.Build()
	}

	g1 := build([][2]int{{0, 1}, {1, 2}})
	g2 := build([][2]int{{1, 2}, {0, 1}})
	g3 := build([][2]int{{0, 2}})

	h1, err := GraphHash(g1)
	if err != nil {
		t.Fatalf("GraphHash error: %v", err)
	}
	h2, err := GraphHash(g2)
	if err != nil {
		t.Fatalf("GraphHash error: %v", err)
	}
	if h1 != h2 {
		t.Error("structurally equal graphs should hash equal")
	}
	if h3, _ := GraphHash(g3); h1 == h3 {
		t.Error("different graphs should hash differently")
	}
}

func TestKeys(t *testing.T) {
	if ScoreKey("h", "pagerank") == ScoreKey("h", "eigenvector") {
		t.Error("ScoreKey should vary with algorithm")
	}
	if ScoreKey("h1", "pagerank") == ScoreKey("h2", "pagerank") {
		t.Error("ScoreKey should vary with graph hash")
	}
	if RenderKey("h", "dot") == RenderKey("h", "svg") {
		t.Error("RenderKey should vary with format")
	}
	if PathsKey("h", 0, 1, false) == PathsKey("h", 0, 1, true) {
		t.Error("PathsKey should vary with directedness")
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	base := errors.New("connection refused")
	err := Retryable(base)
	if !IsRetryable(err) {
		t.Error("IsRetryable should be true for wrapped error")
	}
	if err.Error() != base.Error() {
		t.Errorf("message not preserved: %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error should unwrap to base")
	}
	if IsRetryable(base) {
		t.Error("IsRetryable should be false for plain error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	if err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	}); err != nil {
		t.Errorf("error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	plain := errors.New("bad input")
	calls = 0
	if err := RetryWithBackoff(ctx, func() error {
		calls++
		return plain
	}); err != plain {
		t.Errorf("error = %v, want %v", err, plain)
	}
	if calls != 1 {
		t.Errorf("non-retryable: calls = %d, want 1", calls)
	}

	calls = 0
	if err := RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errors.New("transient"))
		}
		return nil
	}); err != nil {
		t.Errorf("error: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errors.New("transient"))
	})
	if err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
