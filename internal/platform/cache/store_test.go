package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_DeduplicatesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore(time.Hour)
	store.now = func() time.Time { return now }

	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		return calls.Add(1), nil
	}

	first, _ := store.GetOrLoad(context.Background(), "k", loader)
	now = now.Add(59 * time.Minute)
	second, _ := store.GetOrLoad(context.Background(), "k", loader)
	if first != second || calls.Load() != 1 {
		t.Fatalf("expected cached value inside ttl, first=%v second=%v calls=%d", first, second, calls.Load())
	}

	now = now.Add(2 * time.Minute)
	third, _ := store.GetOrLoad(context.Background(), "k", loader)
	if third == first || calls.Load() != 2 {
		t.Fatalf("expected reload after ttl, third=%v calls=%d", third, calls.Load())
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	errBackend := errors.New("backend down")
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return nil, errBackend
	}

	for i := 0; i < 2; i++ {
		if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, errBackend) {
			t.Fatalf("expected backend error, got %v", err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
}

func TestStore_Sweep(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "old", 1)
	now = now.Add(30 * time.Second)
	store.Set(context.Background(), "new", 2)
	now = now.Add(45 * time.Second)

	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("expected 1 removed entry, got %d", removed)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 remaining entry, got %d", store.Len())
	}
}

func TestMemory_GetOrLoad_Typed(t *testing.T) {
	t.Parallel()

	type payload struct{ Name string }
	c := NewMemory[payload](NewStore(time.Minute))

	got, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (payload, error) {
		return payload{Name: "arsenal"}, nil
	})
	if err != nil || got.Name != "arsenal" {
		t.Fatalf("unexpected result: %+v %v", got, err)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestStore_SetWithTTL_CapsAtStoreTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.SetWithTTL(context.Background(), "short", "a", 10*time.Second)
	store.SetWithTTL(context.Background(), "long", "b", time.Hour)

	now = now.Add(15 * time.Second)
	if _, ok := store.Get(context.Background(), "short"); ok {
		t.Fatalf("expected short entry to expire after its own ttl")
	}
	if _, ok := store.Get(context.Background(), "long"); !ok {
		t.Fatalf("expected long entry to still be cached")
	}

	now = now.Add(time.Minute)
	if _, ok := store.Get(context.Background(), "long"); ok {
		t.Fatalf("expected long entry to be capped at the store ttl")
	}
}
