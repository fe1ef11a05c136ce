package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetOrLoadCollapsesConcurrentLoads(t *testing.T) {
	store := NewStore[[]string](time.Minute)
	var loads atomic.Int32
	gate := make(chan struct{})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			roster, err := store.GetOrLoad(context.Background(), "roster:fc-north", func(context.Context) ([]string, error) {
				loads.Add(1)
				<-gate
				return []string{"a@club.test", "b@club.test"}, nil
			})
			if err != nil || len(roster) != 2 {
				t.Errorf("unexpected roster %v err=%v", roster, err)
			}
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()

	if loads.Load() != 1 {
		t.Fatalf("expected one load, got %d", loads.Load())
	}
	if store.Len() != 1 {
		t.Fatalf("expected the roster to be cached, len=%d", store.Len())
	}
}

func TestEntriesExpire(t *testing.T) {
	store := NewStore[int](30 * time.Second)
	now := time.Date(2026, 4, 2, 18, 30, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	loads := 0
	load := func(context.Context) (int, error) { loads++; return loads, nil }

	if v, _ := store.GetOrLoad(ctx, "k", load); v != 1 {
		t.Fatalf("first load = %d", v)
	}
	now = now.Add(10 * time.Second)
	if v, _ := store.GetOrLoad(ctx, "k", load); v != 1 {
		t.Fatalf("expected cached value, got %d", v)
	}
	now = now.Add(30 * time.Second)
	if v, _ := store.GetOrLoad(ctx, "k", load); v != 2 {
		t.Fatalf("expected reload after expiry, got %d", v)
	}
}

func TestLoadErrorsAreNotCached(t *testing.T) {
	store := NewStore[string](time.Minute)
	boom := errors.New("db down")
	attempt := 0
	load := func(context.Context) (string, error) {
		attempt++
		if attempt == 1 {
			return "", boom
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", load); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if v, err := store.GetOrLoad(context.Background(), "k", load); err != nil || v != "ok" {
		t.Fatalf("expected a fresh load, got %q %v", v, err)
	}
}

func TestDeletePrefixKeepsOtherKeys(t *testing.T) {
	store := NewStore[int](0)
	ctx := context.Background()
	for key, v := range map[string]int{"lineup:m1:home": 1, "lineup:m1:away": 2, "lineup:m2:home": 3} {
		_, _ = store.GetOrLoad(ctx, key, func(context.Context) (int, error) { return v, nil })
	}

	store.DeletePrefix(ctx, "lineup:m1:")
	if store.Len() != 1 {
		t.Fatalf("expected one entry left, got %d", store.Len())
	}
}

func TestInvalidationDuringLoadSkipsStore(t *testing.T) {
	store := NewStore[string](time.Minute)
	ctx := context.Background()
	started := make(chan struct{})
	finish := make(chan struct{})

	done := make(chan string)
	go func() {
		v, _ := store.GetOrLoad(ctx, "lineup:m1:home", func(context.Context) (string, error) {
			close(started)
			<-finish
			return "stale", nil
		})
		done <- v
	}()

	<-started
	store.DeletePrefix(ctx, "lineup:m1:")
	close(finish)

	if v := <-done; v != "stale" {
		t.Fatalf("caller should still get its value, got %q", v)
	}
	if store.Len() != 0 {
		t.Fatalf("stale load must not be cached")
	}
}

func TestEmptyKeyBypassesCache(t *testing.T) {
	store := NewStore[int](time.Minute)
	calls := 0
	for range 3 {
		_, _ = store.GetOrLoad(context.Background(), "", func(context.Context) (int, error) { calls++; return calls, nil })
	}
	if calls != 3 || store.Len() != 0 {
		t.Fatalf("empty key must always load, calls=%d len=%d", calls, store.Len())
	}
}
