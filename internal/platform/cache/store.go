package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/club-lineup/internal/platform/resilience"
)

var errNoLoader = errors.New("cache: loader is required")

type item[V any] struct {
	value   V
	expires time.Time
}

// Store is a read-through TTL cache for repository reads. Loads of the
// same key are collapsed. A ttl of zero never expires entries.
//
// Invalidation bumps a generation counter; a load that started before the
// bump returns its value to the caller but does not store it.
type Store[V any] struct {
	ttl    time.Duration
	now    func() time.Time
	flight resilience.Flight[V]

	mu    sync.Mutex
	items map[string]item[V]
	gen   uint64
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{ttl: ttl, now: time.Now, items: map[string]item[V]{}}
}

func (s *Store[V]) lookup(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[key]
	if ok && s.ttl > 0 && !s.now().Before(it.expires) {
		delete(s.items, key)
		ok = false
	}
	return it.value, ok
}

func (s *Store[V]) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// storeIf writes value unless the store was invalidated after gen.
func (s *Store[V]) storeIf(gen uint64, key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	var expires time.Time
	if s.ttl > 0 {
		expires = s.now().Add(s.ttl)
	}
	s.items[key] = item[V]{value: value, expires: expires}
}

// GetOrLoad serves key from the cache or runs load. Errors are never
// cached. An empty key bypasses the cache.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	if load == nil {
		var zero V
		return zero, errNoLoader
	}
	if key == "" {
		return load(ctx)
	}
	if v, ok := s.lookup(key); ok {
		return v, nil
	}

	v, _, err := s.flight.Do(ctx, key, func() (V, error) {
		gen := s.generation()
		// The shared load must outlive the first caller's cancellation.
		loaded, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return loaded, err
		}
		s.storeIf(gen, key, loaded)
		return loaded, nil
	})
	return v, err
}

// DeletePrefix drops every key starting with prefix and stops in-flight
// loads from caching what they read.
func (s *Store[V]) DeletePrefix(_ context.Context, prefix string) {
	s.mu.Lock()
	s.gen++
	var dropped []string
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
			dropped = append(dropped, key)
		}
	}
	s.mu.Unlock()

	for _, key := range dropped {
		s.flight.Forget(key)
	}
}

func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
