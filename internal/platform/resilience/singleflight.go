package resilience

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Flight collapses concurrent calls that share a key into one.
type Flight[T any] struct {
	group singleflight.Group
}

// Do waits for the shared call or for ctx, whichever ends first. A caller
// that gives up early does not cancel the call for the others.
func (f *Flight[T]) Do(ctx context.Context, key string, fn func() (T, error)) (T, bool, error) {
	ch := f.group.DoChan(key, func() (any, error) {
		return fn()
	})
	var zero T
	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Shared, res.Err
		}
		value, _ := res.Val.(T)
		return value, res.Shared, nil
	}
}

func (f *Flight[T]) Forget(key string) {
	f.group.Forget(key)
}
