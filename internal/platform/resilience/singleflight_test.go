package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFlightSharesOneCall(t *testing.T) {
	var f Flight[int]
	var runs atomic.Int32
	release := make(chan struct{})

	const callers = 8
	var wg sync.WaitGroup
	results := make([]int, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _, err := f.Do(context.Background(), "match-42", func() (int, error) {
				runs.Add(1)
				<-release
				return 11, nil
			})
			if err != nil {
				t.Errorf("caller %d: %v", i, err)
			}
			results[i] = v
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if runs.Load() != 1 {
		t.Fatalf("expected a single run, got %d", runs.Load())
	}
	for i, v := range results {
		if v != 11 {
			t.Fatalf("caller %d got %d", i, v)
		}
	}
}

func TestFlightCallerCanGiveUp(t *testing.T) {
	var f Flight[string]
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, _, err := f.Do(ctx, "slow", func() (string, error) {
		<-release
		return "late", nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestFlightReturnsZeroOnError(t *testing.T) {
	var f Flight[[]string]
	boom := errors.New("boom")
	got, _, err := f.Do(context.Background(), "k", func() ([]string, error) { return []string{"x"}, boom })
	if !errors.Is(err, boom) || got != nil {
		t.Fatalf("expected zero value and boom, got %v %v", got, err)
	}
}
