package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State uint8

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// Breaker stops calling the match service once it keeps failing. A nil
// *Breaker is valid and lets every call through.
type Breaker struct {
	cfg       BreakerConfig
	isFailure func(error) bool
	onChange  func(from, to State)
	now       func() time.Time

	mu        sync.Mutex
	state     State
	failures  int
	openUntil time.Time
	inFlight  int
	succeeded int
}

type BreakerOption func(*Breaker)

// WithFailureFilter decides which errors count against the breaker. By
// default every error except context cancellation does.
func WithFailureFilter(fn func(error) bool) BreakerOption {
	return func(b *Breaker) { b.isFailure = fn }
}

// WithStateChange registers a hook called after each transition, outside
// the breaker lock.
func WithStateChange(fn func(from, to State)) BreakerOption {
	return func(b *Breaker) { b.onChange = fn }
}

// NewBreaker returns nil when cfg is disabled.
func NewBreaker(cfg BreakerConfig, opts ...BreakerOption) *Breaker {
	if !cfg.Enabled {
		return nil
	}
	b := &Breaker{
		cfg:       cfg.withDefaults(),
		isFailure: countsAsFailure,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func countsAsFailure(err error) bool {
	return !errors.Is(err, context.Canceled)
}

// Do runs fn unless the breaker is open. The outcome of fn is recorded
// and its error returned unchanged.
func (b *Breaker) Do(ctx context.Context, fn func(context.Context) error) error {
	if b == nil {
		return fn(ctx)
	}
	if err := b.acquire(); err != nil {
		return err
	}
	err := fn(ctx)
	b.release(err != nil && b.isFailure(err))
	return err
}

func (b *Breaker) State() State {
	if b == nil {
		return StateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen && !b.now().Before(b.openUntil) {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) acquire() error {
	b.mu.Lock()
	from := b.state
	if b.state == StateOpen {
		if b.now().Before(b.openUntil) {
			b.mu.Unlock()
			return ErrCircuitOpen
		}
		b.enter(StateHalfOpen)
	}
	if b.state == StateHalfOpen {
		if b.inFlight >= b.cfg.Probes {
			b.mu.Unlock()
			b.notify(from, StateHalfOpen)
			return ErrCircuitOpen
		}
		b.inFlight++
	}
	to := b.state
	b.mu.Unlock()
	b.notify(from, to)
	return nil
}

func (b *Breaker) release(failed bool) {
	b.mu.Lock()
	from := b.state
	switch b.state {
	case StateClosed:
		if !failed {
			b.failures = 0
			break
		}
		b.failures++
		if b.failures >= b.cfg.Threshold {
			b.enter(StateOpen)
		}
	case StateHalfOpen:
		if b.inFlight > 0 {
			b.inFlight--
		}
		if failed {
			b.enter(StateOpen)
			break
		}
		b.succeeded++
		if b.succeeded >= b.cfg.Probes && b.inFlight == 0 {
			b.enter(StateClosed)
		}
	case StateOpen:
		// A call admitted before the breaker opened finished late.
		if failed {
			b.openUntil = b.now().Add(b.cfg.Cooldown)
		}
	}
	to := b.state
	b.mu.Unlock()
	b.notify(from, to)
}

// enter must be called with mu held.
func (b *Breaker) enter(to State) {
	b.state = to
	b.inFlight = 0
	b.succeeded = 0
	switch to {
	case StateClosed:
		b.failures = 0
		b.openUntil = time.Time{}
	case StateOpen:
		b.openUntil = b.now().Add(b.cfg.Cooldown)
	}
}

func (b *Breaker) notify(from, to State) {
	if b.onChange != nil && from != to {
		b.onChange(from, to)
	}
}
