package resilience

import (
	"errors"
	"time"
)

// BreakerConfig is read from the GATEWAY_CIRCUIT_* variables.
type BreakerConfig struct {
	Enabled bool
	// Threshold is the number of consecutive failures that opens the breaker.
	Threshold int
	// Cooldown is how long an open breaker rejects calls before probing.
	Cooldown time.Duration
	// Probes is how many half-open calls must succeed to close again.
	Probes int
}

const (
	defaultThreshold = 5
	defaultCooldown  = 15 * time.Second
	defaultProbes    = 2
)

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.Threshold < 1 {
		c.Threshold = defaultThreshold
	}
	if c.Cooldown <= 0 {
		c.Cooldown = defaultCooldown
	}
	if c.Probes < 1 {
		c.Probes = defaultProbes
	}
	return c
}

func (c BreakerConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	var errs []error
	if c.Threshold < 1 {
		errs = append(errs, errors.New("breaker threshold must be at least 1"))
	}
	if c.Cooldown <= 0 {
		errs = append(errs, errors.New("breaker cooldown must be positive"))
	}
	if c.Probes < 1 {
		errs = append(errs, errors.New("breaker probes must be at least 1"))
	}
	return errors.Join(errs...)
}
