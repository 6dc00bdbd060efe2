package memory

import (
	"context"
	"sync"
	"time"
)

// Cooldowns implements ports.CooldownHandler with an in-process map.
// Safe for concurrent use.
type Cooldowns struct {
	mu      sync.Mutex
	expires map[string]time.Time
	clock   func() time.Time
}

// CooldownOption configures the Cooldowns handler.
type CooldownOption func(*Cooldowns)

// WithClock injects a time source, used by tests to advance time.
func WithClock(clock func() time.Time) CooldownOption {
	return func(c *Cooldowns) {
		c.clock = clock
	}
}

// NewCooldowns creates an empty in-memory cooldown handler.
func NewCooldowns(opts ...CooldownOption) *Cooldowns {
	c := &Cooldowns{
		expires: make(map[string]time.Time),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Active reports whether the cooldown is still running. Expired entries are
// cleaned up lazily.
func (c *Cooldowns) Active(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	until, ok := c.expires[key]
	if !ok {
		return false, nil
	}
	if c.clock().Before(until) {
		return true, nil
	}
	delete(c.expires, key)
	return false, nil
}

// Arm starts (or restarts) the cooldown for d.
func (c *Cooldowns) Arm(ctx context.Context, key string, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expires[key] = c.clock().Add(d)
	return nil
}
