// Package redis provides a CooldownHandler backed by Redis, letting
// cooldowns survive process restarts and be shared across server instances.
package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Cooldowns implements ports.CooldownHandler on Redis key expiry: arming a
// cooldown is SET with a TTL, checking it is an existence probe. Expiry is
// handled entirely by Redis.
type Cooldowns struct {
	client *backend.Client
	prefix string
}

// NewCooldowns creates a Redis-backed cooldown handler. Keys are stored
// under the given prefix; empty defaults to "riposte:cooldown:".
func NewCooldowns(client *backend.Client, prefix string) *Cooldowns {
	if prefix == "" {
		prefix = "riposte:cooldown:"
	}
	return &Cooldowns{
		client: client,
		prefix: prefix,
	}
}

// Active reports whether the cooldown for key is still running.
func (c *Cooldowns) Active(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("redis error checking cooldown: %w", err)
	}
	return n > 0, nil
}

// Arm starts the cooldown for key. A non-positive duration clears it
// instead, which lets admin tooling reset cooldowns.
func (c *Cooldowns) Arm(ctx context.Context, key string, d time.Duration) error {
	if d <= 0 {
		if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
			return fmt.Errorf("redis error clearing cooldown: %w", err)
		}
		return nil
	}
	if err := c.client.Set(ctx, c.prefix+key, time.Now().UnixNano(), d).Err(); err != nil {
		return fmt.Errorf("redis error arming cooldown: %w", err)
	}
	return nil
}

// Remaining returns how long the cooldown for key has left, zero when it is
// not armed.
func (c *Cooldowns) Remaining(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := c.client.PTTL(ctx, c.prefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis error reading cooldown ttl: %w", err)
	}
	if ttl < 0 {
		// -1 means no expiry, -2 means no key; neither counts as armed.
		return 0, nil
	}
	return ttl, nil
}
