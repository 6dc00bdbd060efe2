package ports

import (
	"context"
	"time"
)

// CooldownHandler tracks named cooldowns for operations.
// The engine passes it through to operations unchanged; whether the backing
// store is per-process memory or shared (e.g. Redis) is the host's choice.
type CooldownHandler interface {
	// Active reports whether the cooldown identified by key is still running.
	Active(ctx context.Context, key string) (bool, error)

	// Arm starts (or restarts) the cooldown identified by key for d.
	Arm(ctx context.Context, key string, d time.Duration) error
}
