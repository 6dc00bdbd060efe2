package ops

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/riposte/pkg/domain"
	"github.com/aretw0/riposte/pkg/script"
)

// CooldownGate consults the host's cooldown handler. When the cooldown is
// still running it redirects to the fallback label, or fails the
// interaction if the script defines none. Otherwise it arms the cooldown
// and lets execution continue.
type CooldownGate struct {
	leaf
	Key        string
	Duration   time.Duration
	OnCooldown *script.Label // optional fallback branch
}

func (o *CooldownGate) Tick(ctx context.Context, inv *domain.Invocation) error {
	active, err := o.check(ctx, inv)
	if err != nil || active {
		return err
	}
	if err := inv.Cooldowns.Arm(ctx, o.Key, o.Duration); err != nil {
		return fmt.Errorf("cooldown %q: arm: %w", o.Key, err)
	}
	return nil
}

// SimulateTick checks the gate but never arms it; arming is the externally
// visible effect the authoritative tick commits.
func (o *CooldownGate) SimulateTick(ctx context.Context, inv *domain.Invocation) error {
	_, err := o.check(ctx, inv)
	return err
}

func (o *CooldownGate) check(ctx context.Context, inv *domain.Invocation) (bool, error) {
	if inv.Cooldowns == nil {
		return false, fmt.Errorf("cooldown %q: no handler wired", o.Key)
	}
	active, err := inv.Cooldowns.Active(ctx, o.Key)
	if err != nil {
		return false, fmt.Errorf("cooldown %q: %w", o.Key, err)
	}
	if !active {
		return false, nil
	}
	if o.OnCooldown != nil {
		inv.State.Redirect(o.OnCooldown.Index())
		return true, nil
	}
	return true, domain.ErrOnCooldown
}

// TargetLabel exposes the fallback for build-time validation; nil when the
// gate has no fallback branch.
func (o *CooldownGate) TargetLabel() *script.Label { return o.OnCooldown }
