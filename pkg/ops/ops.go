package ops

import (
	"context"
	"fmt"

	"github.com/aretw0/riposte/pkg/domain"
)

// leaf provides the defaults shared by built-in operations: no decoration
// and no suspension.
type leaf struct{}

func (leaf) WaitForDataFrom() domain.WaitSource { return domain.WaitNone }
func (leaf) Rules() *domain.Rules               { return nil }
func (leaf) Tags() domain.Tags                  { return nil }

// Sound emits a named sound effect at the performing entity.
type Sound struct {
	leaf
	Name string
}

func (o *Sound) Tick(ctx context.Context, inv *domain.Invocation) error {
	if inv.Living == nil {
		return fmt.Errorf("sound %q: no living entity", o.Name)
	}
	inv.Living.PlaySound(o.Name)
	return nil
}

// SimulateTick is a no-op: the effect is externally visible and must not be
// committed twice.
func (o *Sound) SimulateTick(ctx context.Context, inv *domain.Invocation) error { return nil }

// Damage subtracts a fixed amount from the performing entity's target
// surface. Used by self-inflicted costs and recoil steps.
type Damage struct {
	leaf
	Amount float64
}

func (o *Damage) Tick(ctx context.Context, inv *domain.Invocation) error {
	if inv.Living == nil {
		return fmt.Errorf("damage: no living entity")
	}
	inv.Living.SetHealth(inv.Living.Health() - o.Amount)
	return nil
}

func (o *Damage) SimulateTick(ctx context.Context, inv *domain.Invocation) error { return nil }

// Heal adds a fixed amount to the performing entity's health.
type Heal struct {
	leaf
	Amount float64
}

func (o *Heal) Tick(ctx context.Context, inv *domain.Invocation) error {
	if inv.Living == nil {
		return fmt.Errorf("heal: no living entity")
	}
	inv.Living.SetHealth(inv.Living.Health() + o.Amount)
	return nil
}

func (o *Heal) SimulateTick(ctx context.Context, inv *domain.Invocation) error { return nil }

// Await is a pure suspension point: it does nothing and declares a wait on
// its source.
type Await struct {
	leaf
	Source domain.WaitSource
}

func (o *Await) Tick(ctx context.Context, inv *domain.Invocation) error         { return nil }
func (o *Await) SimulateTick(ctx context.Context, inv *domain.Invocation) error { return nil }

func (o *Await) WaitForDataFrom() domain.WaitSource { return o.Source }

// Tally bumps a named scratch counter on the interaction state. Counters
// only live in the state, so the simulated path is identical.
type Tally struct {
	leaf
	Key string
}

func (o *Tally) Tick(ctx context.Context, inv *domain.Invocation) error {
	inv.State.Bump(o.Key)
	return nil
}

func (o *Tally) SimulateTick(ctx context.Context, inv *domain.Invocation) error {
	return o.Tick(ctx, inv)
}
