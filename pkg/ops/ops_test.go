package ops

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/riposte/pkg/adapters/memory"
	"github.com/aretw0/riposte/pkg/domain"
	"github.com/aretw0/riposte/pkg/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLiving is a test double for ports.LivingEntity.
type fakeLiving struct {
	id     string
	health float64
	sounds []string
}

func (f *fakeLiving) ID() string            { return f.id }
func (f *fakeLiving) Health() float64       { return f.health }
func (f *fakeLiving) SetHealth(v float64)   { f.health = v }
func (f *fakeLiving) PlaySound(name string) { f.sounds = append(f.sounds, name) }

func newInv(living *fakeLiving) *domain.Invocation {
	inv := &domain.Invocation{
		Script: "test",
		State:  domain.NewInteractionState(),
	}
	if living != nil {
		inv.Entity = living
		inv.Living = living
	}
	return inv
}

func TestSound(t *testing.T) {
	op := &Sound{Name: "swing"}

	t.Run("tick emits", func(t *testing.T) {
		living := &fakeLiving{id: "e1"}
		require.NoError(t, op.Tick(context.Background(), newInv(living)))
		assert.Equal(t, []string{"swing"}, living.sounds)
	})

	t.Run("simulate does not emit", func(t *testing.T) {
		living := &fakeLiving{id: "e1"}
		require.NoError(t, op.SimulateTick(context.Background(), newInv(living)))
		assert.Empty(t, living.sounds)
	})

	t.Run("missing entity fails", func(t *testing.T) {
		assert.Error(t, op.Tick(context.Background(), newInv(nil)))
	})
}

func TestDamageAndHeal(t *testing.T) {
	living := &fakeLiving{id: "e1", health: 20}
	inv := newInv(living)
	ctx := context.Background()

	require.NoError(t, (&Damage{Amount: 6}).Tick(ctx, inv))
	assert.Equal(t, 14.0, living.health)

	require.NoError(t, (&Heal{Amount: 2}).Tick(ctx, inv))
	assert.Equal(t, 16.0, living.health)

	t.Run("simulate leaves health untouched", func(t *testing.T) {
		require.NoError(t, (&Damage{Amount: 6}).SimulateTick(ctx, inv))
		require.NoError(t, (&Heal{Amount: 6}).SimulateTick(ctx, inv))
		assert.Equal(t, 16.0, living.health)
	})
}

func TestAwait(t *testing.T) {
	op := &Await{Source: domain.WaitClient}
	assert.Equal(t, domain.WaitClient, op.WaitForDataFrom())
	require.NoError(t, op.Tick(context.Background(), newInv(nil)))
}

func TestTallyAndBranch(t *testing.T) {
	b := script.NewBuilder()
	target := b.CreateLabel() // index 0
	b.AddOperation(&Tally{Key: "combo"})
	branch := &Branch{Key: "combo", AtLeast: 2, To: target}
	b.AddOperation(branch)
	_, err := b.Build()
	require.NoError(t, err)

	inv := newInv(nil)
	ctx := context.Background()

	require.NoError(t, (&Tally{Key: "combo"}).Tick(ctx, inv))
	require.NoError(t, branch.Tick(ctx, inv))
	assert.False(t, inv.State.TakeRedirect(), "below threshold: no redirect")

	require.NoError(t, (&Tally{Key: "combo"}).Tick(ctx, inv))
	require.NoError(t, branch.Tick(ctx, inv))
	assert.True(t, inv.State.TakeRedirect())
	assert.Equal(t, 0, inv.State.Counter)
}

func TestCooldownGate(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(0, 0)
	cds := memory.NewCooldowns(memory.WithClock(func() time.Time { return now }))

	withCooldowns := func() *domain.Invocation {
		inv := newInv(&fakeLiving{id: "e1"})
		inv.Cooldowns = cds
		return inv
	}

	t.Run("cold gate arms and passes", func(t *testing.T) {
		gate := &CooldownGate{Key: "slam", Duration: 10 * time.Second}
		inv := withCooldowns()

		require.NoError(t, gate.Tick(ctx, inv))
		assert.False(t, inv.State.TakeRedirect())

		active, err := cds.Active(ctx, "slam")
		require.NoError(t, err)
		assert.True(t, active)
	})

	t.Run("hot gate without fallback fails the interaction", func(t *testing.T) {
		gate := &CooldownGate{Key: "slam", Duration: 10 * time.Second}
		err := gate.Tick(ctx, withCooldowns())
		assert.ErrorIs(t, err, domain.ErrOnCooldown)
	})

	t.Run("hot gate with fallback redirects", func(t *testing.T) {
		b := script.NewBuilder()
		fallback := b.CreateLabel()
		gate := &CooldownGate{Key: "slam", Duration: 10 * time.Second, OnCooldown: fallback}
		b.AddOperation(gate)
		_, err := b.Build()
		require.NoError(t, err)

		inv := withCooldowns()
		require.NoError(t, gate.Tick(ctx, inv))
		assert.True(t, inv.State.TakeRedirect())
		assert.Equal(t, fallback.Index(), inv.State.Counter)
	})

	t.Run("simulate never arms", func(t *testing.T) {
		now = now.Add(time.Minute) // everything expired
		gate := &CooldownGate{Key: "poke", Duration: 10 * time.Second}

		require.NoError(t, gate.SimulateTick(ctx, withCooldowns()))
		active, err := cds.Active(ctx, "poke")
		require.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("missing handler fails", func(t *testing.T) {
		gate := &CooldownGate{Key: "slam", Duration: time.Second}
		assert.Error(t, gate.Tick(ctx, newInv(nil)))
	})
}
