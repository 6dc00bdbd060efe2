package riposte_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/riposte"
	"github.com/aretw0/riposte/pkg/adapters/memory"
	"github.com/aretw0/riposte/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// soldier is a minimal host entity standing in for a game server's player
// or NPC handle.
type soldier struct {
	id     string
	health float64
	sounds []string
}

func (s *soldier) ID() string            { return s.id }
func (s *soldier) Health() float64       { return s.health }
func (s *soldier) SetHealth(h float64)   { s.health = h }
func (s *soldier) PlaySound(name string) { s.sounds = append(s.sounds, name) }

const chargedBoltScript = `
id: charged-bolt
kind: ability
steps:
  - op: sound
    params: {name: charge-hum}
  - op: charge
    params: {ticks: 3, done: fire}
  - label: fire
  - op: damage
    params: {amount: 12}
  - op: sound
    params: {name: bolt-release}
`

func newTestEngine(t *testing.T, scripts map[string]string, opts ...riposte.Option) *riposte.Engine {
	t.Helper()
	eng, err := riposte.New(memory.NewSource(scripts), opts...)
	require.NoError(t, err)
	return eng
}

func TestEngine_ChargedAbilityLifecycle(t *testing.T) {
	eng := newTestEngine(t, map[string]string{"charged-bolt": chargedBoltScript})
	ctx := context.Background()
	player := &soldier{id: "p1", health: 100}

	require.NoError(t, eng.Begin(ctx, player, player, nil, "charged-bolt"))

	// Tick 1: the hum plays once, then the first charge iteration suspends
	// awaiting the client.
	eng.Tick(ctx, time.Now())
	assert.Equal(t, []string{"charge-hum"}, player.sounds)
	snaps := eng.Active()
	require.Len(t, snaps, 1)
	assert.Equal(t, domain.WaitClient, snaps[0].Waiting)

	// Ticks while suspended change nothing.
	eng.Tick(ctx, time.Now())
	eng.Tick(ctx, time.Now())
	assert.Equal(t, []string{"charge-hum"}, player.sounds)
	assert.Equal(t, 100.0, player.health)

	// Two charge confirmations loop back to the next iteration.
	eng.Deliver(ctx, "p1", domain.WaitClient, nil)
	eng.Deliver(ctx, "p1", domain.WaitClient, nil)
	assert.Equal(t, []string{"charge-hum"}, player.sounds, "still charging")
	require.Len(t, eng.Active(), 1)

	// The third confirmation completes the charge and fires immediately.
	eng.Deliver(ctx, "p1", domain.WaitClient, nil)
	assert.Equal(t, []string{"charge-hum", "bolt-release"}, player.sounds)
	assert.Equal(t, 88.0, player.health)
	assert.Empty(t, eng.Active())
}

func TestEngine_LoadErrors(t *testing.T) {
	eng := newTestEngine(t, map[string]string{
		"broken":   "id: broken\nsteps:\n  - op: jump\n    to: nowhere\n",
		"imposter": "id: something-else\nsteps:\n  - op: sound\n    params: {name: x}\n",
	})

	t.Run("unknown script", func(t *testing.T) {
		_, err := eng.Load("ghost")
		require.ErrorIs(t, err, domain.ErrScriptNotFound)
	})

	t.Run("undefined label", func(t *testing.T) {
		_, err := eng.Load("broken")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nowhere")
	})

	t.Run("id mismatch", func(t *testing.T) {
		_, err := eng.Load("imposter")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "something-else")
	})
}

func TestEngine_LoadCachesPrograms(t *testing.T) {
	src := memory.NewSource(map[string]string{"charged-bolt": chargedBoltScript})
	eng, err := riposte.New(src)
	require.NoError(t, err)

	first, err := eng.Load("charged-bolt")
	require.NoError(t, err)

	// Source changes are invisible until the cache is invalidated.
	src.Put("charged-bolt", []byte("id: charged-bolt\nsteps:\n  - op: sound\n    params: {name: thud}\n"))
	again, err := eng.Load("charged-bolt")
	require.NoError(t, err)
	assert.Same(t, first, again)

	eng.Invalidate()
	fresh, err := eng.Load("charged-bolt")
	require.NoError(t, err)
	assert.NotSame(t, first, fresh)
	assert.Equal(t, 1, fresh.Program.Len())
}

func TestEngine_CancelAbandonsSuspension(t *testing.T) {
	eng := newTestEngine(t, map[string]string{"charged-bolt": chargedBoltScript})
	ctx := context.Background()
	player := &soldier{id: "p1", health: 100}

	require.NoError(t, eng.Begin(ctx, player, player, nil, "charged-bolt"))
	eng.Tick(ctx, time.Now())
	require.Len(t, eng.Active(), 1)

	assert.True(t, eng.Cancel(ctx, "p1"))
	assert.Empty(t, eng.Active())

	// The committed hum stands; a late confirmation is ignored.
	eng.Deliver(ctx, "p1", domain.WaitClient, nil)
	assert.Equal(t, []string{"charge-hum"}, player.sounds)
	assert.Equal(t, 100.0, player.health)
}

func TestEngine_HooksObserveLifecycle(t *testing.T) {
	var completes, suspends int
	eng := newTestEngine(t,
		map[string]string{"charged-bolt": chargedBoltScript},
		riposte.WithHooks(domain.LifecycleHooks{
			OnSuspend:  func(context.Context, *domain.SuspendEvent) { suspends++ },
			OnComplete: func(context.Context, *domain.EndEvent) { completes++ },
		}),
	)
	ctx := context.Background()
	player := &soldier{id: "p1", health: 100}

	require.NoError(t, eng.Begin(ctx, player, player, nil, "charged-bolt"))
	eng.Tick(ctx, time.Now())
	eng.Deliver(ctx, "p1", domain.WaitClient, nil)
	eng.Deliver(ctx, "p1", domain.WaitClient, nil)
	eng.Deliver(ctx, "p1", domain.WaitClient, nil)

	assert.Equal(t, 3, suspends)
	assert.Equal(t, 1, completes)
}
