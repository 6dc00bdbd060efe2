package interaction

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/riposte/pkg/domain"
	"github.com/aretw0/riposte/pkg/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntity struct{ id string }

func (e *fakeEntity) ID() string { return e.id }

// traceOp records each Tick into the shared trace; wait makes it a
// suspension point.
type traceOp struct {
	name  string
	wait  domain.WaitSource
	trace *[]string
}

func (o *traceOp) Tick(ctx context.Context, inv *domain.Invocation) error {
	*o.trace = append(*o.trace, o.name)
	return nil
}

func (o *traceOp) SimulateTick(ctx context.Context, inv *domain.Invocation) error {
	return o.Tick(ctx, inv)
}

func (o *traceOp) WaitForDataFrom() domain.WaitSource { return o.wait }
func (o *traceOp) Rules() *domain.Rules               { return nil }
func (o *traceOp) Tags() domain.Tags                  { return nil }

func buildProgram(t *testing.T, ops ...domain.Operation) *script.Program {
	t.Helper()
	b := script.NewBuilder()
	for _, op := range ops {
		b.AddOperation(op)
	}
	prog, err := b.Build()
	require.NoError(t, err)
	return prog
}

func TestManager_TickRunsAndRemovesFinished(t *testing.T) {
	var trace []string
	prog := buildProgram(t,
		&traceOp{name: "a", trace: &trace},
		&traceOp{name: "b", trace: &trace},
	)

	m := NewManager()
	ctx := context.Background()
	m.Begin(ctx, &fakeEntity{id: "p1"}, nil, nil, "swing", domain.KindAttack, prog)
	require.Equal(t, 1, m.Len())

	m.Tick(ctx, time.Now())
	assert.Equal(t, []string{"a", "b"}, trace)
	assert.Equal(t, 0, m.Len(), "finished interactions are dropped")
}

func TestManager_BeginReplacesExisting(t *testing.T) {
	var trace []string
	first := buildProgram(t, &traceOp{name: "first", wait: domain.WaitClient, trace: &trace})
	second := buildProgram(t, &traceOp{name: "second", trace: &trace})

	var aborted []string
	m := NewManager(WithHooks(domain.LifecycleHooks{
		OnAbort: func(_ context.Context, e *domain.EndEvent) {
			aborted = append(aborted, e.Reason)
		},
	}))
	ctx := context.Background()
	entity := &fakeEntity{id: "p1"}

	m.Begin(ctx, entity, nil, nil, "one", domain.KindAttack, first)
	m.Tick(ctx, time.Now())
	require.Equal(t, 1, m.Len(), "first interaction is suspended, not finished")

	m.Begin(ctx, entity, nil, nil, "two", domain.KindAbility, second)
	require.Equal(t, 1, m.Len())
	assert.Equal(t, []string{"replaced"}, aborted)

	m.Tick(ctx, time.Now())
	assert.Equal(t, []string{"first", "second"}, trace)
	assert.Equal(t, 0, m.Len())
}

func TestManager_DeliverResumesImmediately(t *testing.T) {
	var trace []string
	prog := buildProgram(t,
		&traceOp{name: "a", trace: &trace},
		&traceOp{name: "wait", wait: domain.WaitClient, trace: &trace},
		&traceOp{name: "b", trace: &trace},
	)

	var resumed int
	m := NewManager(WithHooks(domain.LifecycleHooks{
		OnResume: func(context.Context, *domain.ResumeEvent) { resumed++ },
	}))
	ctx := context.Background()
	m.Begin(ctx, &fakeEntity{id: "p1"}, nil, nil, "charge", domain.KindAbility, prog)

	m.Tick(ctx, time.Now())
	require.Equal(t, []string{"a", "wait"}, trace)

	// Delivery resumes without waiting for the next world tick.
	m.Deliver(ctx, "p1", domain.WaitClient, "release")
	assert.Equal(t, []string{"a", "wait", "b"}, trace)
	assert.Equal(t, 1, resumed)
	assert.Equal(t, 0, m.Len())
}

func TestManager_StaleDeliveriesIgnored(t *testing.T) {
	var trace []string
	prog := buildProgram(t,
		&traceOp{name: "wait", wait: domain.WaitClient, trace: &trace},
		&traceOp{name: "b", trace: &trace},
	)

	m := NewManager()
	ctx := context.Background()
	m.Begin(ctx, &fakeEntity{id: "p1"}, nil, nil, "charge", domain.KindAbility, prog)
	m.Tick(ctx, time.Now())
	require.Equal(t, []string{"wait"}, trace)

	t.Run("unknown entity", func(t *testing.T) {
		m.Deliver(ctx, "ghost", domain.WaitClient, nil)
		assert.Equal(t, []string{"wait"}, trace)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("wrong source", func(t *testing.T) {
		m.Deliver(ctx, "p1", domain.WaitServer, nil)
		assert.Equal(t, []string{"wait"}, trace)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("matching delivery still works afterwards", func(t *testing.T) {
		m.Deliver(ctx, "p1", domain.WaitClient, nil)
		assert.Equal(t, []string{"wait", "b"}, trace)
		assert.Equal(t, 0, m.Len())
	})

	t.Run("delivery after completion", func(t *testing.T) {
		m.Deliver(ctx, "p1", domain.WaitClient, nil)
		assert.Equal(t, []string{"wait", "b"}, trace)
	})
}

func TestManager_Cancel(t *testing.T) {
	var trace []string
	prog := buildProgram(t, &traceOp{name: "wait", wait: domain.WaitClient, trace: &trace})

	var aborted []string
	m := NewManager(WithHooks(domain.LifecycleHooks{
		OnAbort: func(_ context.Context, e *domain.EndEvent) {
			aborted = append(aborted, e.Reason)
		},
	}))
	ctx := context.Background()
	m.Begin(ctx, &fakeEntity{id: "p1"}, nil, nil, "charge", domain.KindAbility, prog)
	m.Tick(ctx, time.Now())

	assert.True(t, m.Cancel(ctx, "p1"))
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, []string{"cancelled"}, aborted)
	assert.False(t, m.Cancel(ctx, "p1"), "second cancel finds nothing")
}

func TestManager_WaitTimeout(t *testing.T) {
	var trace []string
	prog := buildProgram(t,
		&traceOp{name: "wait", wait: domain.WaitClient, trace: &trace},
		&traceOp{name: "b", trace: &trace},
	)

	var aborted []string
	m := NewManager(
		WithWaitTimeout(5*time.Second),
		WithHooks(domain.LifecycleHooks{
			OnAbort: func(_ context.Context, e *domain.EndEvent) {
				aborted = append(aborted, e.Reason)
			},
		}),
	)
	ctx := context.Background()
	m.Begin(ctx, &fakeEntity{id: "p1"}, nil, nil, "charge", domain.KindAbility, prog)

	start := time.Now()
	m.Tick(ctx, start)
	require.Equal(t, 1, m.Len())

	m.Tick(ctx, start.Add(3*time.Second))
	assert.Equal(t, 1, m.Len(), "still within the timeout")

	m.Tick(ctx, start.Add(6*time.Second))
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, []string{"wait timeout"}, aborted)
	assert.Equal(t, []string{"wait"}, trace, "nothing past the wait ever ran")
}

func TestManager_Active(t *testing.T) {
	var trace []string
	prog := buildProgram(t, &traceOp{name: "wait", wait: domain.WaitServer, trace: &trace})

	m := NewManager()
	ctx := context.Background()
	m.Begin(ctx, &fakeEntity{id: "p1"}, nil, nil, "parry", domain.KindBlock, prog)
	m.Tick(ctx, time.Now())

	snaps := m.Active()
	require.Len(t, snaps, 1)
	assert.Equal(t, "p1", snaps[0].Entity)
	assert.Equal(t, "parry", snaps[0].Script)
	assert.Equal(t, string(domain.KindBlock), snaps[0].Kind)
	assert.Equal(t, domain.WaitServer, snaps[0].Waiting)
	assert.False(t, snaps[0].Finished)
}
