// Package interaction owns the live execution state of the engine: which
// entity is running which program, suspension bookkeeping, data delivery,
// cancellation, and wait timeouts.
package interaction

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/riposte/internal/logging"
	"github.com/aretw0/riposte/internal/runtime"
	"github.com/aretw0/riposte/pkg/domain"
	"github.com/aretw0/riposte/pkg/ports"
	"github.com/aretw0/riposte/pkg/script"
)

// running is one live interaction: the shared program plus the private
// per-entity state driving it.
type running struct {
	entity    ports.EntityRef
	living    ports.LivingEntity
	cooldowns ports.CooldownHandler
	scriptID  string
	kind      domain.InteractionKind
	program   *script.Program
	state     *domain.InteractionState
	started   bool
	waitSince time.Time
}

// Snapshot is a read-only view of a live interaction for introspection
// (debug server, admin tooling).
type Snapshot struct {
	Entity   string            `json:"entity"`
	Script   string            `json:"script"`
	Kind     string            `json:"kind"`
	Counter  int               `json:"counter"`
	Waiting  domain.WaitSource `json:"waiting,omitempty"`
	Finished bool              `json:"finished"`
}

// Manager drives every active interaction. Program execution itself is
// single-threaded per the tick model; the mutex exists because Deliver and
// the debug surface are called from other goroutines (network handlers).
type Manager struct {
	mu     sync.Mutex
	active map[string]*running

	exec     *runtime.Executor
	execOpts []runtime.Option
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	timeout  time.Duration
	clock    func() time.Time
	tick     uint64
}

// Option configures the Manager.
type Option func(*Manager)

// WithStepBudget overrides the executor's per-tick step budget.
func WithStepBudget(n int) Option {
	return func(m *Manager) { m.execOpts = append(m.execOpts, runtime.WithStepBudget(n)) }
}

// WithLogger configures a logger for the manager and its executor.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
			m.execOpts = append(m.execOpts, runtime.WithLogger(logger))
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = m.hooks.Merge(hooks)
		m.execOpts = append(m.execOpts, runtime.WithHooks(hooks))
	}
}

// WithWaitTimeout cancels interactions that stay suspended longer than d.
// Zero disables the sweep.
func WithWaitTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

// WithClock injects a time source, used by tests.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) { m.clock = clock }
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		active: make(map[string]*running),
		logger: logging.NewNop(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.exec = runtime.NewExecutor(m.execOpts...)
	return m
}

// Begin starts scriptID's program for the entity. A new interaction
// replaces any interaction the entity already has in flight (a fresh action
// interrupts the previous one), which is reported through the abort hook.
func (m *Manager) Begin(ctx context.Context, entity ports.EntityRef, living ports.LivingEntity, cooldowns ports.CooldownHandler, scriptID string, kind domain.InteractionKind, prog *script.Program) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.active[entity.ID()]; ok {
		m.logger.Debug("interaction replaced", "entity", entity.ID(), "script", prev.scriptID)
		m.emitAbort(ctx, prev, "replaced")
	}

	m.active[entity.ID()] = &running{
		entity:    entity,
		living:    living,
		cooldowns: cooldowns,
		scriptID:  scriptID,
		kind:      kind,
		program:   prog,
		state:     domain.NewInteractionState(),
	}
}

// Tick advances every active interaction by one world tick. Finished
// interactions (completed or aborted) are removed; suspended ones past the
// wait timeout are cancelled.
func (m *Manager) Tick(ctx context.Context, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tick++

	for id, r := range m.active {
		if r.state.Waiting.Waiting() {
			if m.timeout > 0 && now.Sub(r.waitSince) >= m.timeout {
				m.logger.Warn("suspended interaction timed out",
					"entity", id, "script", r.scriptID, "source", r.state.Waiting)
				m.emitAbort(ctx, r, "wait timeout")
				delete(m.active, id)
			}
			continue
		}

		m.step(ctx, r, now)
		if r.state.Finished {
			delete(m.active, id)
		}
	}
}

// step runs the executor once for r, tracking first-run and suspension
// bookkeeping. Executor errors (operation failure, runaway loop) already
// mark the state finished and are logged there.
func (m *Manager) step(ctx context.Context, r *running, now time.Time) {
	inv := &domain.Invocation{
		Script:    r.scriptID,
		Kind:      r.kind,
		FirstRun:  !r.started,
		Time:      domain.TickTime{Number: m.tick, Now: now},
		State:     r.state,
		Entity:    r.entity,
		Living:    r.living,
		Cooldowns: r.cooldowns,
	}
	r.started = true

	_ = m.exec.RunTick(ctx, r.program, inv)

	if r.state.Waiting.Waiting() {
		r.waitSince = now
	}
}

// Deliver hands externally supplied data to the entity's suspended
// interaction and resumes it immediately. Stale deliveries (unknown
// entity, finished interaction, not waiting, or waiting on a different
// source) are ignored, matching how late network packets must be treated.
func (m *Manager) Deliver(ctx context.Context, entityID string, source domain.WaitSource, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.active[entityID]
	if !ok || r.state.Finished || r.state.Waiting != source {
		m.logger.Debug("stale data delivery ignored", "entity", entityID, "source", source)
		return
	}

	r.state.Resume(payload)
	m.emitResume(ctx, r, source)

	m.step(ctx, r, m.clock())
	if r.state.Finished {
		delete(m.active, entityID)
	}
}

// Cancel discards the entity's interaction, abandoning any in-flight
// suspension. Effects already committed by executed steps stand. Reports
// whether an interaction existed.
func (m *Manager) Cancel(ctx context.Context, entityID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.active[entityID]
	if !ok {
		return false
	}
	m.emitAbort(ctx, r, "cancelled")
	delete(m.active, entityID)
	return true
}

// Len returns the number of active interactions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// Active returns a snapshot of every live interaction.
func (m *Manager) Active() []Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Snapshot, 0, len(m.active))
	for id, r := range m.active {
		out = append(out, Snapshot{
			Entity:   id,
			Script:   r.scriptID,
			Kind:     string(r.kind),
			Counter:  r.state.Counter,
			Waiting:  r.state.Waiting,
			Finished: r.state.Finished,
		})
	}
	return out
}

func (m *Manager) emitAbort(ctx context.Context, r *running, reason string) {
	if m.hooks.OnAbort == nil {
		return
	}
	m.hooks.OnAbort(ctx, &domain.EndEvent{
		EventBase: domain.EventBase{Timestamp: m.clock(), Script: r.scriptID, Entity: r.entity.ID()},
		Reason:    reason,
	})
}

func (m *Manager) emitResume(ctx context.Context, r *running, source domain.WaitSource) {
	if m.hooks.OnResume == nil {
		return
	}
	m.hooks.OnResume(ctx, &domain.ResumeEvent{
		EventBase: domain.EventBase{Timestamp: m.clock(), Script: r.scriptID, Entity: r.entity.ID()},
		Source:    source,
	})
}
