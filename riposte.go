package riposte

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/riposte/internal/logging"
	"github.com/aretw0/riposte/pkg/codec"
	"github.com/aretw0/riposte/pkg/domain"
	"github.com/aretw0/riposte/pkg/interaction"
	"github.com/aretw0/riposte/pkg/ops"
	"github.com/aretw0/riposte/pkg/ports"
	"github.com/aretw0/riposte/pkg/registry"
)

// Version is the library version, overridable at build time via ldflags.
var Version = "dev"

// Engine is the high-level entry point for the library. It compiles script
// definitions from a source, caches the resulting programs, and drives the
// interaction manager each tick.
type Engine struct {
	source   ports.ScriptSource
	registry *registry.Registry
	compiler *codec.Compiler
	manager  *interaction.Manager
	logger   *slog.Logger

	managerOpts []interaction.Option

	mu    sync.RWMutex
	cache map[string]*codec.Compiled
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
			e.managerOpts = append(e.managerOpts, interaction.WithLogger(logger))
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.managerOpts = append(e.managerOpts, interaction.WithHooks(hooks))
	}
}

// WithRegistry injects a custom operation registry, bypassing the default
// built-in set. Callers extending the built-ins should start from
// registry.New and ops.RegisterBuiltins.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithStepBudget overrides the per-tick step budget.
func WithStepBudget(n int) Option {
	return func(e *Engine) {
		e.managerOpts = append(e.managerOpts, interaction.WithStepBudget(n))
	}
}

// WithWaitTimeout cancels interactions that stay suspended longer than d.
func WithWaitTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.managerOpts = append(e.managerOpts, interaction.WithWaitTimeout(d))
	}
}

// New initializes an Engine over the given script source.
func New(source ports.ScriptSource, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, fmt.Errorf("a script source is required")
	}

	e := &Engine{
		source: source,
		logger: logging.NewNop(),
		cache:  make(map[string]*codec.Compiled),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		e.registry = registry.New()
		ops.RegisterBuiltins(e.registry)
	}
	e.compiler = codec.NewCompiler(e.registry)
	e.manager = interaction.NewManager(e.managerOpts...)

	return e, nil
}

// Load compiles the script with the given ID, caching the program. Repeated
// loads of the same ID return the cached compilation until Invalidate or a
// Watch notification clears it.
func (e *Engine) Load(id string) (*codec.Compiled, error) {
	e.mu.RLock()
	if compiled, ok := e.cache[id]; ok {
		e.mu.RUnlock()
		return compiled, nil
	}
	e.mu.RUnlock()

	data, err := e.source.Get(id)
	if err != nil {
		return nil, err
	}
	compiled, err := e.compiler.Compile(data)
	if err != nil {
		return nil, err
	}
	if compiled.ID != id {
		return nil, fmt.Errorf("script %q declares id %q", id, compiled.ID)
	}

	e.mu.Lock()
	e.cache[id] = compiled
	e.mu.Unlock()

	e.logger.Debug("script compiled", "script", id, "ops", compiled.Program.Len())
	return compiled, nil
}

// Invalidate drops every cached program, forcing recompilation on next Load.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	e.cache = make(map[string]*codec.Compiled)
	e.mu.Unlock()
}

// Begin starts the identified script for an entity, compiling it if needed.
// A new interaction replaces any the entity already has in flight.
func (e *Engine) Begin(ctx context.Context, entity ports.EntityRef, living ports.LivingEntity, cooldowns ports.CooldownHandler, scriptID string) error {
	compiled, err := e.Load(scriptID)
	if err != nil {
		return err
	}
	e.manager.Begin(ctx, entity, living, cooldowns, compiled.ID, compiled.Kind, compiled.Program)
	return nil
}

// Tick advances every active interaction by one world tick. Call it once
// per server tick from the game loop.
func (e *Engine) Tick(ctx context.Context, now time.Time) {
	e.manager.Tick(ctx, now)
}

// Deliver hands externally supplied data to the entity's suspended
// interaction. Stale deliveries are ignored.
func (e *Engine) Deliver(ctx context.Context, entityID string, source domain.WaitSource, payload any) {
	e.manager.Deliver(ctx, entityID, source, payload)
}

// Cancel discards the entity's interaction, reporting whether one existed.
func (e *Engine) Cancel(ctx context.Context, entityID string) bool {
	return e.manager.Cancel(ctx, entityID)
}

// Scripts lists the IDs available from the underlying source.
func (e *Engine) Scripts() ([]string, error) {
	return e.source.List()
}

// Active returns a snapshot of every live interaction.
func (e *Engine) Active() []interaction.Snapshot {
	return e.manager.Active()
}

// Manager exposes the interaction manager for integrations that need more
// than the facade (the debug server, metrics gauges).
func (e *Engine) Manager() *interaction.Manager {
	return e.manager
}

// Watch invalidates the program cache whenever the source reports a change.
// It returns an error if the source does not support watching, and stops
// when ctx is cancelled.
func (e *Engine) Watch(ctx context.Context) error {
	w, ok := e.source.(ports.Watchable)
	if !ok {
		return fmt.Errorf("current script source does not support watching")
	}
	ch, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	go func() {
		for range ch {
			e.logger.Info("script source changed, recompiling on next load")
			e.Invalidate()
		}
	}()
	return nil
}
