package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/riposte/internal/logging"
	"github.com/aretw0/riposte/pkg/domain"
	"github.com/aretw0/riposte/pkg/script"
)

// DefaultStepBudget bounds how many operations one interaction may execute
// within a single tick. A well-formed script either completes or suspends
// long before this; hitting the budget means a non-suspending jump cycle.
const DefaultStepBudget = 256

// Executor drives an interaction through its program each tick until it
// suspends, completes, or exhausts the step budget. The executor itself is
// stateless across interactions and safe to share; all mutable state lives
// in the InteractionState it is handed.
type Executor struct {
	budget int
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// Option configures the Executor.
type Option func(*Executor)

// WithStepBudget overrides the per-tick step budget.
func WithStepBudget(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.budget = n
		}
	}
}

// WithLogger sets a structured logger for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Executor) {
		e.hooks = hooks
	}
}

// NewExecutor creates an executor with the default budget and a no-op
// logger.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		budget: DefaultStepBudget,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunTick advances the interaction authoritatively. It returns nil when the
// interaction suspended, completed, or was already finished; it returns an
// error when an operation failed or the step budget was exhausted, in which
// case the interaction is marked finished (aborted).
func (e *Executor) RunTick(ctx context.Context, prog *script.Program, inv *domain.Invocation) error {
	return e.run(ctx, prog, inv, false)
}

// SimulateTick advances the interaction through the predictive path
// (Operation.SimulateTick). Control flow and suspension behave exactly as
// in RunTick.
func (e *Executor) SimulateTick(ctx context.Context, prog *script.Program, inv *domain.Invocation) error {
	return e.run(ctx, prog, inv, true)
}

func (e *Executor) run(ctx context.Context, prog *script.Program, inv *domain.Invocation, simulate bool) error {
	st := inv.State
	if st.Finished {
		return nil
	}
	if st.Waiting.Waiting() {
		// Still suspended; the owner resumes via InteractionState.Resume
		// before ticking again.
		return nil
	}
	if st.Counter >= prog.Len() {
		st.Finished = true
		e.emitComplete(ctx, inv)
		return nil
	}

	for steps := 0; steps < e.budget; steps++ {
		op := prog.At(st.Counter)
		e.emitStep(ctx, inv, simulate)

		var err error
		if simulate {
			err = op.SimulateTick(ctx, inv)
		} else {
			err = op.Tick(ctx, inv)
		}
		if err != nil {
			st.Finished = true
			e.logger.Error("operation failed, aborting interaction",
				"script", inv.Script,
				"entity", entityID(inv),
				"index", st.Counter,
				"err", err,
			)
			e.emitAbort(ctx, inv, err.Error())
			return fmt.Errorf("script %s: operation %d: %w", inv.Script, st.Counter, err)
		}

		if src := op.WaitForDataFrom(); src.Waiting() {
			// Redirects from a suspending step are not honored; consume the
			// flag so it cannot leak into the resumed run.
			st.TakeRedirect()
			st.Waiting = src
			e.emitSuspend(ctx, inv, src)
			return nil
		}

		if st.TakeRedirect() {
			// Control-flow step already moved the counter.
			continue
		}

		st.Counter++
		if st.Counter >= prog.Len() {
			st.Finished = true
			e.emitComplete(ctx, inv)
			return nil
		}
	}

	// Budget exhausted without suspension or completion: a configuration
	// error in the script. Fatal to this interaction, never to the server.
	st.Finished = true
	e.logger.Error("step budget exhausted, aborting interaction",
		"script", inv.Script,
		"entity", entityID(inv),
		"budget", e.budget,
	)
	e.emitAbort(ctx, inv, domain.ErrRunawayLoop.Error())
	return fmt.Errorf("script %s: %w (budget %d)", inv.Script, domain.ErrRunawayLoop, e.budget)
}

func (e *Executor) base(inv *domain.Invocation) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Script:    inv.Script,
		Entity:    entityID(inv),
	}
}

func (e *Executor) emitStep(ctx context.Context, inv *domain.Invocation, simulate bool) {
	if e.hooks.OnStep == nil {
		return
	}
	e.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: e.base(inv),
		Index:     inv.State.Counter,
		Simulate:  simulate,
	})
}

func (e *Executor) emitSuspend(ctx context.Context, inv *domain.Invocation, src domain.WaitSource) {
	if e.hooks.OnSuspend == nil {
		return
	}
	e.hooks.OnSuspend(ctx, &domain.SuspendEvent{
		EventBase: e.base(inv),
		Index:     inv.State.Counter,
		Source:    src,
	})
}

func (e *Executor) emitComplete(ctx context.Context, inv *domain.Invocation) {
	if e.hooks.OnComplete == nil {
		return
	}
	e.hooks.OnComplete(ctx, &domain.EndEvent{EventBase: e.base(inv)})
}

func (e *Executor) emitAbort(ctx context.Context, inv *domain.Invocation, reason string) {
	if e.hooks.OnAbort == nil {
		return
	}
	e.hooks.OnAbort(ctx, &domain.EndEvent{EventBase: e.base(inv), Reason: reason})
}

func entityID(inv *domain.Invocation) string {
	if inv.Entity == nil {
		return ""
	}
	return inv.Entity.ID()
}
