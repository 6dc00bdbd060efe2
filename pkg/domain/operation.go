package domain

import "context"

// Operation is one executable step of an interaction script.
//
// Implementations are immutable after construction and shared by every
// interaction running the same program; all per-invocation state lives in
// the InteractionState carried by the Invocation.
type Operation interface {
	// Tick performs the authoritative execution of this step for one tick.
	// It may mutate entity state through the invocation's references and may
	// redirect the program counter via InteractionState.Redirect.
	Tick(ctx context.Context, inv *Invocation) error

	// SimulateTick performs the predictive execution of this step (server-side
	// validation of client prediction). It must not commit any externally
	// visible effect that Tick would commit for the same step. Pure
	// control-flow steps implement it identically to Tick, because moving a
	// counter has no external side effect.
	SimulateTick(ctx context.Context, inv *Invocation) error

	// WaitForDataFrom reports whether the sequence must suspend after this
	// step runs, and if so which source must supply the data.
	WaitForDataFrom() WaitSource

	// Rules returns the targeting/range/state constraints for this step, or
	// nil. They are consumed by an external validation layer, never by the
	// executor.
	Rules() *Rules

	// Tags returns opaque step metadata, or nil.
	Tags() Tags
}

// NestedOperation is an Operation that decorates another.
type NestedOperation interface {
	Operation

	// Inner returns the wrapped operation.
	Inner() Operation
}

// Unwrap peels decorators until it reaches the leaf operation.
// Nesting depth is bounded by the script definition, practically small.
func Unwrap(op Operation) Operation {
	for {
		nested, ok := op.(NestedOperation)
		if !ok {
			return op
		}
		op = nested.Inner()
	}
}
