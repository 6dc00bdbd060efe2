package domain

import (
	"time"

	"github.com/aretw0/riposte/pkg/ports"
)

// InteractionKind categorizes what triggered the script.
type InteractionKind string

const (
	KindAttack  InteractionKind = "attack"
	KindAbility InteractionKind = "ability"
	KindBlock   InteractionKind = "block"
	KindUse     InteractionKind = "use"
)

// TickTime is the engine's view of the current world tick.
type TickTime struct {
	// Number is the monotonically increasing tick counter.
	Number uint64

	// Now is the wall-clock time the tick started.
	Now time.Time
}

// Invocation carries everything an operation may touch during one step:
// the entity references, the cooldown handler, the tick, and the mutable
// interaction state. The engine builds one per executor entry and forwards
// it into every operation unchanged.
type Invocation struct {
	// Script is the ID of the running script, for diagnostics.
	Script string

	// Kind is the interaction category the script was started as.
	Kind InteractionKind

	// FirstRun is true only during the interaction's first executor entry.
	FirstRun bool

	// Time is the current world tick.
	Time TickTime

	// State is the per-interaction mutable execution state.
	State *InteractionState

	// Entity is the performing entity's opaque handle.
	Entity ports.EntityRef

	// Living is the performing entity's mutable surface. May equal Entity.
	Living ports.LivingEntity

	// Cooldowns is the host's cooldown bookkeeping, passed through untouched.
	Cooldowns ports.CooldownHandler
}
