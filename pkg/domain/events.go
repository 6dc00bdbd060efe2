package domain

import (
	"context"
	"time"
)

// EventBase contains common fields for all lifecycle events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Script    string    `json:"script"`
	Entity    string    `json:"entity"`
}

// StepEvent is emitted before each operation executes.
type StepEvent struct {
	EventBase
	Index    int  `json:"index"`
	Simulate bool `json:"simulate,omitempty"`
}

// SuspendEvent is emitted when a sequence suspends awaiting data.
type SuspendEvent struct {
	EventBase
	Index  int        `json:"index"`
	Source WaitSource `json:"source"`
}

// ResumeEvent is emitted when awaited data arrives.
type ResumeEvent struct {
	EventBase
	Source WaitSource `json:"source"`
}

// EndEvent is emitted when an interaction completes, aborts, or is cancelled.
type EndEvent struct {
	EventBase
	Reason string `json:"reason,omitempty"` // empty on normal completion
}

// LifecycleHooks defines callbacks for engine observability. Any field may
// be nil. Hooks run inline on the tick path; keep them cheap.
type LifecycleHooks struct {
	OnStep     func(context.Context, *StepEvent)
	OnSuspend  func(context.Context, *SuspendEvent)
	OnResume   func(context.Context, *ResumeEvent)
	OnComplete func(context.Context, *EndEvent)
	OnAbort    func(context.Context, *EndEvent)
}

// Merge chains two hook sets, invoking h's callback first, then other's.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep:     chain(h.OnStep, other.OnStep),
		OnSuspend:  chain(h.OnSuspend, other.OnSuspend),
		OnResume:   chain(h.OnResume, other.OnResume),
		OnComplete: chain(h.OnComplete, other.OnComplete),
		OnAbort:    chain(h.OnAbort, other.OnAbort),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
