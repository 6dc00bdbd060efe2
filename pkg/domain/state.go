package domain

// InteractionState is the mutable execution state of one running program
// instance for one entity: the program counter, the suspension reason, and
// scratch space for operations that span re-entries.
//
// Exactly one InteractionState drives any given program instance. It is only
// ever touched from its owning entity's tick (plus the owner's data-delivery
// path), so it carries no locking.
type InteractionState struct {
	// Counter is the index of the next operation to execute.
	Counter int

	// Waiting is the suspension reason, WaitNone while running.
	Waiting WaitSource

	// Finished is set once the program ran to completion or was aborted.
	Finished bool

	// Received holds the payload delivered by the most recent resumption.
	Received any

	// Scratch is operation-local state surviving across ticks (charge
	// progress, combo counters). Keyed by whatever the operation chooses.
	Scratch map[string]any

	redirected bool
}

// NewInteractionState returns a state positioned at the start of a program.
func NewInteractionState() *InteractionState {
	return &InteractionState{Scratch: make(map[string]any)}
}

// Redirect moves the program counter to index and flags the move so the
// executor skips its default advance-by-one step.
func (s *InteractionState) Redirect(index int) {
	s.Counter = index
	s.redirected = true
}

// TakeRedirect reports whether the last operation redirected the counter,
// consuming the flag.
func (s *InteractionState) TakeRedirect() bool {
	r := s.redirected
	s.redirected = false
	return r
}

// Resume clears the wait reason, records the delivered payload, and advances
// the counter past the suspending operation. Resumption does not re-invoke
// the step that declared the wait; operations that need the payload read it
// from Received on their own turn.
func (s *InteractionState) Resume(payload any) {
	if s.Finished || !s.Waiting.Waiting() {
		return
	}
	s.Waiting = WaitNone
	s.Received = payload
	s.Counter++
}

// Bump increments the named scratch counter and returns the new value.
func (s *InteractionState) Bump(key string) int {
	n, _ := s.Scratch[key].(int)
	n++
	s.Scratch[key] = n
	return n
}

// Count returns the named scratch counter, zero if unset.
func (s *InteractionState) Count(key string) int {
	n, _ := s.Scratch[key].(int)
	return n
}
