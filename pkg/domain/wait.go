package domain

// WaitSource identifies who must supply data before a suspended interaction
// may resume. It is a string (not an int enum) so script files can declare
// custom sources without an engine change.
type WaitSource string

const (
	// WaitNone means execution proceeds immediately to the next step within
	// the same tick, budget permitting.
	WaitNone WaitSource = ""

	// WaitClient suspends until the owning player's client confirms
	// (e.g. a charge-release or placement packet).
	WaitClient WaitSource = "client"

	// WaitServer suspends until another server subsystem delivers data
	// (e.g. a pathfinding or query result).
	WaitServer WaitSource = "server"
)

// Waiting reports whether the source actually suspends execution.
func (w WaitSource) Waiting() bool { return w != WaitNone }
