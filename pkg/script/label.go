package script

import "fmt"

// Label marks a position in a program under construction. It is created by a
// Builder, either already resolved to the current write position or as a
// placeholder to be bound later. Labels are identified by reference; their
// index is only meaningful relative to the program built by their owning
// Builder.
//
// A resolved Label is immutable for the life of the program: jump operations
// keep the Label itself and read its index at execution time.
type Label struct {
	owner    *Builder
	seq      int
	index    int
	resolved bool
}

// Index returns the position the label is bound to. It is only meaningful
// once the label is resolved; Build rejects programs with unresolved labels,
// so any label reachable from a built program answers correctly.
func (l *Label) Index() int { return l.index }

// Resolved reports whether the label has been bound to a position.
func (l *Label) Resolved() bool { return l.resolved }

// String identifies the label in diagnostics by creation order.
func (l *Label) String() string {
	if !l.resolved {
		return fmt.Sprintf("label#%d(unresolved)", l.seq)
	}
	return fmt.Sprintf("label#%d@%d", l.seq, l.index)
}
