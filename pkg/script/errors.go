package script

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBuilderConsumed is returned when Build is called twice on the same
// builder. Builders are single-use.
var ErrBuilderConsumed = errors.New("builder already built")

// ErrForeignLabel is returned when a label created by one builder is used
// with another. Indices are only meaningful within the program that created
// them.
var ErrForeignLabel = errors.New("label belongs to a different builder")

// ErrLabelResolved is returned when ResolveLabel is called on a label that
// already has a position.
var ErrLabelResolved = errors.New("label already resolved")

// ErrNilLabel is returned when a nil label is passed to Jump or ResolveLabel.
var ErrNilLabel = errors.New("nil label")

// UnresolvedLabelsError reports every label left unresolved at Build time.
type UnresolvedLabelsError struct {
	Labels []*Label
}

func (e *UnresolvedLabelsError) Error() string {
	names := make([]string, len(e.Labels))
	for i, l := range e.Labels {
		names[i] = l.String()
	}
	return fmt.Sprintf("unresolved labels at build: %s", strings.Join(names, ", "))
}

// JumpBoundsError reports a jump target outside the final program.
type JumpBoundsError struct {
	At     int    // position of the redirecting operation
	Target *Label // the offending label
	Len    int    // final program length
}

func (e *JumpBoundsError) Error() string {
	return fmt.Sprintf("jump at %d targets %s, out of program bounds [0,%d)", e.At, e.Target, e.Len)
}
