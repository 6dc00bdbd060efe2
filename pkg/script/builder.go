package script

import (
	"github.com/aretw0/riposte/pkg/domain"
)

// Redirector is implemented by operations that redirect control to a Label
// (the builder's own jump, plus conditional branches from the ops package).
// Build validates the target of every appended Redirector for ownership and
// bounds, so redirects never need a range check at execution time.
type Redirector interface {
	// TargetLabel returns the redirect target. A nil return means the
	// operation never redirects and is skipped by validation.
	TargetLabel() *Label
}

// redirectSite records where a redirecting operation was appended.
type redirectSite struct {
	at     int
	target *Label
}

// Builder assembles a flat operation sequence with forward- and
// backward-jump support. Every call is O(1); Build is O(N).
//
// Builders are build-time, single-threaded, and single-use: after Build
// returns, the builder must not be touched again.
type Builder struct {
	ops       []domain.Operation
	labels    []*Label
	redirects []redirectSite
	built     bool
	err       error
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// fail records the first assembly error; Build reports it.
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// AddOperation appends op at the current write position.
// If op redirects control (implements Redirector, at any nesting depth),
// its target label is registered for validation at Build.
func (b *Builder) AddOperation(op domain.Operation) *Builder {
	for cur := op; cur != nil; {
		if r, ok := cur.(Redirector); ok {
			if target := r.TargetLabel(); target != nil {
				if target.owner != b {
					b.fail(ErrForeignLabel)
					return b
				}
				b.redirects = append(b.redirects, redirectSite{at: len(b.ops), target: target})
			}
			break
		}
		nested, ok := cur.(domain.NestedOperation)
		if !ok {
			break
		}
		cur = nested.Inner()
	}
	b.ops = append(b.ops, op)
	return b
}

// Jump appends an unconditional jump to label at the current write position.
// The label may still be unresolved; forward jumps only need the Label
// object, not yet its index.
func (b *Builder) Jump(label *Label) *Builder {
	if label == nil {
		b.fail(ErrNilLabel)
		return b
	}
	return b.AddOperation(&jumpOperation{target: label})
}

// CreateLabel returns a label already resolved to the current write
// position.
func (b *Builder) CreateLabel() *Label {
	l := &Label{owner: b, seq: len(b.labels), index: len(b.ops), resolved: true}
	b.labels = append(b.labels, l)
	return l
}

// CreateUnresolvedLabel returns a placeholder label with no position. It
// must be bound via ResolveLabel before Build.
func (b *Builder) CreateUnresolvedLabel() *Label {
	l := &Label{owner: b, seq: len(b.labels)}
	b.labels = append(b.labels, l)
	return l
}

// ResolveLabel binds label to the current write position. Resolving an
// already-resolved label or a label from another builder is a build-time
// error.
func (b *Builder) ResolveLabel(label *Label) error {
	if label == nil {
		b.fail(ErrNilLabel)
		return ErrNilLabel
	}
	if label.owner != b {
		b.fail(ErrForeignLabel)
		return ErrForeignLabel
	}
	if label.resolved {
		b.fail(ErrLabelResolved)
		return ErrLabelResolved
	}
	label.index = len(b.ops)
	label.resolved = true
	return nil
}

// Build validates the assembled sequence and returns it as an immutable
// Program. It fails if any assembly call failed, if any label remains
// unresolved, or if any redirect targets a position outside the program.
func (b *Builder) Build() (*Program, error) {
	if b.built {
		return nil, ErrBuilderConsumed
	}
	b.built = true

	if b.err != nil {
		return nil, b.err
	}

	var unresolved []*Label
	for _, l := range b.labels {
		if !l.resolved {
			unresolved = append(unresolved, l)
		}
	}
	if len(unresolved) > 0 {
		return nil, &UnresolvedLabelsError{Labels: unresolved}
	}

	for _, site := range b.redirects {
		if site.target.index < 0 || site.target.index >= len(b.ops) {
			return nil, &JumpBoundsError{At: site.at, Target: site.target, Len: len(b.ops)}
		}
	}

	ops := make([]domain.Operation, len(b.ops))
	copy(ops, b.ops)
	return &Program{ops: ops}, nil
}
