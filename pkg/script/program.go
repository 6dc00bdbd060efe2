package script

import "github.com/aretw0/riposte/pkg/domain"

// Program is an immutable compiled operation sequence. It is built once,
// cached by the owning asset layer, and safely shared read-only by every
// interaction that runs it.
type Program struct {
	ops []domain.Operation
}

// Len returns the number of operations.
func (p *Program) Len() int { return len(p.ops) }

// At returns the operation at index i. Indices come from the validated
// program counter, so i is trusted to be in range.
func (p *Program) At(i int) domain.Operation { return p.ops[i] }

// Operations returns a copy of the sequence for introspection tools.
func (p *Program) Operations() []domain.Operation {
	out := make([]domain.Operation, len(p.ops))
	copy(out, p.ops)
	return out
}
