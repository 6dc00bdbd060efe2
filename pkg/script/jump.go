package script

import (
	"context"

	"github.com/aretw0/riposte/pkg/domain"
)

// jumpOperation unconditionally redirects control to its label's resolved
// index. It is only constructible through Builder.Jump, which guarantees the
// label belongs to the program being built.
type jumpOperation struct {
	target *Label
}

// Tick moves the program counter. Redirecting a counter has no external
// side effect, so the simulated path is identical.
func (j *jumpOperation) Tick(ctx context.Context, inv *domain.Invocation) error {
	inv.State.Redirect(j.target.index)
	return nil
}

func (j *jumpOperation) SimulateTick(ctx context.Context, inv *domain.Invocation) error {
	return j.Tick(ctx, inv)
}

// WaitForDataFrom always reports WaitNone: a jump resolves within the tick
// it runs in, subject only to the executor's step budget.
func (j *jumpOperation) WaitForDataFrom() domain.WaitSource { return domain.WaitNone }

func (j *jumpOperation) Rules() *domain.Rules { return nil }

func (j *jumpOperation) Tags() domain.Tags { return nil }

func (j *jumpOperation) TargetLabel() *Label { return j.target }
