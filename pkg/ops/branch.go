package ops

import (
	"context"

	"github.com/aretw0/riposte/pkg/domain"
	"github.com/aretw0/riposte/pkg/script"
)

// Branch redirects control to a label once a scratch counter reaches a
// threshold. Combined with Tally and Await it expresses charge-up loops
// without any executor support beyond the redirect flag.
type Branch struct {
	leaf
	Key     string
	AtLeast int
	To      *script.Label
}

// Tick redirects when the counter has reached the threshold. Like the
// unconditional jump, moving the counter has no external side effect, so
// simulation is identical.
func (o *Branch) Tick(ctx context.Context, inv *domain.Invocation) error {
	if inv.State.Count(o.Key) >= o.AtLeast {
		inv.State.Redirect(o.To.Index())
	}
	return nil
}

func (o *Branch) SimulateTick(ctx context.Context, inv *domain.Invocation) error {
	return o.Tick(ctx, inv)
}

// TargetLabel exposes the redirect target for build-time validation.
func (o *Branch) TargetLabel() *script.Label { return o.To }
