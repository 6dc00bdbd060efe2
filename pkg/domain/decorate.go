package domain

import "context"

// decorated attaches Rules and Tags to an inner operation without touching
// its behavior. It is the canonical NestedOperation.
type decorated struct {
	inner Operation
	rules *Rules
	tags  Tags
}

// Decorate wraps op with rules and tags. If both are empty the operation is
// returned unchanged.
func Decorate(op Operation, rules *Rules, tags Tags) Operation {
	if rules == nil && len(tags) == 0 {
		return op
	}
	return &decorated{inner: op, rules: rules, tags: tags}
}

func (d *decorated) Tick(ctx context.Context, inv *Invocation) error {
	return d.inner.Tick(ctx, inv)
}

func (d *decorated) SimulateTick(ctx context.Context, inv *Invocation) error {
	return d.inner.SimulateTick(ctx, inv)
}

func (d *decorated) WaitForDataFrom() WaitSource { return d.inner.WaitForDataFrom() }

func (d *decorated) Rules() *Rules {
	if d.rules != nil {
		return d.rules
	}
	return d.inner.Rules()
}

func (d *decorated) Tags() Tags {
	if len(d.tags) > 0 {
		return d.tags
	}
	return d.inner.Tags()
}

func (d *decorated) Inner() Operation { return d.inner }
