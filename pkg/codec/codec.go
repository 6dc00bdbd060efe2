/*
Package codec compiles declarative script definitions (YAML) into immutable
programs.

A definition is a flat list of steps. Each step either declares a label at
the current position or appends an operation; jumps may reference labels
declared later (the compiler creates unresolved labels on first reference
and lets the builder validate everything at Build).
*/
package codec

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/aretw0/riposte/pkg/domain"
	"github.com/aretw0/riposte/pkg/registry"
	"github.com/aretw0/riposte/pkg/script"
	"gopkg.in/yaml.v3"
)

// Definition is the on-disk shape of a script.
type Definition struct {
	ID    string `yaml:"id"`
	Kind  string `yaml:"kind"`
	Steps []Step `yaml:"steps"`
}

// Step is one entry in a definition: a label declaration or an operation.
type Step struct {
	// Label declares a label with this name at the current position.
	Label string `yaml:"label,omitempty"`

	// Op names the operation kind; "jump" is built in, everything else is
	// resolved through the registry.
	Op string `yaml:"op,omitempty"`

	// To is the target label of a jump step.
	To string `yaml:"to,omitempty"`

	// Params are the operation's raw parameters.
	Params map[string]any `yaml:"params,omitempty"`

	// Rules and Tags decorate the operation.
	Rules *domain.Rules `yaml:"rules,omitempty"`
	Tags  domain.Tags   `yaml:"tags,omitempty"`
}

// Compiled is the output of compilation: the program plus its identity.
type Compiled struct {
	ID      string
	Kind    domain.InteractionKind
	Program *script.Program
}

// Compiler turns raw definitions into programs using a registry of
// operation factories.
type Compiler struct {
	registry *registry.Registry
}

// NewCompiler creates a compiler over the given registry.
func NewCompiler(r *registry.Registry) *Compiler {
	return &Compiler{registry: r}
}

// Compile parses and assembles one script definition. All structural errors
// (unknown kinds, bad params, unresolved labels, out-of-range jumps) are
// reported here, at load time, so the executor never sees a malformed
// program.
func (c *Compiler) Compile(data []byte) (*Compiled, error) {
	def, err := parse(data)
	if err != nil {
		return nil, err
	}

	b := script.NewBuilder()
	labels := make(map[string]*script.Label)
	labelOf := func(name string) *script.Label {
		if l, ok := labels[name]; ok {
			return l
		}
		l := b.CreateUnresolvedLabel()
		labels[name] = l
		return l
	}

	for i, step := range def.Steps {
		if err := c.compileStep(b, labelOf, labels, step); err != nil {
			return nil, fmt.Errorf("script %s: step %d: %w", def.ID, i, err)
		}
	}

	// Friendlier than the builder's positional error: report undeclared
	// labels by the names the script used.
	var undefined []string
	for name, l := range labels {
		if !l.Resolved() {
			undefined = append(undefined, name)
		}
	}
	if len(undefined) > 0 {
		sort.Strings(undefined)
		return nil, fmt.Errorf("script %s: undefined labels: %v", def.ID, undefined)
	}

	prog, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", def.ID, err)
	}

	kind := domain.InteractionKind(def.Kind)
	if kind == "" {
		kind = domain.KindAbility
	}

	return &Compiled{ID: def.ID, Kind: kind, Program: prog}, nil
}

func (c *Compiler) compileStep(b *script.Builder, labelOf func(string) *script.Label, labels map[string]*script.Label, step Step) error {
	switch {
	case step.Label != "" && step.Op != "":
		return fmt.Errorf("step declares both label %q and op %q", step.Label, step.Op)

	case step.Label != "":
		if l, ok := labels[step.Label]; ok {
			if l.Resolved() {
				return fmt.Errorf("duplicate label %q", step.Label)
			}
			return b.ResolveLabel(l)
		}
		labels[step.Label] = b.CreateLabel()
		return nil

	case step.Op == "jump":
		if step.To == "" {
			return fmt.Errorf("jump: missing to")
		}
		b.Jump(labelOf(step.To))
		return nil

	case step.Op != "":
		return c.registry.Build(step.Op, &registry.BuildContext{
			Builder: b,
			Label:   labelOf,
			Params:  step.Params,
			Rules:   step.Rules,
			Tags:    step.Tags,
		})

	default:
		return fmt.Errorf("step is neither a label nor an op")
	}
}

func parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if def.ID == "" {
		return nil, fmt.Errorf("script missing id")
	}
	if len(def.Steps) == 0 {
		return nil, fmt.Errorf("script %s: no steps", def.ID)
	}
	return &def, nil
}
