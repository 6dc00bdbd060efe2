// Package registry maps operation kinds to factories so the codec can stay
// open to new operation types without changes to the builder or executor.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/riposte/pkg/domain"
	"github.com/aretw0/riposte/pkg/script"
)

// BuildContext is what a factory gets to work with while a script compiles:
// the builder being assembled, a named-label lookup, the raw step
// parameters, and the step's optional rules/tags decoration.
type BuildContext struct {
	// Builder is the program under construction. Factories that lower to
	// multiple operations (e.g. charge) append plumbing directly.
	Builder *script.Builder

	// Label returns the label registered under name, creating an unresolved
	// one on first reference. Forward references are legal.
	Label func(name string) *script.Label

	// Params holds the step's raw parameters from the script definition.
	Params map[string]any

	// Rules and Tags carry the step's decoration, applied by Add.
	Rules *domain.Rules
	Tags  domain.Tags
}

// Add appends op to the program, wrapping it with the step's rules/tags
// decoration when present. Factories should use this for their primary
// operation so decoration is never silently dropped.
func (bc *BuildContext) Add(op domain.Operation) {
	bc.Builder.AddOperation(domain.Decorate(op, bc.Rules, bc.Tags))
}

// Factory appends the operation(s) for one script step to the build.
type Factory func(bc *BuildContext) error

// Registry manages the available operation kinds.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds an operation kind to the registry.
// If a factory with the same kind exists, it is overwritten.
func (r *Registry) Register(kind string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = f
}

// Build looks up the factory for kind and runs it against the build context.
// Returns an error if the kind is not registered.
func (r *Registry) Build(kind string, bc *BuildContext) error {
	r.mu.RLock()
	f, ok := r.factories[kind]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("unknown operation kind: %s", kind)
	}

	return f(bc)
}

// Kinds returns the registered operation kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
