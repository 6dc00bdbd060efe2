package domain

// Rules describes interaction constraints for a single step. The executor
// never evaluates them; the host's validation layer reads them off the
// operation before committing its effects.
type Rules struct {
	// MaxRange is the maximum distance to the target, in blocks. Zero means
	// unconstrained.
	MaxRange float64 `yaml:"max_range,omitempty" mapstructure:"max_range"`

	// RequiresTarget demands a locked target entity for the step to apply.
	RequiresTarget bool `yaml:"requires_target,omitempty" mapstructure:"requires_target"`

	// States lists entity states (e.g. "grounded", "mounted") the performer
	// must be in.
	States []string `yaml:"states,omitempty" mapstructure:"states"`
}

// Tags is an opaque metadata bag attached to a step. The engine only carries
// it; meaning is assigned by host systems (damage typing, audio buses, ...).
type Tags map[string]string
