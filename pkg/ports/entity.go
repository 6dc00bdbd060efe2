package ports

// EntityRef is an opaque handle to an entity in the host's component store.
// The engine forwards it into operations untouched.
type EntityRef interface {
	// ID returns the host's stable identifier for the entity.
	ID() string
}

// LivingEntity is the mutable surface operations act on: health and
// entity-scoped effects. Hosts back this with whatever component accessors
// they have; tests back it with a plain struct.
type LivingEntity interface {
	EntityRef

	// Health returns the entity's current health.
	Health() float64

	// SetHealth overwrites the entity's health.
	SetHealth(v float64)

	// PlaySound emits a named sound effect at the entity's position.
	PlaySound(name string)
}
