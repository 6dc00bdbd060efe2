package ports

import "context"

// ScriptSource defines how the engine retrieves script definitions.
// This decouples the storage layer (filesystem, memory, asset bundle) from
// the compiler.
type ScriptSource interface {
	// Get retrieves the raw definition of a script by ID.
	// The bytes are whatever the codec understands (YAML documents).
	Get(id string) ([]byte, error)

	// List returns the IDs of every script available from this source.
	// Used by the validate command and the debug server.
	List() ([]string, error)
}

// Watchable is implemented by sources that can notify about backend changes.
// This is typically used for hot-reload during script authoring.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying scripts
	// change. It abstracts away the specific event details, signaling only
	// that cached programs must be recompiled.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
