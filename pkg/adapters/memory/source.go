// Package memory provides in-memory implementations of the engine's ports,
// used by tests, the run command, and embedded hosts that generate scripts
// programmatically.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/riposte/pkg/domain"
)

// Source implements ports.ScriptSource over an in-memory map.
type Source struct {
	mu      sync.RWMutex
	scripts map[string][]byte
}

// NewSource creates a Source with the provided raw definitions keyed by
// script ID.
func NewSource(scripts map[string]string) *Source {
	data := make(map[string][]byte, len(scripts))
	for id, def := range scripts {
		data[id] = []byte(def)
	}
	return &Source{scripts: data}
}

// Put adds or replaces a script definition.
func (s *Source) Put(id string, def []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts[id] = append([]byte(nil), def...)
}

// Get retrieves the raw definition of a script by ID.
func (s *Source) Get(id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.scripts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrScriptNotFound, id)
	}
	return def, nil
}

// List returns all available script IDs in deterministic order.
func (s *Source) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.scripts))
	for id := range s.scripts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
