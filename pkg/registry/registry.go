package registry

import (
	"fmt"
	"sync"
)

// Registry is the in-memory material registry.
// The zero value is not usable; create one with New.
// A Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	lastID    MaterialID
	materials map[MaterialID]Material
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		materials: make(map[MaterialID]Material),
	}
}

// Register stores a new available material owned by caller and stamped with
// the logical height at. It returns the newly allocated identifier.
func (r *Registry) Register(d Details, caller Principal, at Height) MaterialID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.lastID + 1
	r.lastID = id
	r.materials[id] = newMaterial(id, d, caller, at)

	return id
}

// GetMaterial returns a copy of the material with the given identifier.
// The boolean is false if no such material exists.
func (r *Registry) GetMaterial(id MaterialID) (Material, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.materials[id]
	return m, ok
}

// MaterialCount returns the number of materials registered so far, which is
// also the highest allocated identifier.
func (r *Registry) MaterialCount() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return uint64(r.lastID)
}

// UpdateAvailability sets the availability flag of a material.
// Returns ErrNotFound if the material does not exist and ErrUnauthorized if
// caller is not its owner. Nothing is modified on error.
func (r *Registry) UpdateAvailability(id MaterialID, available bool, caller Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.materials[id]
	if !ok {
		return fmt.Errorf("material %d: %w", id, ErrNotFound)
	}

	if m.Owner != caller {
		return fmt.Errorf("material %d: %w", id, ErrUnauthorized)
	}

	m.Available = available
	r.materials[id] = m

	return nil
}
