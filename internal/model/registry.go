package model

import (
	"fmt"
	"slices"
)

// Registry is the set of live battlers keyed by ObjectID.
// It is passed explicitly to whatever needs battler lookup.
// Not safe for concurrent use.
type Registry struct {
	battlers map[uint32]*Battler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{battlers: make(map[uint32]*Battler)}
}

// Add registers a battler. Duplicate object IDs are rejected.
func (r *Registry) Add(b *Battler) error {
	if _, exists := r.battlers[b.ObjectID()]; exists {
		return fmt.Errorf("battler %d already registered", b.ObjectID())
	}
	r.battlers[b.ObjectID()] = b
	return nil
}

// Remove unregisters a battler and returns it.
func (r *Registry) Remove(objectID uint32) (*Battler, bool) {
	b, ok := r.battlers[objectID]
	if ok {
		delete(r.battlers, objectID)
	}
	return b, ok
}

// Get returns the battler with objectID.
func (r *Registry) Get(objectID uint32) (*Battler, bool) {
	b, ok := r.battlers[objectID]
	return b, ok
}

// Len returns the number of registered battlers.
func (r *Registry) Len() int {
	return len(r.battlers)
}

// Range calls fn for every battler in unspecified order until fn returns false.
func (r *Registry) Range(fn func(*Battler) bool) {
	for _, b := range r.battlers {
		if !fn(b) {
			return
		}
	}
}

// IDs returns the registered object IDs in ascending order.
func (r *Registry) IDs() []uint32 {
	ids := make([]uint32, 0, len(r.battlers))
	for id := range r.battlers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
