package world

import "sync/atomic"

// ObjectIDGenerator hands out battler object IDs.
// IDs are sequential from 1 so that a scenario spawned in the same order
// gets the same IDs across restarts, which keys persisted slot state.
type ObjectIDGenerator struct {
	next atomic.Uint32
}

// NewObjectIDGenerator creates a generator whose first ID is 1.
func NewObjectIDGenerator() *ObjectIDGenerator {
	return &ObjectIDGenerator{}
}

// Next returns the next unique object ID. Thread-safe.
func (g *ObjectIDGenerator) Next() uint32 {
	return g.next.Add(1)
}
