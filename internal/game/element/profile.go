package element

import "slices"

// ID identifies an element.
type ID int32

const (
	// None is the physical-neutral element: no elemental calculation.
	None ID = 0
	// AttackerOwn expands to the attacker's innate attack elements.
	AttackerOwn ID = -1
)

// Profile is a target's per-element resistance data.
//
// Rates: missing entries are 1.0, 0 nulls the element, a negative rate
// marks the element as not applicable to this target.
// Strict, when non-nil, lists the only element ids considered at all.
type Profile struct {
	Rates    map[ID]float64 `yaml:"rates"`
	Absorbed []ID           `yaml:"absorbed"`
	Strict   []ID           `yaml:"strict"`
}

// Rate returns the target's base rate for id.
func (p Profile) Rate(id ID) float64 {
	if r, ok := p.Rates[id]; ok {
		return r
	}
	return 1.0
}

// IsAbsorbed reports whether the target absorbs id.
func (p Profile) IsAbsorbed(id ID) bool {
	return slices.Contains(p.Absorbed, id)
}

// Considers reports whether id passes the strict filter.
func (p Profile) Considers(id ID) bool {
	if p.Strict == nil {
		return true
	}
	return slices.Contains(p.Strict, id)
}

// Boost is an attacker's outgoing per-element multiplier table.
// Missing entries are 1.0.
type Boost map[ID]float64

// Of returns the boost for id.
func (b Boost) Of(id ID) float64 {
	if v, ok := b[id]; ok {
		return v
	}
	return 1.0
}

// Attacker is the attacking side of a rate composition.
type Attacker struct {
	Boost          Boost
	AttackElements []ID
}

// Action is the element data of one action.
type Action struct {
	BaseElement ID
	Elements    []ID
}
