package element

import "slices"

// Result is the outcome of one composition.
type Result struct {
	Multiplier float64
	// Neutral is set when no elemental calculation applied.
	Neutral bool
	// Absorbed is set when an applicable element is absorbed by the target.
	Absorbed bool
}

// Composer folds an action's elements against a target profile into one
// damage multiplier. It holds only immutable configuration.
type Composer struct {
	antiNull []ID
}

// NewComposer creates a Composer. Elements listed in antiNull pierce
// nullification when they appear in a multi-element action.
func NewComposer(antiNull []ID) *Composer {
	return &Composer{antiNull: slices.Clone(antiNull)}
}

// Rate returns the combat multiplier including attacker boosts.
func (c *Composer) Rate(action Action, attacker Attacker, target Profile) float64 {
	return c.Compose(action, attacker, target).Multiplier
}

// RawRate returns the multiplier without attacker boosts, for previews.
func (c *Composer) RawRate(action Action, attacker Attacker, target Profile) float64 {
	return c.compose(action, attacker, target, false).Multiplier
}

// Absorbs reports whether the target absorbs any applicable element of action.
func (c *Composer) Absorbs(action Action, attacker Attacker, target Profile) bool {
	return c.Compose(action, attacker, target).Absorbed
}

// Compose runs the full composition including attacker boosts.
func (c *Composer) Compose(action Action, attacker Attacker, target Profile) Result {
	return c.compose(action, attacker, target, true)
}

func (c *Composer) compose(action Action, attacker Attacker, target Profile, boosted bool) Result {
	// None anywhere in the action means physical-neutral: the caller's
	// formula handles the multiplier.
	if action.BaseElement == None || slices.Contains(action.Elements, None) {
		return Result{Multiplier: 1.0, Neutral: true}
	}

	gathered := gather(action, attacker)
	if len(gathered) == 0 {
		return Result{Multiplier: 1.0, Neutral: true}
	}

	applicable := make([]ID, 0, len(gathered))
	for _, id := range gathered {
		if !target.Considers(id) || target.Rate(id) < 0 {
			continue
		}
		applicable = append(applicable, id)
	}
	if len(applicable) == 0 {
		return Result{}
	}

	rate := func(id ID) float64 {
		r := target.Rate(id)
		if boosted {
			r *= attacker.Boost.Of(id)
		}
		return r
	}

	absorbed := slices.ContainsFunc(applicable, target.IsAbsorbed)
	res := Result{Absorbed: absorbed}

	if len(applicable) == 1 {
		res.Multiplier = rate(applicable[0])
		return res
	}

	switch {
	case slices.ContainsFunc(applicable, c.isAntiNull):
		res.Multiplier = 1.0
		for _, id := range applicable {
			if r := rate(id); r != 0 {
				res.Multiplier *= r
			}
		}

	case absorbed:
		res.Multiplier = 1.0
		for _, id := range applicable {
			if target.IsAbsorbed(id) {
				res.Multiplier *= rate(id)
			}
		}

	default:
		res.Multiplier = 1.0
		for _, id := range applicable {
			r := rate(id)
			if r == 0 {
				res.Multiplier = 0
				break
			}
			res.Multiplier *= r
		}
	}

	return res
}

func (c *Composer) isAntiNull(id ID) bool {
	return slices.Contains(c.antiNull, id)
}

// gather collects the action's element ids in order without duplicates.
// AttackerOwn expands to the attacker's attack elements; a None among them
// contributes nothing.
func gather(action Action, attacker Attacker) []ID {
	ids := make([]ID, 0, len(action.Elements)+1)
	add := func(id ID) {
		switch id {
		case AttackerOwn:
			for _, own := range attacker.AttackElements {
				if own != None && own != AttackerOwn && !slices.Contains(ids, own) {
					ids = append(ids, own)
				}
			}
		default:
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}

	add(action.BaseElement)
	for _, id := range action.Elements {
		add(id)
	}
	return ids
}
