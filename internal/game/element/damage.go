package element

// FinalizeDamage applies the multiplier and the sign convention to a raw
// formula value.
//
// When the target absorbs an element of the action the product is returned
// as-is: no floor, no sign flip. Otherwise healing formulas yield -max(0, v)
// and damaging formulas max(0, v).
func FinalizeDamage(value, multiplier float64, healing, absorbs bool) float64 {
	v := value * multiplier
	if absorbs {
		return v
	}
	if healing {
		return -max(0, v)
	}
	return max(0, v)
}
