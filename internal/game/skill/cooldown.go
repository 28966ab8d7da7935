package skill

// Cooldown is a per-slot countdown in ticks plus an independent combo window.
type Cooldown struct {
	Remaining int
	Base      int

	// ComboWindow counts down from the last Arm; when it reaches zero the
	// slot's combo successor is dropped.
	ComboWindow int
	comboArmed  bool

	// ComboExpired is set during the tick in which the combo window ran out.
	ComboExpired bool
}

// Arm restarts the cooldown. Negative durations clamp to zero.
// A non-positive combo window leaves the combo unarmed (it never expires).
func (c *Cooldown) Arm(totalTicks, comboWindowTicks int) {
	totalTicks = max(totalTicks, 0)
	c.Remaining = totalTicks
	c.Base = totalTicks
	c.ComboWindow = max(comboWindowTicks, 0)
	c.comboArmed = c.ComboWindow > 0
	c.ComboExpired = false
}

// Ready reports whether the cooldown has run out.
func (c *Cooldown) Ready() bool {
	return c.Remaining == 0
}

// ComboArmed reports whether a combo window is still counting down.
func (c *Cooldown) ComboArmed() bool {
	return c.comboArmed
}

// tick advances the cooldown by one step.
// Returns true when the combo window expired on this tick.
func (c *Cooldown) tick() bool {
	c.ComboExpired = false

	if c.Remaining > 0 {
		c.Remaining--
	}

	if !c.comboArmed {
		return false
	}
	if c.ComboWindow > 0 {
		c.ComboWindow--
	}
	if c.ComboWindow == 0 {
		c.comboArmed = false
		c.ComboExpired = true
		return true
	}
	return false
}
