package skill

// Slot is one action slot of a bank.
type Slot struct {
	Key      SlotKey
	ActionID ActionID
	// ComboID, when non-zero, replaces ActionID the next time the slot fires.
	ComboID  ActionID
	Cooldown Cooldown
	Locked   bool

	dirty bool
}

// Effective returns the action the slot fires next.
func (s *Slot) Effective() ActionID {
	if s.ComboID != 0 {
		return s.ComboID
	}
	return s.ActionID
}

// Usable reports whether the slot has an action assigned.
func (s *Slot) Usable() bool {
	return s.ActionID != 0
}

// Dirty reports whether the slot changed since the last ClearDirty.
func (s *Slot) Dirty() bool {
	return s.dirty
}

// SlotState is the persisted form of a slot. Cooldowns are stored as
// remaining ticks so resuming does not depend on wall-clock time.
type SlotState struct {
	Key               SlotKey
	ActionID          ActionID
	ComboID           ActionID
	CooldownRemaining int
	CooldownBase      int
	ComboWindow       int
	Locked            bool
}
