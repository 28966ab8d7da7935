package skill

// Bank is a battler's fixed set of action slots and their cooldown schedule.
//
// Every mutation is a guarded state change: unknown keys, locked slots and
// core slots under Autoclear are silently ignored. Not safe for concurrent
// use; the simulation advances banks from a single goroutine.
type Bank struct {
	slots [SlotCount]Slot
}

// NewBank creates a bank with every slot empty.
func NewBank() *Bank {
	b := &Bank{}
	for i := range b.slots {
		b.slots[i].Key = SlotKey(i)
	}
	return b
}

func (b *Bank) slot(key SlotKey) *Slot {
	if !key.Valid() {
		return nil
	}
	return &b.slots[key]
}

// Slot returns a copy of the slot state.
func (b *Bank) Slot(key SlotKey) (Slot, bool) {
	s := b.slot(key)
	if s == nil {
		return Slot{}, false
	}
	return *s, true
}

// Tick advances every slot by one step. A combo window that runs out
// drops the slot's combo successor; nothing else changes automatically.
func (b *Bank) Tick() {
	for i := range b.slots {
		s := &b.slots[i]
		if s.Cooldown.tick() {
			s.ComboID = 0
		}
	}
}

// Arm restarts the slot cooldown with totalTicks and a combo window of
// comboWindowTicks counted from now.
func (b *Bank) Arm(key SlotKey, totalTicks, comboWindowTicks int) {
	if s := b.slot(key); s != nil {
		s.Cooldown.Arm(totalTicks, comboWindowTicks)
	}
}

// IsReady reports whether the slot cooldown has run out.
func (b *Bank) IsReady(key SlotKey) bool {
	s := b.slot(key)
	return s != nil && s.Cooldown.Ready()
}

// IsUsable reports whether the slot holds an action. Empty slots never are.
func (b *Bank) IsUsable(key SlotKey) bool {
	s := b.slot(key)
	return s != nil && s.Usable()
}

// IsLocked reports whether the slot rejects reassignment.
func (b *Bank) IsLocked(key SlotKey) bool {
	s := b.slot(key)
	return s != nil && s.Locked
}

// Remaining returns the remaining cooldown ticks of the slot.
func (b *Bank) Remaining(key SlotKey) int {
	if s := b.slot(key); s != nil {
		return s.Cooldown.Remaining
	}
	return 0
}

// Effective returns the action the slot fires next (combo successor first).
func (b *Bank) Effective(key SlotKey) ActionID {
	if s := b.slot(key); s != nil {
		return s.Effective()
	}
	return 0
}

// Assign sets the slot action and marks the slot dirty.
// Locked slots are left unchanged.
func (b *Bank) Assign(key SlotKey, id ActionID) {
	s := b.slot(key)
	if s == nil || s.Locked {
		return
	}
	s.ActionID = id
	s.dirty = true
}

// AdvanceCombo sets the slot combo successor. The cooldown is untouched.
func (b *Bank) AdvanceCombo(key SlotKey, next ActionID) {
	if s := b.slot(key); s != nil {
		s.ComboID = next
	}
}

// Lock makes the slot reject reassignment.
func (b *Bank) Lock(key SlotKey) {
	if s := b.slot(key); s != nil {
		s.Locked = true
	}
}

// Unlock allows reassignment again.
func (b *Bank) Unlock(key SlotKey) {
	if s := b.slot(key); s != nil {
		s.Locked = false
	}
}

// Clear unlocks the slot and zeroes its action and combo successor.
func (b *Bank) Clear(key SlotKey) {
	s := b.slot(key)
	if s == nil {
		return
	}
	s.Locked = false
	s.ActionID = 0
	s.ComboID = 0
	s.dirty = true
}

// Autoclear zeroes the slot unless it is a core slot or locked.
// Used by automated skill replacement, which must never empty core slots.
func (b *Bank) Autoclear(key SlotKey) {
	s := b.slot(key)
	if s == nil || key.IsCore() || s.Locked {
		return
	}
	s.ActionID = 0
	s.ComboID = 0
	s.dirty = true
}

// DirtySlots returns the keys of slots changed since their last ClearDirty.
func (b *Bank) DirtySlots() []SlotKey {
	var keys []SlotKey
	for i := range b.slots {
		if b.slots[i].dirty {
			keys = append(keys, SlotKey(i))
		}
	}
	return keys
}

// ClearDirty resets the dirty flag of the slot.
func (b *Bank) ClearDirty(key SlotKey) {
	if s := b.slot(key); s != nil {
		s.dirty = false
	}
}

// Snapshot returns the persisted form of every slot.
func (b *Bank) Snapshot() []SlotState {
	states := make([]SlotState, 0, SlotCount)
	for i := range b.slots {
		s := &b.slots[i]
		states = append(states, SlotState{
			Key:               s.Key,
			ActionID:          s.ActionID,
			ComboID:           s.ComboID,
			CooldownRemaining: s.Cooldown.Remaining,
			CooldownBase:      s.Cooldown.Base,
			ComboWindow:       s.Cooldown.ComboWindow,
			Locked:            s.Locked,
		})
	}
	return states
}

// Restore overwrites slots from persisted states, bypassing lock guards.
// States with unknown keys are skipped. Restored slots are not dirty.
func (b *Bank) Restore(states []SlotState) {
	for _, st := range states {
		s := b.slot(st.Key)
		if s == nil {
			continue
		}
		base := max(st.CooldownBase, 0)
		remaining := min(max(st.CooldownRemaining, 0), base)
		window := max(st.ComboWindow, 0)

		s.ActionID = st.ActionID
		s.ComboID = st.ComboID
		s.Locked = st.Locked
		s.Cooldown = Cooldown{
			Remaining:   remaining,
			Base:        base,
			ComboWindow: window,
			comboArmed:  window > 0,
		}
		s.dirty = false
	}
}
