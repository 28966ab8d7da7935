package skill

import "fmt"

// ActionID identifies an action template. 0 is the empty sentinel.
type ActionID int32

// SlotKey identifies one slot of a battler's bank.
type SlotKey uint8

const (
	SlotPrimary SlotKey = iota
	SlotSecondary
	SlotUtility
	SlotEvasive
	SlotCombat1
	SlotCombat2
	SlotCombat3
	SlotCombat4

	// SlotCount is the fixed size of every bank.
	SlotCount = 8
)

var slotNames = [SlotCount]string{
	"primary", "secondary", "utility", "evasive",
	"combat1", "combat2", "combat3", "combat4",
}

// Valid reports whether k names a slot.
func (k SlotKey) Valid() bool {
	return k < SlotCount
}

// IsCore reports whether k is one of the always-present slots
// (primary, secondary, utility) that automated replacement never empties.
func (k SlotKey) IsCore() bool {
	return k == SlotPrimary || k == SlotSecondary || k == SlotUtility
}

// IsCombat reports whether k is one of the freely assignable combat slots.
func (k SlotKey) IsCombat() bool {
	return k >= SlotCombat1 && k <= SlotCombat4
}

// String returns the slot name used in data files and logs.
func (k SlotKey) String() string {
	if !k.Valid() {
		return fmt.Sprintf("SlotKey(%d)", uint8(k))
	}
	return slotNames[k]
}

// ParseSlotKey resolves a slot name.
func ParseSlotKey(name string) (SlotKey, error) {
	for i, n := range slotNames {
		if n == name {
			return SlotKey(i), nil
		}
	}
	return 0, fmt.Errorf("unknown slot %q", name)
}

// AllSlots returns every slot key in bank order.
func AllSlots() []SlotKey {
	keys := make([]SlotKey, SlotCount)
	for i := range keys {
		keys[i] = SlotKey(i)
	}
	return keys
}
