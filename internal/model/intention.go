package model

// Intention represents the current goal of an autonomous battler.
type Intention int32

const (
	// IntentionIdle - controller stopped, battler does nothing on its own
	IntentionIdle Intention = iota
	// IntentionActive - looking for an enemy to engage
	IntentionActive
	// IntentionAttack - chasing and striking the current target
	IntentionAttack
	// IntentionMoveTo - walking toward a goal cell
	IntentionMoveTo
)

// String returns human-readable intention name
func (i Intention) String() string {
	switch i {
	case IntentionIdle:
		return "IDLE"
	case IntentionActive:
		return "ACTIVE"
	case IntentionAttack:
		return "ATTACK"
	case IntentionMoveTo:
		return "MOVE_TO"
	default:
		return "UNKNOWN"
	}
}
