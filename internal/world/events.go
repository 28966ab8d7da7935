package world

import (
	"github.com/udisondev/skirmish/internal/game/combat"
	"github.com/udisondev/skirmish/internal/game/geo"
	"github.com/udisondev/skirmish/internal/game/skill"
	"github.com/udisondev/skirmish/internal/model"
)

// Intent nominates a slot of a battler, from input or AI.
type Intent struct {
	BattlerID uint32
	Slot      skill.SlotKey
}

// MoveIntent asks for one step of a battler.
type MoveIntent struct {
	BattlerID uint32
	Dir       geo.Direction
}

// Hit is one finished action landing on a target.
type Hit struct {
	AttackerID uint32
	TargetID   uint32
	Action     skill.ActionID
	// Multiplier is the composed elemental rate.
	Multiplier float64
	// Amount is the HP change applied: positive damages, negative heals.
	Amount   int
	Absorbed bool
	Guarded  bool
	Defeated bool
}

// Callbacks receive the outputs of a step. They run on the stepping
// goroutine with the world locked and must not call World methods other
// than Submit and SubmitMove.
type Callbacks struct {
	OnDecided     func(d combat.Decision)
	OnHit         func(h Hit)
	OnMove        func(battlerID uint32, d geo.Direction, to model.Location)
	OnSlotChanged func(battlerID uint32, slot skill.Slot)
	OnDefeated    func(battlerID uint32)
}
