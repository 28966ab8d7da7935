// Package combat decides whether a battler's slot may fire and commits the
// decided actions to the battler.
package combat

import (
	"fmt"

	"github.com/udisondev/skirmish/internal/data"
	"github.com/udisondev/skirmish/internal/game/geo"
	"github.com/udisondev/skirmish/internal/game/skill"
	"github.com/udisondev/skirmish/internal/model"
)

// ActionLookup resolves action templates. Returns nil for unknown ids.
type ActionLookup interface {
	Get(id skill.ActionID) *data.ActionTemplate
}

// Obstacles reports whether something directly in front of a cell blocks
// interaction.
type Obstacles interface {
	BlocksInteraction(x, y int, d geo.Direction) bool
}

// RejectReason tells why the gate refused a slot.
type RejectReason uint8

const (
	RejectNone RejectReason = iota
	RejectCannotAct
	RejectInvalidSlot
	RejectObstructed
	RejectCooldown
	RejectNoAction
	RejectCasting
)

var rejectNames = [...]string{
	RejectNone:        "none",
	RejectCannotAct:   "cannot_act",
	RejectInvalidSlot: "invalid_slot",
	RejectObstructed:  "obstructed",
	RejectCooldown:    "cooldown",
	RejectNoAction:    "no_action",
	RejectCasting:     "casting",
}

func (r RejectReason) String() string {
	if int(r) < len(rejectNames) {
		return rejectNames[r]
	}
	return fmt.Sprintf("RejectReason(%d)", uint8(r))
}

// Decision is a committed slot press.
type Decision struct {
	BattlerID uint32
	Slot      skill.SlotKey
	Kind      data.ActionKind
	Actions   []skill.ActionID
	CastTicks int
}

// Gate is the legality check and commit step for slot presses.
// Not safe for concurrent use on the same battler.
type Gate struct {
	actions   ActionLookup
	obstacles Obstacles
}

// NewGate creates a Gate. obstacles may be nil when nothing blocks interaction.
func NewGate(actions ActionLookup, obstacles Obstacles) *Gate {
	return &Gate{actions: actions, obstacles: obstacles}
}

// Check runs the ordered rejection checks without committing anything.
// Returns the template that would fire, or the first failing reason.
//
// Order: cannot act, obstacle in front, cooldown, no usable action, casting.
// Guard and direction lock skip obstacle, cooldown and casting checks;
// evasive actions skip obstacle and casting checks.
func (g *Gate) Check(b *model.Battler, key skill.SlotKey) (*data.ActionTemplate, RejectReason) {
	if !b.CanAct() {
		return nil, RejectCannotAct
	}
	if !key.Valid() {
		return nil, RejectInvalidSlot
	}

	bank := b.Actions().Bank()
	tmpl := g.actions.Get(bank.Effective(key))

	kind := data.KindNormal
	if tmpl != nil {
		kind = tmpl.Kind
	}

	if checksObstacles(kind) && g.obstructed(b) {
		return nil, RejectObstructed
	}
	if checksCooldown(kind) && !bank.IsReady(key) {
		return nil, RejectCooldown
	}
	if !bank.IsUsable(key) || tmpl == nil {
		return nil, RejectNoAction
	}
	if checksCasting(kind) && b.IsCasting() {
		return nil, RejectCasting
	}
	return tmpl, RejectNone
}

// Attempt checks the slot and commits it on success.
func (g *Gate) Attempt(b *model.Battler, key skill.SlotKey) (Decision, RejectReason) {
	tmpl, reason := g.Check(b, key)
	if reason != RejectNone {
		return Decision{}, reason
	}
	return g.commit(b, key, tmpl), RejectNone
}

// Resolve checks the slot and commits it on success.
func (g *Gate) Resolve(b *model.Battler, key skill.SlotKey) (Decision, bool) {
	d, reason := g.Attempt(b, key)
	return d, reason == RejectNone
}

// ResolveAll resolves every key independently, in the given order.
// There is no cross-slot priority; a rejection does not affect the others.
func (g *Gate) ResolveAll(b *model.Battler, keys ...skill.SlotKey) []Decision {
	var decisions []Decision
	for _, key := range keys {
		if d, ok := g.Resolve(b, key); ok {
			decisions = append(decisions, d)
		}
	}
	return decisions
}

// ResolveByID looks the battler up in reg and resolves the slot.
func (g *Gate) ResolveByID(reg *model.Registry, battlerID uint32, key skill.SlotKey) (Decision, bool) {
	b, ok := reg.Get(battlerID)
	if !ok {
		return Decision{}, false
	}
	return g.Resolve(b, key)
}

// Tick advances the battler's bank, cast timer and held toggles by one step.
func (g *Gate) Tick(b *model.Battler) {
	b.Tick()
}

func (g *Gate) commit(b *model.Battler, key skill.SlotKey, tmpl *data.ActionTemplate) Decision {
	d := Decision{
		BattlerID: b.ObjectID(),
		Slot:      key,
		Kind:      tmpl.Kind,
		Actions:   []skill.ActionID{tmpl.ID},
	}

	switch tmpl.Kind {
	case data.KindGuard:
		b.Actions().HoldGuard()
		return d
	case data.KindDirectionLock:
		b.Nav().HoldDirectionLock()
		return d
	case data.KindNormal:
		d.CastTicks = tmpl.CastTicks
		b.Actions().Decide(key, d.Actions, tmpl.CastTicks)
	}

	// The combo step about to execute is consumed.
	bank := b.Actions().Bank()
	bank.AdvanceCombo(key, 0)
	bank.Arm(key, tmpl.CooldownTicks, tmpl.ComboWindowTicks)
	if tmpl.ComboNext != 0 {
		bank.AdvanceCombo(key, tmpl.ComboNext)
	}
	return d
}

func (g *Gate) obstructed(b *model.Battler) bool {
	if g.obstacles == nil {
		return false
	}
	loc := b.Location()
	return g.obstacles.BlocksInteraction(loc.X, loc.Y, b.Nav().Facing())
}

func checksObstacles(k data.ActionKind) bool { return k == data.KindNormal }

func checksCooldown(k data.ActionKind) bool {
	return k == data.KindNormal || k == data.KindEvasive
}

func checksCasting(k data.ActionKind) bool { return k == data.KindNormal }
