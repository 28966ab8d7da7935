package model

import (
	"slices"

	"github.com/udisondev/skirmish/internal/game/element"
)

// Capabilities is the capability set that makes a battler an agent.
type Capabilities struct {
	CanAct        bool `yaml:"can_act"`
	CanMove       bool `yaml:"can_move"`
	CanBeTargeted bool `yaml:"can_be_targeted"`
}

// FullCapabilities returns a capability set with everything enabled.
func FullCapabilities() Capabilities {
	return Capabilities{CanAct: true, CanMove: true, CanBeTargeted: true}
}

// Battler is an agent taking part in real-time combat.
// It owns its action and navigation components exclusively.
type Battler struct {
	WorldObject

	team       int32
	templateID int32
	caps       Capabilities

	hp    int
	maxHP int

	profile        element.Profile
	boost          element.Boost
	attackElements []element.ID

	actions *ActionState
	nav     *NavigationState

	targetID uint32 // 0 = no target
}

// NewBattler creates a battler with full capabilities and an empty bank.
func NewBattler(objectID uint32, name string, team int32, loc Location, maxHP int) *Battler {
	maxHP = max(maxHP, 1)
	return &Battler{
		WorldObject: NewWorldObject(objectID, name, loc),
		team:        team,
		caps:        FullCapabilities(),
		hp:          maxHP,
		maxHP:       maxHP,
		actions:     NewActionState(),
		nav:         NewNavigationState(),
	}
}

// Team returns the team affiliation.
func (b *Battler) Team() int32 { return b.team }

// TemplateID returns the template the battler was spawned from (0 if none).
func (b *Battler) TemplateID() int32 { return b.templateID }

// SetTemplateID records the template the battler was spawned from.
func (b *Battler) SetTemplateID(id int32) { b.templateID = id }

// Actions returns the action component.
func (b *Battler) Actions() *ActionState { return b.actions }

// Nav returns the navigation component.
func (b *Battler) Nav() *NavigationState { return b.nav }

// Capabilities returns the capability set.
func (b *Battler) Capabilities() Capabilities { return b.caps }

// SetCapabilities replaces the capability set (stun, root, untargetable...).
func (b *Battler) SetCapabilities(caps Capabilities) { b.caps = caps }

// CanAct reports whether the battler may act at all.
func (b *Battler) CanAct() bool { return b.caps.CanAct && !b.IsDead() }

// CanMove reports whether the battler may move.
func (b *Battler) CanMove() bool { return b.caps.CanMove && !b.IsDead() }

// CanBeTargeted reports whether actions may select the battler.
func (b *Battler) CanBeTargeted() bool { return b.caps.CanBeTargeted && !b.IsDead() }

// IsCasting reports whether a cast timer is running.
func (b *Battler) IsCasting() bool { return b.actions.IsCasting() }

// HP returns current hit points.
func (b *Battler) HP() int { return b.hp }

// MaxHP returns maximum hit points.
func (b *Battler) MaxHP() int { return b.maxHP }

// IsDead reports whether the battler has been defeated.
func (b *Battler) IsDead() bool { return b.hp <= 0 }

// ApplyDamage subtracts amount from HP (negative amounts heal), clamped to
// [0, MaxHP]. Returns the HP actually removed.
func (b *Battler) ApplyDamage(amount int) int {
	before := b.hp
	b.hp = min(max(b.hp-amount, 0), b.maxHP)
	return before - b.hp
}

// ElementProfile returns the battler's defensive element data.
func (b *Battler) ElementProfile() element.Profile { return b.profile }

// SetElementProfile replaces the defensive element data.
func (b *Battler) SetElementProfile(p element.Profile) { b.profile = p }

// SetBoost replaces the outgoing element boosts.
func (b *Battler) SetBoost(boost element.Boost) { b.boost = boost }

// SetAttackElements replaces the innate attack elements.
func (b *Battler) SetAttackElements(ids []element.ID) { b.attackElements = slices.Clone(ids) }

// Attacker returns the battler's attacking side for rate composition.
func (b *Battler) Attacker() element.Attacker {
	return element.Attacker{
		Boost:          b.boost,
		AttackElements: b.attackElements,
	}
}

// Target returns the object ID of the current target (0 if none).
func (b *Battler) Target() uint32 { return b.targetID }

// SetTarget selects the battler that finished actions are aimed at.
func (b *Battler) SetTarget(objectID uint32) { b.targetID = objectID }

// ClearTarget drops the current target.
func (b *Battler) ClearTarget() { b.targetID = 0 }

// IsEnemy reports whether other belongs to a different team.
func (b *Battler) IsEnemy(other *Battler) bool {
	return other != nil && other.ObjectID() != b.ObjectID() && other.team != b.team
}

// Tick advances the battler by one simulation step.
func (b *Battler) Tick() {
	b.actions.Tick()
	b.nav.tick()
}
