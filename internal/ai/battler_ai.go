package ai

import (
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/skirmish/internal/data"
	"github.com/udisondev/skirmish/internal/game/geo"
	"github.com/udisondev/skirmish/internal/game/skill"
	"github.com/udisondev/skirmish/internal/model"
)

// ScanFunc visits live battlers until fn returns false.
// Injected by the world to avoid an import cycle.
type ScanFunc func(fn func(*model.Battler) bool)

// GetBattlerFunc looks up a live battler by objectID.
type GetBattlerFunc func(objectID uint32) (*model.Battler, bool)

// SubmitFunc nominates a slot of a battler for the gate.
type SubmitFunc func(battlerID uint32, key skill.SlotKey)

// MoveFunc requests one step of a battler. If nil, the AI never moves.
type MoveFunc func(b *model.Battler, d geo.Direction)

// ActionLookup resolves action templates.
type ActionLookup interface {
	Get(id skill.ActionID) *data.ActionTemplate
}

// Options tunes target acquisition.
type Options struct {
	// AggroRange is the distance at which enemies in sight are noticed.
	AggroRange int
	// ChaseRange is the distance at which a target is abandoned.
	// Zero means twice AggroRange.
	ChaseRange int
}

// attackOrder is the slot nomination order: combat slots in bank order,
// then secondary, then primary. The first ready slot in range wins.
var attackOrder = buildAttackOrder()

func buildAttackOrder() []skill.SlotKey {
	order := make([]skill.SlotKey, 0, skill.SlotCount)
	for _, key := range skill.AllSlots() {
		if key.IsCombat() {
			order = append(order, key)
		}
	}
	return append(order, skill.SlotSecondary, skill.SlotPrimary)
}

// BattlerAI drives an autonomous battler: it picks the nearest visible enemy,
// nominates ready slots whose action reaches the target and otherwise walks
// toward it one navigator step at a time.
type BattlerAI struct {
	battler *model.Battler
	grid    *geo.Map
	nav     *geo.Navigator
	actions ActionLookup
	opts    Options

	isRunning atomic.Bool
	intention atomic.Int32

	// Callbacks (injected to avoid import cycles)
	scanFunc   ScanFunc
	getFunc    GetBattlerFunc
	submitFunc SubmitFunc
	moveFunc   MoveFunc
}

// NewBattlerAI creates a controller for battler.
func NewBattlerAI(
	battler *model.Battler,
	grid *geo.Map,
	nav *geo.Navigator,
	actions ActionLookup,
	opts Options,
	scanFunc ScanFunc,
	getFunc GetBattlerFunc,
	submitFunc SubmitFunc,
) *BattlerAI {
	if opts.ChaseRange <= 0 {
		opts.ChaseRange = opts.AggroRange * 2
	}
	return &BattlerAI{
		battler:    battler,
		grid:       grid,
		nav:        nav,
		actions:    actions,
		opts:       opts,
		scanFunc:   scanFunc,
		getFunc:    getFunc,
		submitFunc: submitFunc,
	}
}

// SetMoveFunc sets the movement callback.
func (ai *BattlerAI) SetMoveFunc(fn MoveFunc) {
	ai.moveFunc = fn
}

// Start starts the AI controller
func (ai *BattlerAI) Start() {
	ai.isRunning.Store(true)
	ai.SetIntention(model.IntentionActive)
}

// Stop stops the AI controller and drops its target
func (ai *BattlerAI) Stop() {
	ai.isRunning.Store(false)
	ai.SetIntention(model.IntentionIdle)
	ai.battler.ClearTarget()
}

// SetIntention sets AI intention
func (ai *BattlerAI) SetIntention(intention model.Intention) {
	old := model.Intention(ai.intention.Swap(int32(intention)))

	if old != intention && IsDebugEnabled() {
		slog.Debug("AI intention changed",
			"battler", ai.battler.Name(),
			"objectID", ai.battler.ObjectID(),
			"from", old,
			"to", intention)
	}
}

// CurrentIntention returns current AI intention
func (ai *BattlerAI) CurrentIntention() model.Intention {
	return model.Intention(ai.intention.Load())
}

// Tick performs one decision: acquire or keep a target, act if a slot
// reaches it, otherwise step toward it.
func (ai *BattlerAI) Tick() {
	if !ai.isRunning.Load() || ai.battler.IsDead() {
		return
	}

	// Приказ идти к клетке важнее агрессии: шаги делает world.
	if _, ok := ai.battler.Nav().Goal(); ok {
		ai.SetIntention(model.IntentionMoveTo)
		return
	}

	target := ai.currentTarget()
	if target == nil {
		target = ai.findTarget()
		if target == nil {
			ai.SetIntention(model.IntentionActive)
			return
		}
		ai.battler.SetTarget(target.ObjectID())
		ai.SetIntention(model.IntentionAttack)

		if IsDebugEnabled() {
			slog.Debug("AI target acquired",
				"objectID", ai.battler.ObjectID(),
				"target", target.ObjectID())
		}
	}

	from, to := ai.battler.Location(), target.Location()
	if d := ai.nav.Greedy(from.X, from.Y, to.X, to.Y); d.Valid() {
		ai.battler.Nav().Face(d)
	}

	dist := from.Distance(to)
	if ai.tryAct(dist) {
		return
	}
	if dist > 1 {
		ai.chase(to)
	}
}

// currentTarget returns the kept target or nil when it must be dropped.
func (ai *BattlerAI) currentTarget() *model.Battler {
	id := ai.battler.Target()
	if id == 0 {
		return nil
	}

	t, ok := ai.getFunc(id)
	if !ok || !t.CanBeTargeted() ||
		ai.battler.Location().Distance(t.Location()) > ai.opts.ChaseRange {
		ai.battler.ClearTarget()
		return nil
	}
	return t
}

// findTarget returns the nearest visible enemy within aggro range.
// Ties go to the lowest objectID.
func (ai *BattlerAI) findTarget() *model.Battler {
	self := ai.battler
	loc := self.Location()

	var (
		best     *model.Battler
		bestDist int
	)
	ai.scanFunc(func(other *model.Battler) bool {
		if !self.IsEnemy(other) || !other.CanBeTargeted() {
			return true
		}
		ol := other.Location()
		dist := loc.Distance(ol)
		if dist > ai.opts.AggroRange || !ai.grid.CanSee(loc.X, loc.Y, ol.X, ol.Y) {
			return true
		}
		if best == nil || dist < bestDist || (dist == bestDist && other.ObjectID() < best.ObjectID()) {
			best, bestDist = other, dist
		}
		return true
	})
	return best
}

// tryAct nominates the first ready slot whose action reaches dist.
func (ai *BattlerAI) tryAct(dist int) bool {
	b := ai.battler
	if !b.CanAct() || b.IsCasting() {
		return false
	}

	bank := b.Actions().Bank()
	for _, key := range attackOrder {
		if !bank.IsUsable(key) || !bank.IsReady(key) {
			continue
		}
		tmpl := ai.actions.Get(bank.Effective(key))
		if tmpl == nil || tmpl.IsUtility() || dist > max(tmpl.Range, 1) {
			continue
		}
		ai.submitFunc(b.ObjectID(), key)
		return true
	}
	return false
}

func (ai *BattlerAI) chase(goal model.Location) {
	b := ai.battler
	if ai.moveFunc == nil || !b.CanMove() || b.IsCasting() {
		return
	}

	loc := b.Location()
	d := ai.nav.FindDirection(ai.grid, geo.Request{
		FromX: loc.X, FromY: loc.Y,
		GoalX: goal.X, GoalY: goal.Y,
	})
	if d.Valid() {
		ai.moveFunc(b, d)
	}
}
