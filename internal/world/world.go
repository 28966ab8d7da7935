// Package world runs the simulation step: it ticks every battler, feeds
// queued intents through the gate, lands finished actions and moves
// battlers on the grid.
package world

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/udisondev/skirmish/internal/ai"
	"github.com/udisondev/skirmish/internal/data"
	"github.com/udisondev/skirmish/internal/game/combat"
	"github.com/udisondev/skirmish/internal/game/element"
	"github.com/udisondev/skirmish/internal/game/geo"
	"github.com/udisondev/skirmish/internal/game/skill"
	"github.com/udisondev/skirmish/internal/model"
)

// GuardDamageRate scales damage taken while guarding.
const GuardDamageRate = 0.5

// GoalGiveUpSteps is how many refused steps in a row make a walker drop its goal.
const GoalGiveUpSteps = 8

// Config wires the collaborators of a World.
type Config struct {
	Navigator *geo.Navigator
	Composer  *element.Composer
	AI        ai.Options
	Callbacks Callbacks
}

// World is one battlefield. Step does all work of a simulation step on the
// calling goroutine; Submit and SubmitMove may be called from anywhere.
type World struct {
	mu sync.Mutex // held for the whole of Step and by every state accessor

	grid     *geo.Map
	actions  *data.ActionTable
	reg      *model.Registry
	gate     *combat.Gate
	nav      *geo.Navigator
	composer *element.Composer
	aiMgr    *ai.TickManager
	aiOpts   ai.Options
	ids      *ObjectIDGenerator
	cb       Callbacks
	tick     uint64

	queueMu sync.Mutex
	intents []Intent
	moves   []MoveIntent
}

// New creates an empty World over grid.
func New(grid *geo.Map, actions *data.ActionTable, cfg Config) *World {
	if cfg.Navigator == nil {
		cfg.Navigator = geo.NewNavigator(geo.DefaultNavigatorOptions())
	}
	if cfg.Composer == nil {
		cfg.Composer = element.NewComposer(nil)
	}
	return &World{
		grid:     grid,
		actions:  actions,
		reg:      model.NewRegistry(),
		gate:     combat.NewGate(actions, grid),
		nav:      cfg.Navigator,
		composer: cfg.Composer,
		aiMgr:    ai.NewTickManager(),
		aiOpts:   cfg.AI,
		ids:      NewObjectIDGenerator(),
		cb:       cfg.Callbacks,
	}
}

// Spawn places a battler from a template. withAI attaches an autonomous controller.
func (w *World) Spawn(tmpl *data.BattlerTemplate, team int32, loc model.Location, withAI bool) (*model.Battler, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.grid.Walkable(loc.X, loc.Y) {
		return nil, fmt.Errorf("spawning %s: cell (%d,%d) is not walkable", tmpl.Name, loc.X, loc.Y)
	}
	if other := w.occupant(loc); other != nil {
		return nil, fmt.Errorf("spawning %s: cell (%d,%d) is occupied by %d", tmpl.Name, loc.X, loc.Y, other.ObjectID())
	}

	b := tmpl.NewBattler(w.ids.Next(), team, loc)
	if err := w.reg.Add(b); err != nil {
		return nil, fmt.Errorf("spawning %s: %w", tmpl.Name, err)
	}

	if withAI {
		ctrl := ai.NewBattlerAI(b, w.grid, w.nav, w.actions, w.aiOpts, w.reg.Range, w.reg.Get, w.submit)
		ctrl.SetMoveFunc(func(b *model.Battler, d geo.Direction) {
			w.submitMove(MoveIntent{BattlerID: b.ObjectID(), Dir: d})
		})
		w.aiMgr.Register(b.ObjectID(), ctrl)
	}

	slog.Debug("battler spawned",
		"objectID", b.ObjectID(),
		"name", b.Name(),
		"team", team,
		"x", loc.X, "y", loc.Y,
		"ai", withAI)
	return b, nil
}

// SpawnScenario spawns every battler of a scenario in order.
func (w *World) SpawnScenario(s *data.Scenario, battlers *data.BattlerTable) error {
	for i, sp := range s.Spawns {
		tmpl := battlers.Get(sp.Template)
		if tmpl == nil {
			return fmt.Errorf("spawn %d: unknown battler template %d", i, sp.Template)
		}
		if _, err := w.Spawn(tmpl, sp.Team, model.NewLocation(sp.X, sp.Y), sp.AI); err != nil {
			return fmt.Errorf("spawn %d: %w", i, err)
		}
	}
	return nil
}

// Submit queues a slot press for the next intent phase.
func (w *World) Submit(in Intent) {
	w.queueMu.Lock()
	w.intents = append(w.intents, in)
	w.queueMu.Unlock()
}

// SubmitMove queues a step request for the next movement phase.
func (w *World) SubmitMove(in MoveIntent) {
	w.queueMu.Lock()
	w.moves = append(w.moves, in)
	w.queueMu.Unlock()
}

func (w *World) submit(battlerID uint32, key skill.SlotKey) {
	w.Submit(Intent{BattlerID: battlerID, Slot: key})
}

func (w *World) submitMove(in MoveIntent) {
	w.SubmitMove(in)
}

// SetGoal makes a battler walk toward goal, one navigator step per tick.
func (w *World) SetGoal(battlerID uint32, goal model.Location) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	b, ok := w.reg.Get(battlerID)
	if !ok {
		return false
	}
	b.Nav().SetGoal(goal)
	return true
}

// View runs fn with the world locked. fn must not retain the battler.
func (w *World) View(battlerID uint32, fn func(*model.Battler)) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	b, ok := w.reg.Get(battlerID)
	if ok {
		fn(b)
	}
	return ok
}

// Intention returns what the AI of a battler is doing.
// ok is false for battlers without a controller.
func (w *World) Intention(battlerID uint32) (model.Intention, bool) {
	ctrl, err := w.aiMgr.GetController(battlerID)
	if err != nil {
		return model.IntentionIdle, false
	}
	return ctrl.CurrentIntention(), true
}

// Len returns the number of live battlers.
func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reg.Len()
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tick
}

// Snapshot returns the persisted slot state of every live battler.
func (w *World) Snapshot() map[uint32][]skill.SlotState {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := make(map[uint32][]skill.SlotState, w.reg.Len())
	w.reg.Range(func(b *model.Battler) bool {
		snap[b.ObjectID()] = b.Actions().Bank().Snapshot()
		return true
	})
	return snap
}

// Restore overwrites slot state of live battlers. Unknown IDs are skipped.
func (w *World) Restore(states map[uint32][]skill.SlotState) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	restored := 0
	for id, st := range states {
		if b, ok := w.reg.Get(id); ok {
			b.Actions().Bank().Restore(st)
			restored++
		}
	}
	return restored
}

// BattlerIDs returns live battler IDs in ascending order.
func (w *World) BattlerIDs() []uint32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reg.IDs()
}

// Run steps the world every interval until ctx is canceled.
func (w *World) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("simulation started", "interval", interval, "battlers", w.Len())

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation stopping", "tick", w.Tick())
			return ctx.Err()

		case <-ticker.C:
			w.Step()
		}
	}
}

// Step advances the simulation by one tick:
// tick every battler, run AI, drain intents through the gate, land finished
// actions, apply movement and emit changed slots.
func (w *World) Step() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.tick++
	ids := w.reg.IDs()

	for _, id := range ids {
		if b, ok := w.reg.Get(id); ok {
			w.gate.Tick(b)
		}
	}

	w.aiMgr.TickAll()

	w.queueMu.Lock()
	intents, moves := w.intents, w.moves
	w.intents, w.moves = nil, nil
	w.queueMu.Unlock()

	w.resolveIntents(intents)
	w.executeReady(ids)
	w.applyMoves(moves)
	w.emitDirtySlots()

	if IsDebugEnabled() {
		slog.Debug("step completed",
			"tick", w.tick,
			"battlers", w.reg.Len(),
			"intents", len(intents),
			"moves", len(moves))
	}
}

func (w *World) resolveIntents(intents []Intent) {
	for _, in := range intents {
		b, ok := w.reg.Get(in.BattlerID)
		if !ok {
			continue
		}

		d, reason := w.gate.Attempt(b, in.Slot)
		if reason != combat.RejectNone {
			if IsDebugEnabled() {
				slog.Debug("intent rejected",
					"objectID", in.BattlerID,
					"slot", in.Slot,
					"reason", reason)
			}
			continue
		}

		if d.Kind == data.KindEvasive {
			// Backstep: away from the facing, facing kept.
			w.step(b, b.Nav().Facing().Reverse(), false)
		}
		if w.cb.OnDecided != nil {
			w.cb.OnDecided(d)
		}
	}
}

func (w *World) executeReady(ids []uint32) {
	for _, id := range ids {
		b, ok := w.reg.Get(id)
		if !ok || b.IsDead() {
			continue
		}
		for _, batch := range b.Actions().TakeReady() {
			for _, actionID := range batch.Actions {
				tmpl := w.actions.Get(actionID)
				if tmpl == nil {
					continue
				}
				if target := w.targetOf(b, tmpl); target != nil {
					w.land(b, target, tmpl)
				}
			}
		}
	}
}

// targetOf picks who a finished action lands on: the selected target when
// valid and in reach, otherwise whoever stands in the facing cell. Healing
// falls back to the actor itself.
func (w *World) targetOf(b *model.Battler, tmpl *data.ActionTemplate) *model.Battler {
	reach := max(tmpl.Range, 1)
	valid := func(t *model.Battler) bool {
		if t == nil || !t.CanBeTargeted() || b.Location().Distance(t.Location()) > reach {
			return false
		}
		return tmpl.Healing != b.IsEnemy(t)
	}

	if id := b.Target(); id != 0 {
		if t, ok := w.reg.Get(id); ok && valid(t) {
			return t
		}
	}
	if t := w.occupant(b.Location().Step(b.Nav().Facing())); valid(t) {
		return t
	}
	if tmpl.Healing {
		return b
	}
	return nil
}

func (w *World) land(attacker, target *model.Battler, tmpl *data.ActionTemplate) {
	res := w.composer.Compose(tmpl.ElementAction(), attacker.Attacker(), target.ElementProfile())

	mult := res.Multiplier
	if res.Absorbed {
		// Absorbed elements turn the formula around.
		mult = -math.Abs(mult)
	}
	value := element.FinalizeDamage(tmpl.Power, mult, tmpl.Healing, res.Absorbed)

	guarded := value > 0 && target.Actions().IsGuarding()
	if guarded {
		value *= GuardDamageRate
	}

	hit := Hit{
		AttackerID: attacker.ObjectID(),
		TargetID:   target.ObjectID(),
		Action:     tmpl.ID,
		Multiplier: res.Multiplier,
		Amount:     target.ApplyDamage(int(math.Round(value))),
		Absorbed:   res.Absorbed,
		Guarded:    guarded,
		Defeated:   target.IsDead(),
	}

	if IsDebugEnabled() {
		slog.Debug("action landed",
			"attacker", hit.AttackerID,
			"target", hit.TargetID,
			"action", hit.Action,
			"multiplier", hit.Multiplier,
			"amount", hit.Amount)
	}
	if w.cb.OnHit != nil {
		w.cb.OnHit(hit)
	}
	if hit.Defeated {
		w.defeat(target)
	}
}

func (w *World) defeat(b *model.Battler) {
	w.reg.Remove(b.ObjectID())
	w.aiMgr.Unregister(b.ObjectID())

	slog.Info("battler defeated", "objectID", b.ObjectID(), "name", b.Name())
	if w.cb.OnDefeated != nil {
		w.cb.OnDefeated(b.ObjectID())
	}
}

func (w *World) applyMoves(moves []MoveIntent) {
	moved := make(map[uint32]bool, len(moves))
	for _, mv := range moves {
		b, ok := w.reg.Get(mv.BattlerID)
		if !ok || moved[mv.BattlerID] || b.IsCasting() {
			continue
		}
		if w.step(b, mv.Dir, true) {
			moved[mv.BattlerID] = true
		}
	}

	// Goal walkers take one navigator step unless they already moved.
	for _, id := range w.reg.IDs() {
		b, _ := w.reg.Get(id)
		goal, ok := b.Nav().Goal()
		if !ok || moved[id] || b.IsCasting() {
			continue
		}
		if other := w.occupant(goal); other != nil && other != b {
			w.dropGoal(b, "goal cell occupied")
			continue
		}
		loc := b.Location()
		d := w.nav.FindDirection(w.grid, geo.Request{FromX: loc.X, FromY: loc.Y, GoalX: goal.X, GoalY: goal.Y})
		if d == geo.DirNone {
			b.Nav().ClearGoal()
			continue
		}
		if !w.step(b, d, true) && b.Nav().RecordBlocked() >= GoalGiveUpSteps {
			w.dropGoal(b, "path blocked")
		}
	}
}

func (w *World) dropGoal(b *model.Battler, reason string) {
	b.Nav().ClearGoal()
	if IsDebugEnabled() {
		slog.Debug("goal dropped", "objectID", b.ObjectID(), "reason", reason)
	}
}

// step moves b one cell in direction d when the grid and occupancy allow.
// turn faces the battler along the step.
func (w *World) step(b *model.Battler, d geo.Direction, turn bool) bool {
	if !b.CanMove() || !d.Valid() {
		return false
	}
	loc := b.Location()
	if !geo.CanStep(w.grid, loc.X, loc.Y, d) {
		return false
	}
	to := loc.Step(d)
	if w.occupant(to) != nil {
		return false
	}

	b.SetLocation(to)
	if turn {
		b.Nav().RecordStep(d)
	}
	if w.cb.OnMove != nil {
		w.cb.OnMove(b.ObjectID(), d, to)
	}
	return true
}

func (w *World) emitDirtySlots() {
	w.reg.Range(func(b *model.Battler) bool {
		bank := b.Actions().Bank()
		for _, key := range bank.DirtySlots() {
			if w.cb.OnSlotChanged != nil {
				if slot, ok := bank.Slot(key); ok {
					w.cb.OnSlotChanged(b.ObjectID(), slot)
				}
			}
			bank.ClearDirty(key)
		}
		return true
	})
}

// occupant returns the live battler standing on loc.
func (w *World) occupant(loc model.Location) *model.Battler {
	var found *model.Battler
	w.reg.Range(func(b *model.Battler) bool {
		if b.Location() == loc {
			found = b
			return false
		}
		return true
	})
	return found
}
