package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skirmish/internal/data"
	"github.com/udisondev/skirmish/internal/game/geo"
	"github.com/udisondev/skirmish/internal/game/skill"
	"github.com/udisondev/skirmish/internal/model"
)

const (
	actSlash   skill.ActionID = 10
	actBolt    skill.ActionID = 11
	actBurst   skill.ActionID = 12
	actGuard   skill.ActionID = 20
	actRoll    skill.ActionID = 21
	actLock    skill.ActionID = 22
	actChannel skill.ActionID = 30
)

func testActions(t *testing.T) *data.ActionTable {
	t.Helper()
	table, err := data.NewActionTable([]data.ActionTemplate{
		{ID: actSlash, Name: "Slash", CooldownTicks: 60},
		{ID: actBolt, Name: "Fire Bolt", CastTicks: 15, CooldownTicks: 30, ComboWindowTicks: 90, ComboNext: actBurst},
		{ID: actBurst, Name: "Fire Burst", CastTicks: 5, CooldownTicks: 40},
		{ID: actGuard, Name: "Guard", Kind: data.KindGuard},
		{ID: actRoll, Name: "Roll", Kind: data.KindEvasive, CooldownTicks: 45},
		{ID: actLock, Name: "Hold Stance", Kind: data.KindDirectionLock},
		{ID: actChannel, Name: "Channel", CastTicks: 20, CooldownTicks: 5},
	})
	require.NoError(t, err)
	return table
}

// wallAhead blocks interaction when facing the configured direction.
type wallAhead struct {
	dir geo.Direction
}

func (w wallAhead) BlocksInteraction(_, _ int, d geo.Direction) bool {
	return d == w.dir
}

func newKnight(loadout map[skill.SlotKey]skill.ActionID) *model.Battler {
	b := model.NewBattler(1, "Knight", 1, model.NewLocation(2, 2), 100)
	for key, id := range loadout {
		b.Actions().Bank().Assign(key, id)
	}
	return b
}

func tickN(g *Gate, b *model.Battler, n int) {
	for range n {
		g.Tick(b)
	}
}

func TestGatePrimarySixtyTickScenario(t *testing.T) {
	g := NewGate(testActions(t), nil)
	b := newKnight(map[skill.SlotKey]skill.ActionID{skill.SlotPrimary: actSlash})
	bank := b.Actions().Bank()

	d, ok := g.Resolve(b, skill.SlotPrimary)
	require.True(t, ok)
	assert.Equal(t, []skill.ActionID{actSlash}, d.Actions)
	assert.Equal(t, 0, d.CastTicks)
	assert.Equal(t, 60, bank.Remaining(skill.SlotPrimary))

	for tick := 1; tick < 60; tick++ {
		g.Tick(b)
		require.False(t, bank.IsReady(skill.SlotPrimary), "tick %d", tick)
	}
	g.Tick(b)
	assert.True(t, bank.IsReady(skill.SlotPrimary))

	_, ok = g.Resolve(b, skill.SlotPrimary)
	assert.True(t, ok, "fires again without further input")
}

func TestGateRejectOrder(t *testing.T) {
	actions := testActions(t)

	t.Run("cannot act wins over everything", func(t *testing.T) {
		g := NewGate(actions, wallAhead{dir: geo.DirDown})
		b := newKnight(map[skill.SlotKey]skill.ActionID{skill.SlotPrimary: actSlash})
		b.Actions().Bank().Arm(skill.SlotPrimary, 10, 0)
		b.SetCapabilities(model.Capabilities{CanMove: true})

		_, reason := g.Attempt(b, skill.SlotPrimary)
		assert.Equal(t, RejectCannotAct, reason)
	})

	t.Run("invalid slot", func(t *testing.T) {
		g := NewGate(actions, nil)
		_, reason := g.Attempt(newKnight(nil), skill.SlotKey(42))
		assert.Equal(t, RejectInvalidSlot, reason)
	})

	t.Run("obstacle before cooldown", func(t *testing.T) {
		g := NewGate(actions, wallAhead{dir: geo.DirDown})
		b := newKnight(map[skill.SlotKey]skill.ActionID{skill.SlotPrimary: actSlash})
		b.Actions().Bank().Arm(skill.SlotPrimary, 10, 0)

		_, reason := g.Attempt(b, skill.SlotPrimary)
		assert.Equal(t, RejectObstructed, reason)

		b.Nav().Face(geo.DirUp)
		_, reason = g.Attempt(b, skill.SlotPrimary)
		assert.Equal(t, RejectCooldown, reason)
	})

	t.Run("cooldown before empty slot", func(t *testing.T) {
		g := NewGate(actions, nil)
		b := newKnight(nil)
		b.Actions().Bank().Arm(skill.SlotCombat1, 3, 0)

		_, reason := g.Attempt(b, skill.SlotCombat1)
		assert.Equal(t, RejectCooldown, reason)

		tickN(g, b, 3)
		_, reason = g.Attempt(b, skill.SlotCombat1)
		assert.Equal(t, RejectNoAction, reason)
	})

	t.Run("unknown template is no action", func(t *testing.T) {
		g := NewGate(actions, nil)
		b := newKnight(map[skill.SlotKey]skill.ActionID{skill.SlotPrimary: 999})

		_, reason := g.Attempt(b, skill.SlotPrimary)
		assert.Equal(t, RejectNoAction, reason)
	})

	t.Run("casting last", func(t *testing.T) {
		g := NewGate(actions, nil)
		b := newKnight(map[skill.SlotKey]skill.ActionID{
			skill.SlotPrimary:   actSlash,
			skill.SlotSecondary: actChannel,
		})

		_, ok := g.Resolve(b, skill.SlotSecondary)
		require.True(t, ok)
		require.True(t, b.IsCasting())

		_, reason := g.Attempt(b, skill.SlotPrimary)
		assert.Equal(t, RejectCasting, reason)

		tickN(g, b, 20)
		_, reason = g.Attempt(b, skill.SlotPrimary)
		assert.Equal(t, RejectNone, reason)
	})
}

func TestGateCommitStartsCast(t *testing.T) {
	g := NewGate(testActions(t), nil)
	b := newKnight(map[skill.SlotKey]skill.ActionID{skill.SlotCombat1: actBolt})

	d, ok := g.Resolve(b, skill.SlotCombat1)
	require.True(t, ok)
	assert.Equal(t, uint32(1), d.BattlerID)
	assert.Equal(t, skill.SlotCombat1, d.Slot)
	assert.Equal(t, data.KindNormal, d.Kind)
	assert.Equal(t, 15, d.CastTicks)

	assert.Equal(t, 15, b.Actions().CastRemaining())
	decided := b.Actions().Decided()
	require.Len(t, decided, 1)
	assert.Equal(t, []skill.ActionID{actBolt}, decided[0].Actions)
}

func TestGateComboChain(t *testing.T) {
	g := NewGate(testActions(t), nil)
	b := newKnight(map[skill.SlotKey]skill.ActionID{skill.SlotCombat1: actBolt})
	bank := b.Actions().Bank()

	d, ok := g.Resolve(b, skill.SlotCombat1)
	require.True(t, ok)
	assert.Equal(t, []skill.ActionID{actBolt}, d.Actions)
	assert.Equal(t, actBurst, bank.Effective(skill.SlotCombat1))

	tickN(g, b, 30)
	d, ok = g.Resolve(b, skill.SlotCombat1)
	require.True(t, ok)
	assert.Equal(t, []skill.ActionID{actBurst}, d.Actions, "combo successor fires")
	assert.Equal(t, actBolt, bank.Effective(skill.SlotCombat1), "combo step consumed")
	assert.Equal(t, 40, bank.Remaining(skill.SlotCombat1))
}

func TestGateComboExpires(t *testing.T) {
	g := NewGate(testActions(t), nil)
	b := newKnight(map[skill.SlotKey]skill.ActionID{skill.SlotCombat1: actBolt})
	bank := b.Actions().Bank()

	_, ok := g.Resolve(b, skill.SlotCombat1)
	require.True(t, ok)

	tickN(g, b, 89)
	assert.Equal(t, actBurst, bank.Effective(skill.SlotCombat1))
	g.Tick(b)
	assert.Equal(t, actBolt, bank.Effective(skill.SlotCombat1))
}

func TestGateGuard(t *testing.T) {
	g := NewGate(testActions(t), wallAhead{dir: geo.DirDown})
	b := newKnight(map[skill.SlotKey]skill.ActionID{
		skill.SlotUtility:   actGuard,
		skill.SlotSecondary: actChannel,
	})
	b.Actions().Bank().Arm(skill.SlotUtility, 10, 0)

	_, ok := g.Resolve(b, skill.SlotSecondary)
	require.False(t, ok, "blocked by the wall")
	b.Nav().Face(geo.DirUp)
	_, ok = g.Resolve(b, skill.SlotSecondary)
	require.True(t, ok)
	b.Nav().Face(geo.DirDown)

	d, ok := g.Resolve(b, skill.SlotUtility)
	require.True(t, ok, "guard ignores obstacle, cooldown and cast")
	assert.Equal(t, data.KindGuard, d.Kind)
	assert.True(t, b.Actions().IsGuarding())
	assert.Len(t, b.Actions().Decided(), 1, "guard does not queue a batch")

	g.Tick(b)
	assert.False(t, b.Actions().IsGuarding(), "released on the next tick without a press")

	_, ok = g.Resolve(b, skill.SlotUtility)
	require.True(t, ok, "held again")
	assert.True(t, b.Actions().IsGuarding())

	b.SetCapabilities(model.Capabilities{})
	_, reason := g.Attempt(b, skill.SlotUtility)
	assert.Equal(t, RejectCannotAct, reason)
}

func TestGateDirectionLock(t *testing.T) {
	g := NewGate(testActions(t), nil)
	b := newKnight(map[skill.SlotKey]skill.ActionID{skill.SlotCombat2: actLock})

	_, ok := g.Resolve(b, skill.SlotCombat2)
	require.True(t, ok)
	assert.True(t, b.Nav().DirectionLocked())

	b.Nav().RecordStep(geo.DirLeft)
	assert.Equal(t, geo.DirDown, b.Nav().Facing())

	g.Tick(b)
	assert.False(t, b.Nav().DirectionLocked())
	b.Nav().RecordStep(geo.DirLeft)
	assert.Equal(t, geo.DirLeft, b.Nav().Facing())
}

func TestGateEvasive(t *testing.T) {
	g := NewGate(testActions(t), wallAhead{dir: geo.DirDown})
	b := newKnight(map[skill.SlotKey]skill.ActionID{
		skill.SlotEvasive: actRoll,
		skill.SlotCombat1: actChannel,
	})
	b.Nav().Face(geo.DirUp)
	_, ok := g.Resolve(b, skill.SlotCombat1)
	require.True(t, ok)
	b.Nav().Face(geo.DirDown)

	d, ok := g.Resolve(b, skill.SlotEvasive)
	require.True(t, ok, "evasive ignores casting and obstacles")
	assert.Equal(t, data.KindEvasive, d.Kind)
	assert.Equal(t, 45, b.Actions().Bank().Remaining(skill.SlotEvasive))
	assert.Equal(t, 20, b.Actions().CastRemaining(), "cast untouched")

	_, reason := g.Attempt(b, skill.SlotEvasive)
	assert.Equal(t, RejectCooldown, reason)
}

func TestGateResolveAllIndependent(t *testing.T) {
	g := NewGate(testActions(t), nil)
	b := newKnight(map[skill.SlotKey]skill.ActionID{
		skill.SlotCombat1: actSlash,
		skill.SlotCombat3: actBurst,
		skill.SlotCombat4: actSlash,
	})
	b.Actions().Bank().Arm(skill.SlotCombat3, 5, 0)

	decisions := g.ResolveAll(b, skill.SlotCombat1, skill.SlotCombat2, skill.SlotCombat3, skill.SlotCombat4)
	require.Len(t, decisions, 2)
	assert.Equal(t, skill.SlotCombat1, decisions[0].Slot)
	assert.Equal(t, skill.SlotCombat4, decisions[1].Slot)
	assert.Len(t, b.Actions().Decided(), 2)
}

func TestGateResolveByID(t *testing.T) {
	g := NewGate(testActions(t), nil)
	reg := model.NewRegistry()
	require.NoError(t, reg.Add(newKnight(map[skill.SlotKey]skill.ActionID{skill.SlotPrimary: actSlash})))

	_, ok := g.ResolveByID(reg, 1, skill.SlotPrimary)
	assert.True(t, ok)

	_, ok = g.ResolveByID(reg, 2, skill.SlotPrimary)
	assert.False(t, ok)
}

func TestRejectReasonString(t *testing.T) {
	assert.Equal(t, "cooldown", RejectCooldown.String())
	assert.Equal(t, "RejectReason(99)", RejectReason(99).String())
}
