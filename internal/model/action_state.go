package model

import (
	"slices"

	"github.com/udisondev/skirmish/internal/game/skill"
)

// Batch is an ordered list of actions decided from one slot.
type Batch struct {
	Slot    skill.SlotKey
	Actions []skill.ActionID
}

// ActionState is the action component of a battler: its slot bank, the
// decided batches waiting for execution and the cast timer.
type ActionState struct {
	bank *skill.Bank

	castRemaining int
	pending       []Batch

	guarding bool
}

// NewActionState creates an ActionState with an empty bank.
func NewActionState() *ActionState {
	return &ActionState{bank: skill.NewBank()}
}

// Bank returns the slot bank.
func (a *ActionState) Bank() *skill.Bank {
	return a.bank
}

// IsCasting reports whether a cast timer is running.
func (a *ActionState) IsCasting() bool {
	return a.castRemaining > 0
}

// CastRemaining returns the remaining cast ticks.
func (a *ActionState) CastRemaining() int {
	return a.castRemaining
}

// Decide queues a batch and starts the cast timer.
// A committed batch is never revoked here.
func (a *ActionState) Decide(slot skill.SlotKey, actions []skill.ActionID, castTicks int) {
	a.pending = append(a.pending, Batch{Slot: slot, Actions: slices.Clone(actions)})
	a.castRemaining = max(a.castRemaining, castTicks, 0)
}

// Decided returns the batches committed but not yet taken for execution.
func (a *ActionState) Decided() []Batch {
	return slices.Clone(a.pending)
}

// TakeReady returns and clears the pending batches once no cast is running.
func (a *ActionState) TakeReady() []Batch {
	if a.IsCasting() || len(a.pending) == 0 {
		return nil
	}
	ready := a.pending
	a.pending = nil
	return ready
}

// HoldGuard keeps the guard up for the current tick.
func (a *ActionState) HoldGuard() {
	a.guarding = true
}

// IsGuarding reports whether the guard is up.
func (a *ActionState) IsGuarding() bool {
	return a.guarding
}

// Tick advances the bank and the cast timer by one step.
// The guard drops; only a press in the new step raises it again.
func (a *ActionState) Tick() {
	a.bank.Tick()

	if a.castRemaining > 0 {
		a.castRemaining--
	}

	a.guarding = false
}
