package model

import "github.com/udisondev/skirmish/internal/game/geo"

// NavigationState is the movement component of a battler.
type NavigationState struct {
	facing geo.Direction

	locked     bool
	goal       Location
	hasGoal    bool
	stepsTaken int
	// blocked counts goal steps refused in a row
	blocked int
}

// NewNavigationState creates a NavigationState facing down.
func NewNavigationState() *NavigationState {
	return &NavigationState{facing: geo.DirDown}
}

// Facing returns the direction the battler faces.
func (n *NavigationState) Facing() geo.Direction {
	return n.facing
}

// Face turns the battler unless its facing is locked.
func (n *NavigationState) Face(d geo.Direction) {
	if n.locked || !d.Valid() {
		return
	}
	n.facing = d
}

// HoldDirectionLock keeps the facing fixed for the current tick.
func (n *NavigationState) HoldDirectionLock() {
	n.locked = true
}

// DirectionLocked reports whether facing is fixed.
func (n *NavigationState) DirectionLocked() bool {
	return n.locked
}

// SetGoal sets the cell the battler walks toward.
func (n *NavigationState) SetGoal(goal Location) {
	n.goal = goal
	n.hasGoal = true
	n.blocked = 0
}

// ClearGoal stops goal-directed movement.
func (n *NavigationState) ClearGoal() {
	n.hasGoal = false
	n.blocked = 0
}

// Goal returns the current goal, if any.
func (n *NavigationState) Goal() (Location, bool) {
	return n.goal, n.hasGoal
}

// RecordStep notes a completed step and faces along it.
func (n *NavigationState) RecordStep(d geo.Direction) {
	n.stepsTaken++
	n.blocked = 0
	n.Face(d)
}

// RecordBlocked notes a refused goal step and returns how many were refused in a row.
func (n *NavigationState) RecordBlocked() int {
	n.blocked++
	return n.blocked
}

// StepsTaken returns the number of completed steps.
func (n *NavigationState) StepsTaken() int {
	return n.stepsTaken
}

// tick releases the direction lock; it is held only while pressed.
func (n *NavigationState) tick() {
	n.locked = false
}
