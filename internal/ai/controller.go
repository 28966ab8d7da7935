package ai

import "github.com/udisondev/skirmish/internal/model"

// Controller represents an autonomous intent source for one battler
type Controller interface {
	// Start starts AI controller
	Start()

	// Stop stops AI controller
	Stop()

	// SetIntention sets AI intention
	SetIntention(intention model.Intention)

	// CurrentIntention returns current AI intention
	CurrentIntention() model.Intention

	// Tick performs one AI decision (called once per simulation step)
	Tick()
}
