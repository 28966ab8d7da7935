package ai

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// TickManager holds the AI controllers of all autonomous battlers.
// The simulation step calls TickAll once per step.
type TickManager struct {
	controllers     sync.Map // map[uint32]Controller - objectID → controller
	controllerCount atomic.Int32
}

// NewTickManager creates new AI tick manager
func NewTickManager() *TickManager {
	return &TickManager{}
}

// Register registers and starts the controller of a battler.
// An existing controller for the same battler is stopped and replaced.
func (m *TickManager) Register(objectID uint32, controller Controller) {
	if prev, loaded := m.controllers.Swap(objectID, controller); loaded {
		prev.(Controller).Stop()
	} else {
		m.controllerCount.Add(1)
	}
	controller.Start()

	slog.Debug("AI controller registered",
		"objectID", objectID,
		"intention", controller.CurrentIntention())
}

// Unregister stops and removes the controller of a battler
func (m *TickManager) Unregister(objectID uint32) {
	value, ok := m.controllers.LoadAndDelete(objectID)
	if !ok {
		return
	}

	m.controllerCount.Add(-1)
	value.(Controller).Stop()

	slog.Debug("AI controller unregistered", "objectID", objectID)
}

// TickAll ticks every registered controller in unspecified order.
func (m *TickManager) TickAll() {
	count := 0

	m.controllers.Range(func(_, value any) bool {
		value.(Controller).Tick()
		count++
		return true
	})

	if count > 0 && IsDebugEnabled() {
		slog.Debug("AI tick completed", "controllers", count)
	}
}

// Count returns number of registered controllers
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// GetController returns the controller of a battler
func (m *TickManager) GetController(objectID uint32) (Controller, error) {
	value, ok := m.controllers.Load(objectID)
	if !ok {
		return nil, fmt.Errorf("controller not found for objectID %d", objectID)
	}
	return value.(Controller), nil
}
