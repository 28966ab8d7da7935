package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/skirmish/internal/game/geo"
)

// SpawnDef places one battler from a template.
type SpawnDef struct {
	Template int32 `yaml:"template"`
	Team     int32 `yaml:"team"`
	X        int   `yaml:"x"`
	Y        int   `yaml:"y"`
	// AI marks the battler as driven by the autonomous controller.
	AI bool `yaml:"ai"`
}

// Scenario is the battlefield: a tile layout and the initial spawns.
type Scenario struct {
	Name   string     `yaml:"name"`
	Layout []string   `yaml:"layout"`
	Spawns []SpawnDef `yaml:"spawns"`

	grid *geo.Map
}

// Map returns the parsed grid.
func (s *Scenario) Map() *geo.Map {
	return s.grid
}

// ParseScenario decodes a scenario and validates spawns against the grid and
// the battler templates.
func ParseScenario(raw []byte, battlers *BattlerTable) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}

	grid, err := geo.ParseLayout(s.Layout)
	if err != nil {
		return nil, fmt.Errorf("scenario %q layout: %w", s.Name, err)
	}
	s.grid = grid

	for i, sp := range s.Spawns {
		if battlers.Get(sp.Template) == nil {
			return nil, fmt.Errorf("spawn %d: unknown battler template %d", i, sp.Template)
		}
		if !grid.Walkable(sp.X, sp.Y) {
			return nil, fmt.Errorf("spawn %d: cell (%d,%d) is not walkable", i, sp.X, sp.Y)
		}
	}
	return &s, nil
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string, battlers *BattlerTable) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	s, err := ParseScenario(raw, battlers)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	slog.Info("loaded scenario",
		"name", s.Name,
		"width", s.grid.Width(),
		"height", s.grid.Height(),
		"spawns", len(s.Spawns))
	return s, nil
}
