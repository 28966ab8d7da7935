package data

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/skirmish/internal/game/skill"
)

// ActionTable is an immutable lookup of action templates by id.
type ActionTable struct {
	actions map[skill.ActionID]*ActionTemplate
}

// NewActionTable validates templates and builds the table.
// Duplicate ids and combo successors pointing at unknown actions are errors.
func NewActionTable(templates []ActionTemplate) (*ActionTable, error) {
	t := &ActionTable{actions: make(map[skill.ActionID]*ActionTemplate, len(templates))}

	for i := range templates {
		tmpl := templates[i]
		if err := tmpl.validate(); err != nil {
			return nil, err
		}
		if _, exists := t.actions[tmpl.ID]; exists {
			return nil, fmt.Errorf("duplicate action id %d", tmpl.ID)
		}
		tmpl.Elements = slices.Clone(tmpl.Elements)
		t.actions[tmpl.ID] = &tmpl
	}

	for _, tmpl := range t.actions {
		if tmpl.ComboNext == 0 {
			continue
		}
		if _, ok := t.actions[tmpl.ComboNext]; !ok {
			return nil, fmt.Errorf("action %d: unknown combo successor %d", tmpl.ID, tmpl.ComboNext)
		}
		// Combo window counts down from the same arm as the cooldown.
		if tmpl.ComboWindowTicks <= tmpl.CooldownTicks {
			slog.Warn("combo window ends before cooldown, successor is unreachable",
				"action", tmpl.ID,
				"cooldown_ticks", tmpl.CooldownTicks,
				"combo_window_ticks", tmpl.ComboWindowTicks)
		}
	}

	return t, nil
}

// Get returns the template for id. Returns nil if not found.
func (t *ActionTable) Get(id skill.ActionID) *ActionTemplate {
	if t == nil || id == 0 {
		return nil
	}
	return t.actions[id]
}

// Len returns the number of templates.
func (t *ActionTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.actions)
}

type actionFile struct {
	Actions []ActionTemplate `yaml:"actions"`
}

// ParseActions decodes an actions document.
func ParseActions(raw []byte) (*ActionTable, error) {
	var f actionFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing actions: %w", err)
	}
	return NewActionTable(f.Actions)
}

// LoadActions reads the action table from a YAML file.
func LoadActions(path string) (*ActionTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading actions %s: %w", path, err)
	}
	table, err := ParseActions(raw)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	slog.Info("loaded actions", "count", table.Len())
	return table, nil
}
