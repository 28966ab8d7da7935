package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/skirmish/internal/game/element"
	"github.com/udisondev/skirmish/internal/game/skill"
	"github.com/udisondev/skirmish/internal/model"
)

// BattlerTemplate describes a kind of battler: stats, element tables and the
// starting loadout of its slot bank.
type BattlerTemplate struct {
	ID    int32  `yaml:"id"`
	Name  string `yaml:"name"`
	MaxHP int    `yaml:"max_hp"`

	// Capabilities defaults to everything enabled when omitted.
	Capabilities *model.Capabilities `yaml:"capabilities"`

	Profile        element.Profile `yaml:"profile"`
	Boost          element.Boost   `yaml:"boost"`
	AttackElements []element.ID    `yaml:"attack_elements"`

	// Loadout maps slot names to action ids.
	Loadout map[string]skill.ActionID `yaml:"loadout"`
	// Locked lists slot names locked after the loadout is assigned.
	Locked []string `yaml:"locked"`
}

// Caps returns the template capabilities.
func (t *BattlerTemplate) Caps() model.Capabilities {
	if t.Capabilities == nil {
		return model.FullCapabilities()
	}
	return *t.Capabilities
}

// NewBattler spawns a battler from the template and assigns its loadout.
func (t *BattlerTemplate) NewBattler(objectID uint32, team int32, loc model.Location) *model.Battler {
	b := model.NewBattler(objectID, t.Name, team, loc, t.MaxHP)
	b.SetTemplateID(t.ID)
	b.SetCapabilities(t.Caps())
	b.SetElementProfile(t.Profile)
	b.SetBoost(t.Boost)
	b.SetAttackElements(t.AttackElements)

	bank := b.Actions().Bank()
	for name, id := range t.Loadout {
		key, err := skill.ParseSlotKey(name)
		if err != nil {
			continue
		}
		bank.Assign(key, id)
	}
	for _, name := range t.Locked {
		if key, err := skill.ParseSlotKey(name); err == nil {
			bank.Lock(key)
		}
	}
	return b
}

func (t *BattlerTemplate) validate(actions *ActionTable) error {
	if t.ID <= 0 {
		return fmt.Errorf("battler %q: id must be positive, got %d", t.Name, t.ID)
	}
	if t.MaxHP <= 0 {
		return fmt.Errorf("battler %d: max_hp must be positive", t.ID)
	}
	for name, id := range t.Loadout {
		if _, err := skill.ParseSlotKey(name); err != nil {
			return fmt.Errorf("battler %d loadout: %w", t.ID, err)
		}
		if id != 0 && actions.Get(id) == nil {
			return fmt.Errorf("battler %d loadout %s: unknown action %d", t.ID, name, id)
		}
	}
	for _, name := range t.Locked {
		if _, err := skill.ParseSlotKey(name); err != nil {
			return fmt.Errorf("battler %d locked: %w", t.ID, err)
		}
	}
	return nil
}

// BattlerTable is an immutable lookup of battler templates by id.
type BattlerTable struct {
	templates map[int32]*BattlerTemplate
}

// NewBattlerTable validates templates against the action table.
func NewBattlerTable(templates []BattlerTemplate, actions *ActionTable) (*BattlerTable, error) {
	t := &BattlerTable{templates: make(map[int32]*BattlerTemplate, len(templates))}
	for i := range templates {
		tmpl := templates[i]
		if err := tmpl.validate(actions); err != nil {
			return nil, err
		}
		if _, exists := t.templates[tmpl.ID]; exists {
			return nil, fmt.Errorf("duplicate battler id %d", tmpl.ID)
		}
		t.templates[tmpl.ID] = &tmpl
	}
	return t, nil
}

// Get returns the template for id. Returns nil if not found.
func (t *BattlerTable) Get(id int32) *BattlerTemplate {
	if t == nil {
		return nil
	}
	return t.templates[id]
}

// Len returns the number of templates.
func (t *BattlerTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.templates)
}

type battlerFile struct {
	Battlers []BattlerTemplate `yaml:"battlers"`
}

// ParseBattlers decodes a battlers document.
func ParseBattlers(raw []byte, actions *ActionTable) (*BattlerTable, error) {
	var f battlerFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing battlers: %w", err)
	}
	return NewBattlerTable(f.Battlers, actions)
}

// LoadBattlers reads battler templates from a YAML file.
func LoadBattlers(path string, actions *ActionTable) (*BattlerTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading battlers %s: %w", path, err)
	}
	table, err := ParseBattlers(raw, actions)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	slog.Info("loaded battler templates", "count", table.Len())
	return table, nil
}
