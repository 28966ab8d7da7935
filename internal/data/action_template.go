package data

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/skirmish/internal/game/element"
	"github.com/udisondev/skirmish/internal/game/skill"
)

// ActionKind определяет, какие проверки гейта применяются к действию.
type ActionKind int8

const (
	KindNormal        ActionKind = iota // Обычное действие: все проверки
	KindGuard                           // Блок: удерживается каждый тик, пока нажат
	KindDirectionLock                   // Фиксация направления взгляда
	KindEvasive                         // Уклонение: требует готовый cooldown, игнорирует каст
)

var kindNames = map[ActionKind]string{
	KindNormal:        "normal",
	KindGuard:         "guard",
	KindDirectionLock: "direction_lock",
	KindEvasive:       "evasive",
}

func (k ActionKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActionKind(%d)", int8(k))
}

// ParseActionKind resolves a kind name. The empty string is KindNormal.
func ParseActionKind(name string) (ActionKind, error) {
	if name == "" {
		return KindNormal, nil
	}
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return KindNormal, fmt.Errorf("unknown action kind %q", name)
}

// UnmarshalYAML decodes a kind from its name.
func (k *ActionKind) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseActionKind(name)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ActionTemplate - типизированное описание действия, собранное один раз при загрузке данных.
type ActionTemplate struct {
	ID   skill.ActionID `yaml:"id"`
	Name string         `yaml:"name"`
	Kind ActionKind     `yaml:"kind"`

	// Стихии
	BaseElement element.ID   `yaml:"base_element"`
	Elements    []element.ID `yaml:"elements"`

	// Тайминги (в тиках)
	CastTicks        int `yaml:"cast_ticks"`
	CooldownTicks    int `yaml:"cooldown_ticks"`
	ComboWindowTicks int `yaml:"combo_window_ticks"`

	// ComboNext - действие, которое слот выполнит при следующем нажатии
	// в пределах combo window (0 = нет).
	ComboNext skill.ActionID `yaml:"combo_next"`

	// Формула урона
	Healing bool    `yaml:"healing"`
	Power   float64 `yaml:"power"`
	Range   int     `yaml:"range"`
}

// ElementAction returns the element data consumed by the rate composer.
func (t *ActionTemplate) ElementAction() element.Action {
	return element.Action{BaseElement: t.BaseElement, Elements: t.Elements}
}

// IsUtility reports whether the gate special-cases the action.
func (t *ActionTemplate) IsUtility() bool {
	return t.Kind != KindNormal
}

func (t *ActionTemplate) validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("action %q: id must be positive, got %d", t.Name, t.ID)
	}
	if t.CastTicks < 0 || t.CooldownTicks < 0 || t.ComboWindowTicks < 0 {
		return fmt.Errorf("action %d: negative timing", t.ID)
	}
	if t.Range < 0 {
		return fmt.Errorf("action %d: negative range", t.ID)
	}
	if t.ComboNext == t.ID {
		return fmt.Errorf("action %d: combo successor points to itself", t.ID)
	}
	return nil
}
