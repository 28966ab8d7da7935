package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

const (
	fire ID = iota + 1
	ice
	thunder
	holy
	dark
)

func TestComposerSingleElement(t *testing.T) {
	c := NewComposer(nil)
	target := Profile{Rates: map[ID]float64{fire: 2.0, ice: 0.5}}
	attacker := Attacker{Boost: Boost{fire: 1.5}}

	assert.InDelta(t, 3.0, c.Rate(Action{BaseElement: fire}, attacker, target), 1e-9)
	assert.InDelta(t, 2.0, c.RawRate(Action{BaseElement: fire}, attacker, target), 1e-9)
	assert.InDelta(t, 0.5, c.Rate(Action{BaseElement: ice}, attacker, target), 1e-9)
	assert.InDelta(t, 1.0, c.Rate(Action{BaseElement: thunder}, attacker, target), 1e-9, "missing rate is normal")
}

func TestComposerNeutral(t *testing.T) {
	c := NewComposer(nil)
	target := Profile{Rates: map[ID]float64{fire: 0}, Strict: []ID{fire}}

	res := c.Compose(Action{BaseElement: None}, Attacker{}, target)
	assert.True(t, res.Neutral)
	assert.Equal(t, 1.0, res.Multiplier)

	// Attacker with no innate elements: nothing to compute.
	res = c.Compose(Action{BaseElement: AttackerOwn}, Attacker{}, target)
	assert.True(t, res.Neutral)
	assert.Equal(t, 1.0, res.Multiplier)
}

func TestComposerNoneShortCircuits(t *testing.T) {
	c := NewComposer([]ID{fire})
	target := Profile{Rates: map[ID]float64{fire: 2, ice: 0}, Absorbed: []ID{fire}}
	attacker := Attacker{Boost: Boost{fire: 3}, AttackElements: []ID{ice}}

	tests := []struct {
		name   string
		action Action
	}{
		{"none base with extra elements", Action{BaseElement: None, Elements: []ID{fire}}},
		{"none among extra elements", Action{BaseElement: fire, Elements: []ID{None, ice}}},
		{"none after attacker own", Action{BaseElement: AttackerOwn, Elements: []ID{None}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Compose(tt.action, attacker, target)
			assert.Equal(t, Result{Multiplier: 1.0, Neutral: true}, res)
			assert.Equal(t, 1.0, c.RawRate(tt.action, attacker, target))
			assert.False(t, c.Absorbs(tt.action, attacker, target))
		})
	}
}

func TestComposerAttackerOwnElements(t *testing.T) {
	c := NewComposer(nil)
	target := Profile{Rates: map[ID]float64{fire: 2.0, ice: 0.5}}
	attacker := Attacker{AttackElements: []ID{fire, ice}}

	assert.InDelta(t, 1.0, c.Rate(Action{BaseElement: AttackerOwn}, attacker, target), 1e-9)

	attacker.AttackElements = []ID{ice}
	assert.InDelta(t, 0.5, c.Rate(Action{BaseElement: AttackerOwn}, attacker, target), 1e-9)
}

func TestComposerStrictFiltering(t *testing.T) {
	c := NewComposer(nil)
	target := Profile{
		Rates:  map[ID]float64{fire: 2.0},
		Strict: []ID{holy},
	}

	assert.Equal(t, 0.0, c.Rate(Action{BaseElement: fire}, Attacker{}, target), "fully resisted by strictness")
	assert.InDelta(t, 1.0, c.Rate(Action{BaseElement: fire, Elements: []ID{holy}}, Attacker{}, target), 1e-9)

	// Empty, non-nil strict set considers nothing.
	target.Strict = []ID{}
	assert.Equal(t, 0.0, c.Rate(Action{BaseElement: holy}, Attacker{}, target))
}

func TestComposerNotApplicableRate(t *testing.T) {
	c := NewComposer(nil)
	target := Profile{Rates: map[ID]float64{fire: -1, ice: 0.5}}

	assert.Equal(t, 0.0, c.Rate(Action{BaseElement: fire}, Attacker{}, target))
	assert.InDelta(t, 0.5, c.Rate(Action{BaseElement: fire, Elements: []ID{ice}}, Attacker{}, target), 1e-9)
}

func TestComposerMultiElement(t *testing.T) {
	target := Profile{
		Rates: map[ID]float64{
			fire:    2.0,
			ice:     0.5,
			thunder: 0,
			holy:    1.5,
			dark:    3.0,
		},
		Absorbed: []ID{holy},
	}

	tests := []struct {
		name     string
		antiNull []ID
		elements []ID
		boost    Boost
		want     float64
	}{
		{"plain product", nil, []ID{fire, ice}, nil, 1.0},
		{"boosted product", nil, []ID{fire, dark}, Boost{dark: 2}, 12.0},
		{"null wins", nil, []ID{fire, thunder}, nil, 0},
		{"absorbed only", nil, []ID{holy, ice}, nil, 1.5},
		{"absorbed beats null", nil, []ID{holy, thunder}, nil, 1.5},
		{"absorbed boosted", nil, []ID{holy, fire}, Boost{holy: 2, fire: 10}, 3.0},
		{"anti-null drops zeros", []ID{fire}, []ID{fire, thunder, ice}, nil, 1.0},
		{"anti-null beats absorb", []ID{fire}, []ID{fire, holy}, nil, 3.0},
		{"duplicates reduce to one element", []ID{thunder}, []ID{thunder, thunder}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComposer(tt.antiNull)
			action := Action{BaseElement: AttackerOwn, Elements: tt.elements}
			got := c.Rate(action, Attacker{Boost: tt.boost}, target)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestComposerAntiNullFloor(t *testing.T) {
	c := NewComposer([]ID{fire})
	target := Profile{Rates: map[ID]float64{fire: 0, thunder: 0}}

	got := c.Rate(Action{BaseElement: fire, Elements: []ID{thunder}}, Attacker{}, target)
	assert.Equal(t, 1.0, got, "true damage when every rate is zero")
}

func TestComposerAbsorptionPriority(t *testing.T) {
	c := NewComposer(nil)
	target := Profile{
		Rates:    map[ID]float64{holy: 1.25, ice: 0.5},
		Absorbed: []ID{holy},
	}
	attacker := Attacker{Boost: Boost{holy: 2, ice: 3}}

	res := c.Compose(Action{BaseElement: holy, Elements: []ID{ice}}, attacker, target)
	assert.True(t, res.Absorbed)
	assert.InDelta(t, 1.25*2, res.Multiplier, 1e-9)
	assert.True(t, c.Absorbs(Action{BaseElement: holy, Elements: []ID{ice}}, attacker, target))
	assert.False(t, c.Absorbs(Action{BaseElement: ice}, attacker, target))
}

func TestComposerDuplicatesCollapse(t *testing.T) {
	c := NewComposer(nil)
	target := Profile{Rates: map[ID]float64{fire: 2}}

	got := c.Rate(Action{BaseElement: fire, Elements: []ID{fire, fire}}, Attacker{}, target)
	assert.InDelta(t, 2.0, got, 1e-9)
}

func TestComposerIdempotent(t *testing.T) {
	ids := rapid.SampledFrom([]ID{None, AttackerOwn, fire, ice, thunder, holy, dark})
	rates := rapid.SampledFrom([]float64{-1, 0, 0.5, 1, 1.5, 2})

	rapid.Check(t, func(t *rapid.T) {
		target := Profile{Rates: map[ID]float64{}}
		for _, id := range []ID{fire, ice, thunder, holy, dark} {
			target.Rates[id] = rates.Draw(t, "rate")
		}
		target.Absorbed = rapid.SliceOfN(ids, 0, 2).Draw(t, "absorbed")
		if rapid.Bool().Draw(t, "strict") {
			target.Strict = rapid.SliceOfN(ids, 0, 4).Draw(t, "strictSet")
		}

		attacker := Attacker{
			Boost:          Boost{fire: rates.Draw(t, "boost")},
			AttackElements: rapid.SliceOfN(ids, 0, 3).Draw(t, "own"),
		}
		action := Action{
			BaseElement: ids.Draw(t, "base"),
			Elements:    rapid.SliceOfN(ids, 0, 4).Draw(t, "elements"),
		}
		c := NewComposer(rapid.SliceOfN(ids, 0, 2).Draw(t, "antiNull"))

		first := c.Compose(action, attacker, target)
		second := c.Compose(action, attacker, target)
		if first != second {
			t.Fatalf("composition not idempotent: %+v then %+v", first, second)
		}
		if c.RawRate(action, attacker, target) != c.RawRate(action, attacker, target) {
			t.Fatalf("raw rate not idempotent")
		}
	})
}
