package tactics

import (
	"testing"

	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/random"
	"pgregory.net/rapid"
)

type weights map[string]float64

func (w weights) TacticWeight(t string) float64 {
	if v, ok := w[t]; ok {
		return v
	}
	return 1
}

func TestCatalogShape(t *testing.T) {
	want := map[Type]int{Strafe: 3, Peek: 3, Push: 3, Retreat: 2, Hold: 2, Flank: 1}
	for typ, n := range want {
		if got := len(PatternsByType(typ)); got != n {
			t.Errorf("%s: %d patterns, want %d", typ, got, n)
		}
	}
	if len(Catalog()) != 14 {
		t.Fatalf("catalog has %d patterns, want 14", len(Catalog()))
	}

	def := Default()
	for _, a := range []float64{0.1, 0.5, 0.95} {
		for _, h := range []float64{0, 0.5, 1} {
			if !def.Admits(a, h, false) {
				t.Fatalf("default pattern rejects aggression %.2f health %.2f", a, h)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	p, ok := Lookup("push_zigzag")
	if !ok || p.Type != Push || p.Path != PathZigzag {
		t.Fatalf("Lookup(push_zigzag) = %+v, %v", p, ok)
	}
	if _, ok := Lookup("moonwalk"); ok {
		t.Fatal("unknown id resolved")
	}
}

func TestSelectIsAdmissible(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		state := rapid.SampledFrom(components.BotStates).Draw(t, "state")
		aggression := rapid.Float64Range(0.1, 0.95).Draw(t, "aggression")
		health := rapid.Float64Range(0, 1).Draw(t, "health")
		hasCover := rapid.Bool().Draw(t, "cover")
		seed := rapid.Uint64().Draw(t, "seed")

		s := NewSelector(random.New(seed), config.DefaultTuning())
		for i := 0; i < 3; i++ {
			p := s.Select(state, aggression, health, hasCover, nil)
			if p == nil {
				t.Fatal("nil pattern")
			}
			if !p.Admits(aggression, health, hasCover) {
				t.Fatalf("%s not admissible at aggression %.3f health %.3f cover %v", p.ID, aggression, health, hasCover)
			}
			if p.ID != DefaultPatternID && !TypeAllowed(state, p.Type) {
				t.Fatalf("%s (%s) not allowed in %s", p.ID, p.Type, state)
			}
		}
	})
}

func TestRetreatStateTypes(t *testing.T) {
	s := NewSelector(random.New(7), config.DefaultTuning())
	for i := 0; i < 50; i++ {
		p := s.Select(components.StateRetreat, 0.3, 0.2, true, nil)
		if p.Type != Retreat && p.Type != Peek {
			t.Fatalf("retreat state picked %s (%s)", p.ID, p.Type)
		}
	}
}

func TestFallsBackToDefault(t *testing.T) {
	s := NewSelector(random.Fixed(0.5), config.DefaultTuning())
	p := s.Select(components.StatePatrol, 0.95, 0, false, nil)
	if p.ID != DefaultPatternID {
		t.Fatalf("got %s, want %s", p.ID, DefaultPatternID)
	}
}

func TestTiesGoToCatalogOrder(t *testing.T) {
	s := NewSelector(random.Fixed(0.5), config.DefaultTuning())
	p := s.Select(components.StateReposition, 0.5, 0, false, nil)
	if p.ID != "strafe_wide" {
		t.Fatalf("got %s, want strafe_wide ahead of retreat_backpedal", p.ID)
	}
}

func TestRepeatPenalty(t *testing.T) {
	s := NewSelector(random.Fixed(0.5), config.DefaultTuning())
	first := s.Select(components.StateEngage, 0.5, 1, false, nil)
	second := s.Select(components.StateEngage, 0.5, 1, false, nil)
	if first.ID == second.ID {
		t.Fatalf("picked %s twice in a row", first.ID)
	}
	third := s.Select(components.StateEngage, 0.5, 1, false, nil)
	if third.ID != first.ID {
		t.Fatalf("expected %s to win again once it was no longer the last pick, got %s", first.ID, third.ID)
	}
}

func TestWeightsSteerSelection(t *testing.T) {
	s := NewSelector(random.Fixed(0.5), config.DefaultTuning())
	p := s.Select(components.StateEngage, 0.7, 1, false, weights{"push": 5})
	if p.Type != Push {
		t.Fatalf("heavy push weight picked %s", p.ID)
	}
}

func TestAggressionFit(t *testing.T) {
	p := Default()
	cases := []struct {
		aggression float64
		want       float64
	}{
		{0.5, 1},
		{0.1, 0.8},
		{0.9, 0.8},
	}
	for _, c := range cases {
		if got := AggressionFit(p, c.aggression); got < c.want-1e-9 || got > c.want+1e-9 {
			t.Errorf("fit(%.1f) = %.4f, want %.4f", c.aggression, got, c.want)
		}
	}
}

func TestResetMatchesFresh(t *testing.T) {
	used := NewSelector(random.Fixed(0.5), config.DefaultTuning())
	used.Select(components.StateEngage, 0.5, 1, false, nil)
	used.Select(components.StateEngage, 0.6, 1, false, nil)
	used.Reset()

	fresh := NewSelector(random.Fixed(0.5), config.DefaultTuning())
	got := used.Select(components.StateEngage, 0.5, 1, false, nil)
	want := fresh.Select(components.StateEngage, 0.5, 1, false, nil)
	if got != want {
		t.Fatalf("after reset %s, fresh %s", got.ID, want.ID)
	}
}
