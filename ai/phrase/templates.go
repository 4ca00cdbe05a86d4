package phrase

import (
	"fmt"

	"github.com/automoto/arenabot/ai/tactics"
	"github.com/automoto/arenabot/components"
)

// Category is the tactical intent of a phrase.
type Category int

const (
	Pressure Category = iota
	Probe
	Punish
	Reset
)

var Categories = []Category{Pressure, Probe, Punish, Reset}

func (c Category) String() string {
	switch c {
	case Pressure:
		return "pressure"
	case Probe:
		return "probe"
	case Punish:
		return "punish"
	case Reset:
		return "reset"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Template is a phrase recipe: a category and the pattern types to fill.
type Template struct {
	ID            string
	Category      Category
	Types         []tactics.Type
	AggressionMin float64
	AggressionMax float64
	MinHealth     float64
	MaxHealth     float64
}

func (t Template) admits(aggression, health float64) bool {
	return aggression >= t.AggressionMin && aggression <= t.AggressionMax &&
		health >= t.MinHealth && health <= t.MaxHealth
}

var templates = []Template{
	{ID: "push_strafe", Category: Pressure, Types: []tactics.Type{tactics.Push, tactics.Strafe},
		AggressionMin: 0.55, AggressionMax: 1, MinHealth: 0.4, MaxHealth: 1},
	{ID: "flank_push", Category: Pressure, Types: []tactics.Type{tactics.Flank, tactics.Push, tactics.Strafe},
		AggressionMin: 0.6, AggressionMax: 1, MinHealth: 0.5, MaxHealth: 1},

	{ID: "peek_strafe", Category: Probe, Types: []tactics.Type{tactics.Peek, tactics.Strafe},
		AggressionMin: 0.3, AggressionMax: 0.7, MinHealth: 0.2, MaxHealth: 1},
	{ID: "strafe_peek_hold", Category: Probe, Types: []tactics.Type{tactics.Strafe, tactics.Peek, tactics.Hold},
		AggressionMin: 0.25, AggressionMax: 0.65, MinHealth: 0.3, MaxHealth: 1},

	{ID: "peek_push", Category: Punish, Types: []tactics.Type{tactics.Peek, tactics.Push},
		AggressionMin: 0.5, AggressionMax: 0.9, MinHealth: 0.5, MaxHealth: 1},
	{ID: "hold_push", Category: Punish, Types: []tactics.Type{tactics.Hold, tactics.Push, tactics.Strafe},
		AggressionMin: 0.45, AggressionMax: 0.85, MinHealth: 0.4, MaxHealth: 1},

	{ID: "retreat_hold", Category: Reset, Types: []tactics.Type{tactics.Retreat, tactics.Hold},
		AggressionMin: 0, AggressionMax: 0.5, MinHealth: 0, MaxHealth: 0.7},
	{ID: "retreat_peek", Category: Reset, Types: []tactics.Type{tactics.Retreat, tactics.Peek},
		AggressionMin: 0, AggressionMax: 0.45, MinHealth: 0, MaxHealth: 1},
}

// Templates returns a copy of the template set.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// affinity[state][category]
var affinity = map[components.BotState][4]float64{
	components.StatePatrol:     {0.6, 1.0, 0.4, 0.3},
	components.StateEngage:     {1.0, 0.7, 0.9, 0.4},
	components.StateRetreat:    {0.1, 0.4, 0.2, 1.0},
	components.StateReposition: {0.5, 0.8, 0.6, 0.7},
}

// Affinity is how well a category suits a bot state. Signature execution
// has no affinity for anything.
func Affinity(state components.BotState, c Category) float64 {
	row, ok := affinity[state]
	if !ok {
		return 0
	}
	return row[c]
}

// smoothness[from][to], indexed by tactics.Type.
var smoothness = [6][6]float64{
	//            strafe peek push retreat hold flank
	tactics.Strafe:  {0.6, 0.8, 0.9, 0.6, 0.7, 0.8},
	tactics.Peek:    {0.8, 0.4, 0.9, 0.7, 0.8, 0.6},
	tactics.Push:    {0.9, 0.5, 0.5, 0.3, 0.4, 0.6},
	tactics.Retreat: {0.6, 0.9, 0.4, 0.3, 0.9, 0.5},
	tactics.Hold:    {0.7, 0.8, 0.8, 0.5, 0.3, 0.6},
	tactics.Flank:   {0.8, 0.6, 0.9, 0.4, 0.5, 0.3},
}

// Smoothness rates how naturally a pattern of type to follows one of type
// from, in [0, 1].
func Smoothness(from, to tactics.Type) float64 {
	return smoothness[from][to]
}
