package tactics

import (
	"fmt"
	"time"
)

// Type is the broad movement intent of a pattern.
type Type int

const (
	Strafe Type = iota
	Peek
	Push
	Retreat
	Hold
	Flank
)

// Types lists every pattern type in declaration order.
var Types = []Type{Strafe, Peek, Push, Retreat, Hold, Flank}

// String returns the lower-case name used as the personality weight key.
func (t Type) String() string {
	switch t {
	case Strafe:
		return "strafe"
	case Peek:
		return "peek"
	case Push:
		return "push"
	case Retreat:
		return "retreat"
	case Hold:
		return "hold"
	case Flank:
		return "flank"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// PathShape modulates the base movement of a pattern.
type PathShape int

const (
	PathLinear PathShape = iota
	PathArc
	PathZigzag
	PathNone
)

// AimBehavior tells the conductor how to drive the aim simulator.
type AimBehavior int

const (
	AimTrack  AimBehavior = iota // follow the opponent through the simulator
	AimFlick                     // snap at pattern start, then track
	AimPreaim                    // hold on the last known position when unseen
)

// ShootBehavior gates firing.
type ShootBehavior int

const (
	ShootContinuous ShootBehavior = iota
	ShootBurst
	ShootTap
	ShootNone
)

// Pattern is a static catalog entry. Treat as read-only.
type Pattern struct {
	ID            string
	Type          Type
	Duration      time.Duration
	AggressionMin float64
	AggressionMax float64
	MinHealth     float64
	RequiresCover bool
	Path          PathShape
	Aim           AimBehavior
	Shoot         ShootBehavior
	Risk          float64 // 0..1
	Exposure      time.Duration
	Crouch        bool
	Speed         float64 // move speed multiplier
}

// Midpoint is the center of the aggression range.
func (p *Pattern) Midpoint() float64 {
	return (p.AggressionMin + p.AggressionMax) / 2
}

// DefaultPatternID is returned when nothing else qualifies. It admits every
// aggression, health and cover combination.
const DefaultPatternID = "strafe_wide"

var catalog = []Pattern{
	{ID: "strafe_wide", Type: Strafe, Duration: 2 * time.Second, AggressionMin: 0, AggressionMax: 1,
		Path: PathLinear, Aim: AimTrack, Shoot: ShootContinuous, Risk: 0.4, Exposure: 2 * time.Second, Speed: 0.8},
	{ID: "strafe_jitter", Type: Strafe, Duration: 1500 * time.Millisecond, AggressionMin: 0.4, AggressionMax: 1, MinHealth: 0.2,
		Path: PathZigzag, Aim: AimTrack, Shoot: ShootBurst, Risk: 0.5, Exposure: 1500 * time.Millisecond, Speed: 1},
	{ID: "strafe_arc", Type: Strafe, Duration: 2500 * time.Millisecond, AggressionMin: 0.3, AggressionMax: 0.9, MinHealth: 0.3,
		Path: PathArc, Aim: AimTrack, Shoot: ShootBurst, Risk: 0.45, Exposure: 2 * time.Second, Speed: 0.9},

	{ID: "peek_quick", Type: Peek, Duration: time.Second, AggressionMin: 0.3, AggressionMax: 0.8, MinHealth: 0.2,
		Path: PathLinear, Aim: AimFlick, Shoot: ShootTap, Risk: 0.3, Exposure: 500 * time.Millisecond, Speed: 1},
	{ID: "peek_crouch", Type: Peek, Duration: 1500 * time.Millisecond, AggressionMin: 0.1, AggressionMax: 0.6,
		Path: PathLinear, Aim: AimPreaim, Shoot: ShootTap, Risk: 0.2, Exposure: 700 * time.Millisecond, Crouch: true, Speed: 0.5},
	{ID: "peek_wide", Type: Peek, Duration: 1800 * time.Millisecond, AggressionMin: 0.45, AggressionMax: 0.9, MinHealth: 0.4,
		Path: PathLinear, Aim: AimTrack, Shoot: ShootBurst, Risk: 0.55, Exposure: 1200 * time.Millisecond, Speed: 0.9},

	{ID: "push_direct", Type: Push, Duration: 2 * time.Second, AggressionMin: 0.65, AggressionMax: 1, MinHealth: 0.5,
		Path: PathLinear, Aim: AimTrack, Shoot: ShootContinuous, Risk: 0.8, Exposure: 2 * time.Second, Speed: 1},
	{ID: "push_zigzag", Type: Push, Duration: 2200 * time.Millisecond, AggressionMin: 0.55, AggressionMax: 1, MinHealth: 0.4,
		Path: PathZigzag, Aim: AimTrack, Shoot: ShootBurst, Risk: 0.7, Exposure: 2 * time.Second, Speed: 1},
	{ID: "push_arc", Type: Push, Duration: 2500 * time.Millisecond, AggressionMin: 0.5, AggressionMax: 0.95, MinHealth: 0.45,
		Path: PathArc, Aim: AimTrack, Shoot: ShootContinuous, Risk: 0.65, Exposure: 2 * time.Second, Speed: 0.95},

	{ID: "retreat_cover", Type: Retreat, Duration: 2500 * time.Millisecond, AggressionMin: 0, AggressionMax: 0.6, RequiresCover: true,
		Path: PathLinear, Aim: AimTrack, Shoot: ShootTap, Risk: 0.1, Exposure: 800 * time.Millisecond, Speed: 1},
	{ID: "retreat_backpedal", Type: Retreat, Duration: 2 * time.Second, AggressionMin: 0, AggressionMax: 1,
		Path: PathZigzag, Aim: AimTrack, Shoot: ShootBurst, Risk: 0.3, Exposure: 2 * time.Second, Speed: 0.8},

	{ID: "hold_angle", Type: Hold, Duration: 2500 * time.Millisecond, AggressionMin: 0.1, AggressionMax: 0.6,
		Path: PathNone, Aim: AimPreaim, Shoot: ShootTap, Risk: 0.25, Exposure: 2500 * time.Millisecond, Crouch: true, Speed: 0},
	{ID: "hold_cover", Type: Hold, Duration: 3 * time.Second, AggressionMin: 0.1, AggressionMax: 0.55, RequiresCover: true,
		Path: PathNone, Aim: AimPreaim, Shoot: ShootTap, Risk: 0.15, Exposure: time.Second, Speed: 0.6},

	{ID: "flank_wide", Type: Flank, Duration: 3 * time.Second, AggressionMin: 0.45, AggressionMax: 0.9, MinHealth: 0.5,
		Path: PathArc, Aim: AimTrack, Shoot: ShootBurst, Risk: 0.6, Exposure: 1500 * time.Millisecond, Speed: 1},
}

var byID = func() map[string]*Pattern {
	m := make(map[string]*Pattern, len(catalog))
	for i := range catalog {
		m[catalog[i].ID] = &catalog[i]
	}
	return m
}()

// Catalog returns every pattern in catalog order.
func Catalog() []*Pattern {
	out := make([]*Pattern, len(catalog))
	for i := range catalog {
		out[i] = &catalog[i]
	}
	return out
}

// Lookup finds a pattern by id.
func Lookup(id string) (*Pattern, bool) {
	p, ok := byID[id]
	return p, ok
}

// Default returns the fallback pattern.
func Default() *Pattern {
	return byID[DefaultPatternID]
}

// PatternsByType returns the catalog entries of type t in catalog order.
func PatternsByType(t Type) []*Pattern {
	var out []*Pattern
	for i := range catalog {
		if catalog[i].Type == t {
			out = append(out, &catalog[i])
		}
	}
	return out
}
