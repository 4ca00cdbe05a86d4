package config

import "time"

// SimConfig holds the rules of the headless duel host.
type SimConfig struct {
	Tick          time.Duration
	MatchDuration time.Duration

	MoveSpeed   float64 // world units per second at full speed
	CrouchSpeed float64 // multiplier while crouched
	BodyWidth   float64
	BodyHeight  float64
	EyeHeight   float64
	CrouchEye   float64

	MaxHealth      float64
	MagazineSize   int
	Damage         float64
	CrouchExposure float64 // hit chance multiplier against a crouched target
	FireInterval   time.Duration
	ReloadTime     time.Duration
	RespawnDelay   time.Duration

	HitRadius float64 // aim error at which the hit chance reaches zero
	ViewRange float64

	UnitPixels float64 // resolv pixels per world unit
}

// Sim holds the duel host configuration
var Sim SimConfig

func init() {
	Sim = SimConfig{
		Tick:          50 * time.Millisecond,
		MatchDuration: 3 * time.Minute,

		MoveSpeed:   5.0,
		CrouchSpeed: 0.5,
		BodyWidth:   0.6,
		BodyHeight:  1.8,
		EyeHeight:   1.6,
		CrouchEye:   1.0,

		MaxHealth:      100,
		MagazineSize:   30,
		Damage:         12,
		CrouchExposure: 0.7,
		FireInterval:   120 * time.Millisecond,
		ReloadTime:     1500 * time.Millisecond,
		RespawnDelay:   2 * time.Second,

		HitRadius: 0.8,
		ViewRange: 40,

		UnitPixels: 16,
	}
}
