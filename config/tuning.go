package config

import "time"

// Tuning collects the hand-tuned constants of the decision engine. None of
// the numbers are load-bearing beyond the behavior they nudge; hosts may
// override any of them from the presets file.
type Tuning struct {
	// Tactic selection
	RepeatPenalty float64 `yaml:"repeat_penalty"` // score multiplier for picking the previous pattern again
	JitterMin     float64 `yaml:"jitter_min"`
	JitterMax     float64 `yaml:"jitter_max"`

	// Phrase composition
	PhraseRepeatPenalty float64 `yaml:"phrase_repeat_penalty"`
	PhraseJitter        float64 `yaml:"phrase_jitter"` // +/- fraction

	// Signatures
	SignatureGate float64 `yaml:"signature_gate"` // probability an eligible signature fires

	// Mercy
	MercyDuration       time.Duration `yaml:"mercy_duration"`
	AggressionReduction float64       `yaml:"aggression_reduction"`
	DominationDecayRate float64       `yaml:"domination_decay_rate"` // per second

	// Aim
	AimSmoothing      float64       `yaml:"aim_smoothing"` // lerp factor per 16ms frame
	AimErrorScale     float64       `yaml:"aim_error_scale"`
	AimJitter         float64       `yaml:"aim_jitter"`
	AimMoveThreshold  float64       `yaml:"aim_move_threshold"`
	OnTargetRadius    float64       `yaml:"on_target_radius"`
	FlickDuration     time.Duration `yaml:"flick_duration"`
	LeadTime          float64       `yaml:"lead_time"` // seconds of velocity lead at full tracking skill
	RetreatAimDamping float64       `yaml:"retreat_aim_damping"`
	SignatureAimBoost float64       `yaml:"signature_aim_boost"`

	// Firing
	BurstPeriod time.Duration `yaml:"burst_period"`
	BurstOn     time.Duration `yaml:"burst_on"`
	TapPeriod   time.Duration `yaml:"tap_period"`
	TapOn       time.Duration `yaml:"tap_on"`
	ReloadBelow float64       `yaml:"reload_below"` // ammo ratio under which an unseen bot reloads

	// Movement
	ZigzagPeriod   time.Duration `yaml:"zigzag_period"`
	ZigzagWeight   float64       `yaml:"zigzag_weight"`
	ArcWeight      float64       `yaml:"arc_weight"`
	StopDistance   float64       `yaml:"stop_distance"`
	ArrivalRadius  float64       `yaml:"arrival_radius"`
	BoundaryMargin float64       `yaml:"boundary_margin"`

	// Spatial
	CoverRadius     float64 `yaml:"cover_radius"`
	CoverSearch     float64 `yaml:"cover_search"`
	RetreatDistance float64 `yaml:"retreat_distance"`
	FlankDistance   float64 `yaml:"flank_distance"`
	NavCellSize     float64 `yaml:"nav_cell_size"`
	EyeHeight       float64 `yaml:"eye_height"`

	// State machine
	EngageLostSight     time.Duration `yaml:"engage_lost_sight"`
	RetreatLostSight    time.Duration `yaml:"retreat_lost_sight"`
	RepositionLostSight time.Duration `yaml:"reposition_lost_sight"`
}

// DefaultTuning returns the stock constants.
func DefaultTuning() Tuning {
	return Tuning{
		RepeatPenalty: 0.3,
		JitterMin:     0.8,
		JitterMax:     1.2,

		PhraseRepeatPenalty: 0.5,
		PhraseJitter:        0.15,

		SignatureGate: 0.3,

		MercyDuration:       8 * time.Second,
		AggressionReduction: 0.4,
		DominationDecayRate: 0.1,

		AimSmoothing:      0.18,
		AimErrorScale:     1.2,
		AimJitter:         0.02,
		AimMoveThreshold:  0.5,
		OnTargetRadius:    0.3,
		FlickDuration:     90 * time.Millisecond,
		LeadTime:          0.1,
		RetreatAimDamping: 0.6,
		SignatureAimBoost: 1.2,

		BurstPeriod: 600 * time.Millisecond,
		BurstOn:     250 * time.Millisecond,
		TapPeriod:   400 * time.Millisecond,
		TapOn:       100 * time.Millisecond,
		ReloadBelow: 0.3,

		ZigzagPeriod:   400 * time.Millisecond,
		ZigzagWeight:   0.6,
		ArcWeight:      0.8,
		StopDistance:   3.0,
		ArrivalRadius:  0.5,
		BoundaryMargin: 1.0,

		CoverRadius:     1.5,
		CoverSearch:     15.0,
		RetreatDistance: 8.0,
		FlankDistance:   10.0,
		NavCellSize:     1.0,
		EyeHeight:       1.6,

		EngageLostSight:     3 * time.Second,
		RetreatLostSight:    2 * time.Second,
		RepositionLostSight: 3 * time.Second,
	}
}
