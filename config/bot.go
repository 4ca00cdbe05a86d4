package config

import (
	"fmt"
	"strings"
	"time"
)

// BotDifficulty scales reaction, accuracy and mercy and toggles features
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

func (d BotDifficulty) String() string {
	switch d {
	case BotDifficultyEasy:
		return "easy"
	case BotDifficultyNormal:
		return "normal"
	case BotDifficultyHard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty maps "easy", "normal" or "hard" to a BotDifficulty.
func ParseDifficulty(s string) (BotDifficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return BotDifficultyEasy, nil
	case "normal", "":
		return BotDifficultyNormal, nil
	case "hard":
		return BotDifficultyHard, nil
	}
	return BotDifficultyNormal, fmt.Errorf("config: unknown difficulty %q", s)
}

// BotDifficultyConfig holds tuning values for bot behavior at a specific difficulty
type BotDifficultyConfig struct {
	ReactionMultiplier float64 // Scales personality reaction time (>1 = slower)
	AccuracyMultiplier float64 // Scales personality accuracy
	MercyMultiplier    float64 // Scales the mercy activation threshold (<1 = earlier mercy)
	MercyEnabled       bool
	SignaturesEnabled  bool
	PhrasesEnabled     bool
}

// Personality describes one bot character. Read-only once loaded.
type Personality struct {
	ID             string             `yaml:"id"`
	Name           string             `yaml:"name"`
	BaseAggression float64            `yaml:"base_aggression"`
	Volatility     float64            `yaml:"volatility"`
	TacticWeights  map[string]float64 `yaml:"tactic_weights"` // keyed by tactic type name ("strafe", "push", ...)
	ReactionTime   time.Duration      `yaml:"reaction_time"`
	Accuracy       float64            `yaml:"accuracy"`       // 0..1
	TrackingSkill  float64            `yaml:"tracking_skill"` // 0..1, scales aim lead
	MercyThreshold float64            `yaml:"mercy_threshold"`
	Signatures     []string           `yaml:"signatures"` // empty = every signature that allows this personality
}

// TacticWeight returns the multiplier for a tactic type, 1 when unset.
func (p Personality) TacticWeight(tacticType string) float64 {
	if w, ok := p.TacticWeights[tacticType]; ok {
		return w
	}
	return 1
}

// HasSignature reports whether the personality may use the signature id.
func (p Personality) HasSignature(id string) bool {
	if len(p.Signatures) == 0 {
		return true
	}
	for _, s := range p.Signatures {
		if s == id {
			return true
		}
	}
	return false
}

// BotConfigData holds all bot-related configuration
type BotConfigData struct {
	Difficulties  map[BotDifficulty]BotDifficultyConfig
	Personalities map[string]Personality
	Tuning        Tuning
}

// Personality looks up a personality by id.
func (b BotConfigData) Personality(id string) (Personality, error) {
	p, ok := b.Personalities[id]
	if !ok {
		return Personality{}, fmt.Errorf("config: unknown personality %q", id)
	}
	return p, nil
}

// Difficulty returns the config for d, falling back to normal.
func (b BotConfigData) Difficulty(d BotDifficulty) BotDifficultyConfig {
	if c, ok := b.Difficulties[d]; ok {
		return c
	}
	return b.Difficulties[BotDifficultyNormal]
}

// Bot holds bot AI configuration
var Bot BotConfigData

func init() {
	presets, err := Parse(defaultPresets)
	if err != nil {
		panic(err)
	}

	Bot = BotConfigData{
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy: {
				ReactionMultiplier: 1.6,
				AccuracyMultiplier: 0.7,
				MercyMultiplier:    0.8, // Backs off sooner
				MercyEnabled:       true,
				SignaturesEnabled:  false,
				PhrasesEnabled:     true,
			},
			BotDifficultyNormal: {
				ReactionMultiplier: 1.0,
				AccuracyMultiplier: 1.0,
				MercyMultiplier:    1.0,
				MercyEnabled:       true,
				SignaturesEnabled:  true,
				PhrasesEnabled:     true,
			},
			BotDifficultyHard: {
				ReactionMultiplier: 0.7,
				AccuracyMultiplier: 1.15,
				MercyMultiplier:    1.0,
				MercyEnabled:       false,
				SignaturesEnabled:  true,
				PhrasesEnabled:     true,
			},
		},
		Tuning: DefaultTuning(),
	}
	Bot = Bot.WithPresets(presets)
}
