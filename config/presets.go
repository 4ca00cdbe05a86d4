package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var defaultPresets []byte

// Presets is the on-disk shape of personality presets and tuning overrides.
type Presets struct {
	Personalities []Personality
	Tuning        *Tuning // nil when the file has no tuning section
}

type rawPresets struct {
	Personalities []Personality `yaml:"personalities"`
	Tuning        yaml.Node     `yaml:"tuning"`
}

// Parse decodes and validates a presets document. Tuning keys that are
// absent keep their DefaultTuning values.
func Parse(data []byte) (Presets, error) {
	var raw rawPresets
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Presets{}, fmt.Errorf("config: unmarshal presets: %w", err)
	}

	p := Presets{Personalities: raw.Personalities}
	if raw.Tuning.Kind != 0 {
		t := DefaultTuning()
		if err := raw.Tuning.Decode(&t); err != nil {
			return Presets{}, fmt.Errorf("config: decode tuning: %w", err)
		}
		p.Tuning = &t
	}

	if err := p.validate(); err != nil {
		return Presets{}, err
	}
	return p, nil
}

// LoadFile reads a presets document from disk.
func LoadFile(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Presets{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return Presets{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return p, nil
}

func (p Presets) validate() error {
	var errs []error
	seen := make(map[string]bool, len(p.Personalities))
	for i, pers := range p.Personalities {
		if pers.ID == "" {
			errs = append(errs, fmt.Errorf("personality #%d has no id", i))
			continue
		}
		if seen[pers.ID] {
			errs = append(errs, fmt.Errorf("duplicate personality %q", pers.ID))
		}
		seen[pers.ID] = true
		if pers.BaseAggression < 0 || pers.BaseAggression > 1 {
			errs = append(errs, fmt.Errorf("personality %q: base_aggression %.2f outside [0,1]", pers.ID, pers.BaseAggression))
		}
		if pers.Accuracy < 0 || pers.Accuracy > 1 {
			errs = append(errs, fmt.Errorf("personality %q: accuracy %.2f outside [0,1]", pers.ID, pers.Accuracy))
		}
		if pers.ReactionTime < 0 {
			errs = append(errs, fmt.Errorf("personality %q: negative reaction_time", pers.ID))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid presets: %w", errors.Join(errs...))
	}
	return nil
}

// WithPresets returns a copy of b with the presets' personalities merged in
// (same id replaces) and tuning replaced when the presets carry one.
func (b BotConfigData) WithPresets(p Presets) BotConfigData {
	out := b
	out.Personalities = make(map[string]Personality, len(b.Personalities)+len(p.Personalities))
	for id, pers := range b.Personalities {
		out.Personalities[id] = pers
	}
	for _, pers := range p.Personalities {
		out.Personalities[pers.ID] = pers
	}
	if p.Tuning != nil {
		out.Tuning = *p.Tuning
	}
	return out
}
