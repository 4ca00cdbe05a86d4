// Package phrase strings two or three tactical patterns together into a
// maneuver that reads as one intent.
package phrase

import (
	"sort"
	"strings"
	"time"

	"github.com/automoto/arenabot/ai/tactics"
	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/random"
)

// Phrase is a composed maneuver. The conductor walks Patterns in order.
type Phrase struct {
	Template string
	Category Category
	Patterns []*tactics.Pattern
	Duration time.Duration
}

// Name is a readable label such as "pressure:push_zigzag>strafe_wide".
func (p *Phrase) Name() string {
	ids := make([]string, len(p.Patterns))
	for i, pat := range p.Patterns {
		ids[i] = pat.ID
	}
	return p.Category.String() + ":" + strings.Join(ids, ">")
}

// Snapshot is the mutable state of a Composer.
type Snapshot struct {
	LastCategory Category
	HasLast      bool
}

type Composer struct {
	rng     random.Source
	tuning  config.Tuning
	weights tactics.Weigher
	counter map[Category]float64

	s Snapshot
}

func NewComposer(rng random.Source, t config.Tuning, w tactics.Weigher) *Composer {
	return &Composer{rng: rng, tuning: t, weights: w}
}

// SetCounterWeights installs per-category multipliers supplied by an
// external flow analysis. Missing categories count as 1.
func (c *Composer) SetCounterWeights(w map[Category]float64) {
	c.counter = make(map[Category]float64, len(w))
	for k, v := range w {
		c.counter[k] = v
	}
}

type scored struct {
	t     *Template
	score float64
}

// Compose picks the best template for the situation and fills each slot
// with a concrete pattern. It returns nil when no template fits.
func (c *Composer) Compose(state components.BotState, aggression float64, in components.Input, hasCover bool) *Phrase {
	health := in.HealthRatio()

	var ranked []scored
	for i := range templates {
		t := &templates[i]
		if !t.admits(aggression, health) {
			continue
		}
		score := Affinity(state, t.Category)
		if c.s.HasLast && t.Category == c.s.LastCategory {
			score *= c.tuning.PhraseRepeatPenalty
		}
		if m, ok := c.counter[t.Category]; ok {
			score *= m
		}
		score *= 1 + random.Signed(c.rng)*c.tuning.PhraseJitter
		if score <= 0 {
			continue
		}
		ranked = append(ranked, scored{t, score})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	for _, r := range ranked {
		if p := c.fill(r.t, aggression, health, hasCover); p != nil {
			c.s = Snapshot{LastCategory: p.Category, HasLast: true}
			return p
		}
	}
	return nil
}

func (c *Composer) fill(t *Template, aggression, health float64, hasCover bool) *Phrase {
	p := &Phrase{Template: t.ID, Category: t.Category}
	for i, typ := range t.Types {
		smooth := 1.0
		if i > 0 {
			smooth = Smoothness(p.Patterns[i-1].Type, typ)
		}
		var (
			best      *tactics.Pattern
			bestScore = -1.0
		)
		for _, cand := range tactics.PatternsByType(typ) {
			if !cand.Admits(aggression, health, hasCover) {
				continue
			}
			score := tactics.Weight(c.weights, typ) * tactics.AggressionFit(cand, aggression) * (0.5 + 0.5*smooth)
			if score > bestScore {
				best, bestScore = cand, score
			}
		}
		if best == nil {
			return nil
		}
		p.Patterns = append(p.Patterns, best)
		p.Duration += best.Duration
	}
	return p
}

func (c *Composer) Snapshot() Snapshot { return c.s }

func (c *Composer) Restore(s Snapshot) { c.s = s }

// Reset forgets the previous category. Counter weights are kept.
func (c *Composer) Reset() { c.s = Snapshot{} }
