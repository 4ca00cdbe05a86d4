package conductor

import (
	"time"

	"github.com/automoto/arenabot/ai/signature"
	"github.com/automoto/arenabot/ai/tactics"
	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/shared/random"
)

// A resolver either supplies the pattern to run this tick or defers to the
// next one by returning nil.
type resolver func(tc *tickContext) *tactics.Pattern

func (c *Conductor) resolvePattern(tc *tickContext) *tactics.Pattern {
	for _, r := range c.resolvers {
		if p := r(tc); p != nil {
			return p
		}
	}
	return tactics.Default()
}

func (c *Conductor) expired(now time.Time) bool {
	return c.s.Pattern == nil || now.Sub(c.s.PatternStartedAt) >= c.s.Pattern.Duration
}

func (c *Conductor) continueSignature(tc *tickContext) *tactics.Pattern {
	if !c.signatures.IsExecuting() {
		return nil
	}
	if c.s.PatternSource == SourceSignature && !c.expired(tc.now) {
		return c.s.Pattern
	}
	if c.s.PatternSource == SourceSignature {
		if c.signatures.Advance() {
			p := c.signatures.CurrentPattern()
			c.begin(p, SourceSignature, tc)
			return p
		}
		m := c.signatures.Complete(tc.now)
		c.logger.Debug("signature completed", "signature", m.ID)
		c.notify(components.Notification{Kind: components.NotifySignatureCompleted, At: tc.now, Signature: m.ID})
		c.clearPattern()
		c.setState(afterSignature(tc.visible), tc.now)
		return nil
	}
	// Started elsewhere (Restore, or a host calling the tracker directly).
	p := c.signatures.CurrentPattern()
	if p == nil {
		return nil
	}
	c.begin(p, SourceSignature, tc)
	return p
}

func (c *Conductor) triggerSignature(tc *tickContext) *tactics.Pattern {
	if c.s.State != components.StateEngage || !c.difficulty.SignaturesEnabled {
		return nil
	}
	env := signature.NewTriggerEnv(tc.in, tc.aggression, tc.hasCover)
	m := c.signatures.CheckTrigger(env, tc.now)
	if m == nil || !c.signatures.Start(m.ID, tc.now) {
		return nil
	}
	c.logger.Debug("signature started", "signature", m.ID, "aggression", tc.aggression)
	c.setState(components.StateExecutingSignature, tc.now)
	c.notify(components.Notification{Kind: components.NotifySignatureStarted, At: tc.now, Signature: m.ID})
	p := c.signatures.CurrentPattern()
	c.begin(p, SourceSignature, tc)
	return p
}

func (c *Conductor) continuePhrase(tc *tickContext) *tactics.Pattern {
	ph := c.s.Phrase
	if ph == nil {
		return nil
	}
	if c.s.PatternSource == SourcePhrase && !c.expired(tc.now) {
		return c.s.Pattern
	}
	if c.s.PatternSource == SourcePhrase {
		c.s.PhraseIndex++
	}
	if c.s.PhraseIndex >= len(ph.Patterns) {
		c.notify(components.Notification{Kind: components.NotifyPhraseCompleted, At: tc.now, Phrase: ph.Name()})
		c.s.Phrase = nil
		c.s.PhraseIndex = 0
		c.clearPattern()
		return nil
	}
	p := ph.Patterns[c.s.PhraseIndex]
	c.begin(p, SourcePhrase, tc)
	return p
}

func (c *Conductor) composePhrase(tc *tickContext) *tactics.Pattern {
	if !c.difficulty.PhrasesEnabled {
		return nil
	}
	ph := c.composer.Compose(c.s.State, tc.aggression, tc.in, tc.hasCover)
	if ph == nil {
		return nil
	}
	c.s.Phrase = ph
	c.s.PhraseIndex = 0
	c.notify(components.Notification{Kind: components.NotifyPhraseStarted, At: tc.now, Phrase: ph.Name()})
	p := ph.Patterns[0]
	c.begin(p, SourcePhrase, tc)
	return p
}

func (c *Conductor) selectDirect(tc *tickContext) *tactics.Pattern {
	if c.s.PatternSource == SourceDirect && !c.expired(tc.now) {
		return c.s.Pattern
	}
	p := c.selector.Select(c.s.State, tc.aggression, tc.health, tc.hasCover, c.personality)
	c.begin(p, SourceDirect, tc)
	return p
}

// begin makes p the running pattern and precomputes its movement goal.
func (c *Conductor) begin(p *tactics.Pattern, src Source, tc *tickContext) {
	s := &c.s
	s.Pattern = p
	s.PatternSource = src
	s.PatternStartedAt = tc.now
	s.Side = 1
	if random.Chance(c.rng, 0.5) {
		s.Side = -1
	}
	s.HasGoal = false

	self := tc.in.Self.Position
	switch {
	case p.RequiresCover && tc.hasCover:
		s.Goal, s.HasGoal = tc.cover.Position, true
	case p.Type == tactics.Flank && tc.hasThreat:
		s.Goal, s.HasGoal = c.arena.FlankPosition(self, tc.threat), true
	case p.Type == tactics.Retreat && tc.hasThreat:
		s.Goal, s.HasGoal = c.arena.RetreatPosition(self, tc.threat), true
	}

	if p.Aim == tactics.AimFlick && tc.visible {
		c.aim.Flick(tc.in.Opponent.Position)
	}
}

func (c *Conductor) clearPattern() {
	c.s.Pattern = nil
	c.s.PatternSource = SourceNone
	c.s.HasGoal = false
}
