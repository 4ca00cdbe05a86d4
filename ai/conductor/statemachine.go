package conductor

import (
	"time"

	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/config"
)

// situation is what the state machine looks at.
type situation struct {
	Visible      bool
	SinceVisible time.Duration // time since last sighting, huge if never seen
	Health       float64
	Aggression   float64
	Signature    bool // the tracker is executing
}

// nextState applies one step of the transition table. Entering
// StateExecutingSignature happens only through a trigger, never here.
func nextState(cur components.BotState, s situation, t config.Tuning) components.BotState {
	switch cur {
	case components.StatePatrol:
		if s.Visible {
			return components.StateEngage
		}
	case components.StateEngage:
		if s.Health < 0.3 && s.Aggression < 0.5 {
			return components.StateRetreat
		}
		if !s.Visible && s.SinceVisible > t.EngageLostSight {
			return components.StatePatrol
		}
	case components.StateRetreat:
		if s.Health > 0.5 || s.Aggression > 0.7 {
			return components.StateReposition
		}
		if !s.Visible && s.SinceVisible > t.RetreatLostSight {
			return components.StatePatrol
		}
	case components.StateReposition:
		if s.Visible && s.Health > 0.4 {
			return components.StateEngage
		}
		if !s.Visible && s.SinceVisible > t.RepositionLostSight {
			return components.StatePatrol
		}
	case components.StateExecutingSignature:
		if !s.Signature {
			return afterSignature(s.Visible)
		}
	}
	return cur
}

func afterSignature(visible bool) components.BotState {
	if visible {
		return components.StateEngage
	}
	return components.StatePatrol
}

// setState switches state, dropping any phrase and queueing a notification.
func (c *Conductor) setState(to components.BotState, now time.Time) {
	from := c.s.State
	if from == to {
		return
	}
	c.s.State = to
	c.s.Phrase = nil
	c.s.PhraseIndex = 0
	c.clearPattern()
	c.logger.Debug("state changed", "from", from, "to", to)
	c.notify(components.Notification{Kind: components.NotifyStateChanged, At: now, From: from, To: to})
}
