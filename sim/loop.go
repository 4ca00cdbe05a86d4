package sim

import (
	"context"
	"time"
)

// GameLoop drives a duel to completion, either as fast as possible or paced
// to wall-clock time.
type GameLoop struct {
	duel     *Duel
	tick     time.Duration
	realtime bool
}

func NewGameLoop(duel *Duel, tick time.Duration, realtime bool) *GameLoop {
	return &GameLoop{
		duel:     duel,
		tick:     tick,
		realtime: realtime,
	}
}

// Run steps until the match ends or ctx is cancelled.
func (g *GameLoop) Run(ctx context.Context) error {
	if !g.realtime {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !g.duel.Step() {
				return nil
			}
		}
	}

	ticker := time.NewTicker(g.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !g.duel.Step() {
				return nil
			}
		}
	}
}
