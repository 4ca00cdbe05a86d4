package sim

import (
	"context"
	"io"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/leveldata"
	"github.com/charmbracelet/log"
)

func newTestDuel(t *testing.T, seed uint64, duration time.Duration) *Duel {
	t.Helper()
	d, err := New(Options{
		Personalities: [2]string{"duelist", "rushdown"},
		Difficulty:    config.BotDifficultyNormal,
		Duration:      duration,
		Seed:          seed,
		Logger:        log.New(io.Discard),
	})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestSeededDuelReplays(t *testing.T) {
	a := newTestDuel(t, 11, 30*time.Second)
	b := newTestDuel(t, 11, 30*time.Second)
	for i := 0; ; i++ {
		moreA, moreB := a.Step(), b.Step()
		for slot := 0; slot < 2; slot++ {
			if ca, cb := a.Command(slot), b.Command(slot); ca != cb {
				t.Fatalf("tick %d slot %d: %+v vs %+v", i, slot, ca, cb)
			}
			if pa, pb := a.Actor(slot).Position, b.Actor(slot).Position; pa != pb {
				t.Fatalf("tick %d slot %d: at %+v vs %+v", i, slot, pa, pb)
			}
		}
		if moreA != moreB {
			t.Fatalf("tick %d: one duel ended early", i)
		}
		if !moreA {
			break
		}
	}
	if sa, sb := a.Summary().Players, b.Summary().Players; !reflect.DeepEqual(sa, sb) {
		t.Fatalf("summaries differ:\n%+v\n%+v", sa, sb)
	}
}

func TestDuelInvariants(t *testing.T) {
	d := newTestDuel(t, 7, time.Minute)
	arena := leveldata.Default()
	for d.Step() {
		for slot := 0; slot < 2; slot++ {
			out := d.Command(slot)
			if out.MoveSpeed < 0 || out.MoveSpeed > 1 {
				t.Fatalf("slot %d: move speed %.3f", slot, out.MoveSpeed)
			}
			if l := out.MoveDir.Len(); l != 0 && math.Abs(l-1) > 1e-6 {
				t.Fatalf("slot %d: move dir length %.6f", slot, l)
			}

			actor := d.Actor(slot)
			p := actor.Position
			if p.X < arena.Bounds.MinX || p.X > arena.Bounds.MaxX || p.Z < arena.Bounds.MinZ || p.Z > arena.Bounds.MaxZ {
				t.Fatalf("slot %d left the arena: %+v", slot, p)
			}
			for _, o := range arena.Obstacles {
				if o.Contains(p) {
					t.Fatalf("slot %d inside obstacle %+v at %+v", slot, o, p)
				}
			}
			if actor.Health < 0 || actor.Health > actor.MaxHealth {
				t.Fatalf("slot %d health %.1f", slot, actor.Health)
			}
			if actor.Ammo < 0 || actor.Ammo > actor.MaxAmmo {
				t.Fatalf("slot %d ammo %d", slot, actor.Ammo)
			}
		}
	}
}

func TestBotsFindEachOther(t *testing.T) {
	d := newTestDuel(t, 3, 2*time.Minute)
	for d.Step() {
	}
	sum := d.Summary()

	shots, engaged := 0, false
	for _, p := range sum.Players {
		shots += p.ShotsFired
		if p.StateShare[components.StatePatrol.String()] < 1 {
			engaged = true
		}
	}
	if !engaged {
		t.Fatal("neither bot ever left patrol")
	}
	if shots == 0 {
		t.Fatal("no shots in two minutes")
	}
}

func TestDuelEndsAtDuration(t *testing.T) {
	d := newTestDuel(t, 1, 2*time.Second)
	for d.Step() {
	}
	if d.Step() {
		t.Fatal("stepped past the end")
	}
	if want := int(2 * time.Second / config.Sim.Tick); d.Ticks() != want {
		t.Fatalf("ticks %d, want %d", d.Ticks(), want)
	}
	sum := d.Summary()
	if !sum.Finished || sum.Played != 2*time.Second || len(sum.Players) != 2 {
		t.Fatalf("summary %+v", sum)
	}
}

func TestUnknownPersonality(t *testing.T) {
	_, err := New(Options{
		Personalities: [2]string{"duelist", "nobody"},
		Logger:        log.New(io.Discard),
	})
	if err == nil || !strings.Contains(err.Error(), "slot 1") {
		t.Fatalf("err = %v", err)
	}
}

func TestGameLoopStopsOnCancel(t *testing.T) {
	d := newTestDuel(t, 1, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewGameLoop(d, config.Sim.Tick, false).Run(ctx); err != context.Canceled {
		t.Fatalf("err = %v", err)
	}
	if d.Ticks() != 0 {
		t.Fatalf("ran %d ticks after cancel", d.Ticks())
	}

	if err := NewGameLoop(newTestDuel(t, 1, time.Second), config.Sim.Tick, false).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
}
