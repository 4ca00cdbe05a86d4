package systems

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/automoto/arenabot/components"
	cfg "github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/gamemath"
	"github.com/automoto/arenabot/shared/leveldata"
	"github.com/automoto/arenabot/shared/random"
	"github.com/automoto/arenabot/systems/factory"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const tick = 50 * time.Millisecond

// scriptedBrain replays a fixed command and records what the host sent it.
type scriptedBrain struct {
	out           components.Output
	aimAtOpponent bool

	inputs  []components.Input
	events  []components.CombatEvent
	resets  int
	pending []components.Notification
}

func (b *scriptedBrain) Conduct(in components.Input, dt time.Duration) components.Output {
	b.inputs = append(b.inputs, in)
	out := b.out
	if b.aimAtOpponent && in.Opponent.Visible {
		out.AimTarget = in.Opponent.Position
	}
	return out
}

func (b *scriptedBrain) RecordEvent(ev components.CombatEvent) {
	b.events = append(b.events, ev)
	if ev.Kind == components.PlayerKilledBot {
		b.pending = append(b.pending, components.Notification{Kind: components.NotifySignatureCancelled, At: ev.At, Signature: "blitz"})
	}
}

func (b *scriptedBrain) Drain() []components.Notification {
	p := b.pending
	b.pending = nil
	return p
}

func (b *scriptedBrain) Reset() { b.resets++ }

func (b *scriptedBrain) count(kind components.CombatEventKind) (n int, damage float64) {
	for _, ev := range b.events {
		if ev.Kind == kind {
			n++
			damage += ev.Damage
		}
	}
	return n, damage
}

func testArena() *leveldata.Arena {
	return &leveldata.Arena{
		Name:   "test",
		Bounds: gamemath.Bounds{MaxX: 20, MaxZ: 20},
		Obstacles: []gamemath.AABB{
			{Min: gamemath.V3(9, 0, 0), Max: gamemath.V3(11, 3, 8)},
		},
		Spawns: []gamemath.Vec3{gamemath.V3(2, 0, 18), gamemath.V3(18, 0, 18)},
	}
}

func newDuel(t *testing.T, duration time.Duration, a, b *scriptedBrain, posA, posB gamemath.Vec3) (*ecs.ECS, [2]*donburi.Entry) {
	t.Helper()
	world := donburi.NewWorld()
	e := ecs.NewECS(world)
	InitBotEvents(world)

	factory.CreateHost(e, tick, random.Fixed(0.5), log.New(io.Discard))
	factory.CreateArena(e, testArena())
	factory.CreateMatch(e, "test", 1, t0, duration)

	var bots [2]*donburi.Entry
	bots[0] = factory.CreateBot(e, 0, "a", "duelist", a, posA)
	bots[1] = factory.CreateBot(e, 1, "b", "rushdown", b, posB)
	return e, bots
}

func step(e *ecs.ECS) {
	UpdateMatch(e)
	UpdateBots(e)
	UpdateActors(e)
	UpdateCombat(e)
	ProcessBotEvents(e)
}

func TestVisibility(t *testing.T) {
	cases := []struct {
		name       string
		posA, posB gamemath.Vec3
		visible    bool
	}{
		{"open_floor", gamemath.V3(5, 0, 15), gamemath.V3(15, 0, 15), true},
		{"behind_wall", gamemath.V3(5, 0, 4), gamemath.V3(15, 0, 4), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, b := &scriptedBrain{}, &scriptedBrain{}
			e, bots := newDuel(t, time.Minute, a, b, c.posA, c.posB)
			step(e)

			in := components.BotInput.Get(bots[0])
			if in.Opponent.Visible != c.visible {
				t.Fatalf("visible = %v, want %v", in.Opponent.Visible, c.visible)
			}
			if in.LastSeen.Known != c.visible {
				t.Fatalf("last seen known = %v", in.LastSeen.Known)
			}
			if c.visible && in.Opponent.Position.Dist(c.posB) > 1e-6 {
				t.Fatalf("opponent at %+v, want %+v", in.Opponent.Position, c.posB)
			}
			if !c.visible && !in.Opponent.Position.IsZero() {
				t.Fatal("hidden opponent position leaked")
			}
			if in.Self.Health != cfg.Sim.MaxHealth || in.Self.Ammo != cfg.Sim.MagazineSize {
				t.Fatalf("self %+v", in.Self)
			}
			if in.MatchDuration != time.Minute || in.TimeRemaining != time.Minute-tick {
				t.Fatalf("clock %v / %v", in.TimeRemaining, in.MatchDuration)
			}
			if len(a.inputs) != 1 || len(b.inputs) != 1 {
				t.Fatalf("brains ran %d and %d times", len(a.inputs), len(b.inputs))
			}
		})
	}
}

func TestKillAndRespawn(t *testing.T) {
	a := &scriptedBrain{out: components.Output{Shoot: true}, aimAtOpponent: true}
	b := &scriptedBrain{}
	e, bots := newDuel(t, 5*time.Minute, a, b, gamemath.V3(5, 0, 15), gamemath.V3(15, 0, 15))

	victim := components.Actor.Get(bots[1])
	for i := 0; i < 200 && !victim.Dead; i++ {
		step(e)
	}
	if !victim.Dead {
		t.Fatal("target never died")
	}

	hits, dealt := a.count(components.BotHitPlayer)
	if want := int(math.Ceil(cfg.Sim.MaxHealth / cfg.Sim.Damage)); hits != want {
		t.Errorf("hits = %d, want %d", hits, want)
	}
	if math.Abs(dealt-cfg.Sim.MaxHealth) > 1e-9 {
		t.Errorf("damage dealt %.1f, want %.1f", dealt, cfg.Sim.MaxHealth)
	}
	if n, _ := a.count(components.BotKilledPlayer); n != 1 {
		t.Errorf("killer saw %d kills", n)
	}
	if n, taken := b.count(components.PlayerHitBot); n != hits || math.Abs(taken-dealt) > 1e-9 {
		t.Errorf("victim saw %d hits for %.1f", n, taken)
	}
	if n, _ := b.count(components.PlayerKilledBot); n != 1 {
		t.Errorf("victim saw %d deaths", n)
	}

	match, _ := matchData(e.World)
	if match.Scores[0].Kills != 1 || match.Scores[1].Deaths != 1 {
		t.Errorf("scores %+v", match.Scores)
	}
	if got := telemetryData(e.World).Slot(1).SignaturesCut; got != 1 {
		t.Errorf("cancelled signatures recorded %d, want 1", got)
	}

	calls := len(b.inputs)
	for i := 0; i < 100 && victim.Dead; i++ {
		step(e)
		if victim.Dead && len(b.inputs) != calls {
			t.Fatal("dead bot's brain ran")
		}
	}
	if victim.Dead {
		t.Fatal("target never respawned")
	}
	if b.resets != 1 {
		t.Errorf("brain reset %d times", b.resets)
	}
	if victim.Health != victim.MaxHealth || victim.Ammo != victim.MaxAmmo {
		t.Errorf("respawned with %+v", victim)
	}
	if want := testArena().Spawns[0]; victim.Position.Dist(want) > 1e-6 {
		t.Errorf("respawned at %+v, want %+v", victim.Position, want)
	}
	if components.Bot.Get(bots[1]).LastSeen.Known {
		t.Error("respawn kept the last sighting")
	}

	sum := Summarize(e)
	if sum.Winner != 0 || sum.Players[0].Kills != 1 || sum.Players[1].Personality != "rushdown" {
		t.Errorf("summary %+v", sum)
	}
	if sum.Players[0].Accuracy <= 0 || sum.Players[0].Accuracy > 1 {
		t.Errorf("accuracy %.2f", sum.Players[0].Accuracy)
	}
	if share := sum.Players[0].StateShare["PATROL"]; math.Abs(share-1) > 1e-9 {
		t.Errorf("patrol share %.3f", share)
	}
}

func TestHiddenTargetIsNeverHit(t *testing.T) {
	a := &scriptedBrain{out: components.Output{Shoot: true, AimTarget: gamemath.V3(15, 0, 4)}}
	b := &scriptedBrain{}
	e, bots := newDuel(t, time.Minute, a, b, gamemath.V3(5, 0, 4), gamemath.V3(15, 0, 4))
	for i := 0; i < 20; i++ {
		step(e)
	}
	if n, _ := a.count(components.BotHitPlayer); n != 0 {
		t.Fatalf("%d hits through a wall", n)
	}
	if n, _ := a.count(components.BotMissed); n == 0 {
		t.Fatal("no misses recorded")
	}
	if components.Actor.Get(bots[0]).Ammo >= cfg.Sim.MagazineSize {
		t.Fatal("shots did not use ammo")
	}
}

func TestReload(t *testing.T) {
	a := &scriptedBrain{out: components.Output{Reload: true}}
	e, bots := newDuel(t, time.Minute, a, &scriptedBrain{}, gamemath.V3(5, 0, 4), gamemath.V3(15, 0, 4))
	actor := components.Actor.Get(bots[0])
	actor.Ammo = 0

	step(e)
	if !actor.Reloading() {
		t.Fatal("reload did not start")
	}
	steps := int(cfg.Sim.ReloadTime / tick)
	for i := 0; i < steps; i++ {
		step(e)
	}
	if actor.Reloading() || actor.Ammo != actor.MaxAmmo {
		t.Fatalf("after reload: ammo %d, reloading %v", actor.Ammo, actor.Reloading())
	}
}

func TestMovementStopsAtWalls(t *testing.T) {
	a := &scriptedBrain{out: components.Output{MoveDir: gamemath.V3(1, 0, 0), MoveSpeed: 1}}
	b := &scriptedBrain{out: components.Output{MoveDir: gamemath.V3(0, 0, 1), MoveSpeed: 1, Crouch: true}}
	e, bots := newDuel(t, time.Minute, a, b, gamemath.V3(5, 0, 4), gamemath.V3(15, 0, 15))
	for i := 0; i < 60; i++ {
		step(e)
	}

	pa := components.Actor.Get(bots[0]).Position
	if pa.X <= 7 || pa.X >= 9 {
		t.Errorf("runner stopped at x=%.2f, want just short of the wall at 9", pa.X)
	}
	if math.Abs(pa.Z-4) > 1e-6 {
		t.Errorf("runner drifted to z=%.2f", pa.Z)
	}

	pb := components.Actor.Get(bots[1])
	if !pb.Crouching {
		t.Error("crouch command ignored")
	}
	if pb.Position.Z > 20 || pb.Position.Z < 19 {
		t.Errorf("crouch walker at z=%.2f, want pinned to the far edge", pb.Position.Z)
	}
}

func TestMatchEnds(t *testing.T) {
	a, b := &scriptedBrain{}, &scriptedBrain{}
	e, _ := newDuel(t, time.Second, a, b, gamemath.V3(5, 0, 15), gamemath.V3(15, 0, 15))
	for i := 0; i < 40; i++ {
		step(e)
	}
	if IsMatchPlaying(e) {
		t.Fatal("match still running")
	}
	// The tick that exhausts the clock ends the match before the brains run.
	if want := int(time.Second/tick) - 1; len(a.inputs) != want {
		t.Fatalf("brain ran %d times, want %d", len(a.inputs), want)
	}
	match, _ := matchData(e.World)
	if match.Remaining != 0 || match.Elapsed() != time.Second {
		t.Fatalf("clock %v remaining", match.Remaining)
	}
}
