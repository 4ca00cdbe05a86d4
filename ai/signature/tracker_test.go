package signature

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/config"
	"github.com/automoto/arenabot/shared/random"
	"github.com/automoto/arenabot/shared/random/mocks"
	"github.com/charmbracelet/log"
	"go.uber.org/mock/gomock"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func personality(t *testing.T, id string) config.Personality {
	t.Helper()
	p, err := config.Bot.Personality(id)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{})
}

func engageEnv() TriggerEnv {
	return TriggerEnv{Distance: 10, Visible: true, AmmoRatio: 1, Aggression: 0.8, Health: 1}
}

func moveIDs(ms []*Move) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func TestEligible(t *testing.T) {
	cases := []struct {
		name        string
		personality string
		env         func(TriggerEnv) TriggerEnv
		want        []string
	}{
		{"duelist_close", "duelist", func(e TriggerEnv) TriggerEnv { return e }, []string{"blitz", "bait_and_punish", "dance"}},
		{"duelist_far", "duelist", func(e TriggerEnv) TriggerEnv { e.Distance = 20; return e }, []string{"bait_and_punish"}},
		{"duelist_hurt", "duelist", func(e TriggerEnv) TriggerEnv { e.Health = 0.3; return e }, nil},
		{"rushdown_losing", "rushdown", func(e TriggerEnv) TriggerEnv { e.ScoreDiff = -4; return e }, []string{"blitz", "desperation_rush"}},
		{"sentinel_never_blitzes", "sentinel", func(e TriggerEnv) TriggerEnv { e.Distance = 5; return e }, nil},
		{"sentinel_flanks_from_range", "sentinel", func(e TriggerEnv) TriggerEnv { return e }, []string{"phantom_flank"}},
		{"sentinel_turtles", "sentinel", func(e TriggerEnv) TriggerEnv {
			e.Aggression, e.Health, e.CoverNearby = 0.3, 0.4, true
			return e
		}, []string{"turtle_up"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr := NewTracker(personality(t, c.personality), random.New(1), config.DefaultTuning(), quietLogger())
			got := moveIDs(tr.Eligible(c.env(engageEnv()), t0))
			if strings.Join(got, ",") != strings.Join(c.want, ",") {
				t.Fatalf("eligible %v, want %v", got, c.want)
			}
		})
	}
}

func TestGate(t *testing.T) {
	t.Run("closed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rng := mocks.NewMockSource(ctrl)
		rng.EXPECT().Float64().Return(0.5)
		tr := NewTracker(personality(t, "duelist"), rng, config.DefaultTuning(), quietLogger())
		if m := tr.CheckTrigger(engageEnv(), t0); m != nil {
			t.Fatalf("gate at 0.5 let %s through", m.ID)
		}
	})

	t.Run("open", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rng := mocks.NewMockSource(ctrl)
		gomock.InOrder(
			rng.EXPECT().Float64().Return(0.1),
			rng.EXPECT().Float64().Return(0.7),
		)
		tr := NewTracker(personality(t, "duelist"), rng, config.DefaultTuning(), quietLogger())
		m := tr.CheckTrigger(engageEnv(), t0)
		if m == nil || m.ID != "dance" {
			t.Fatalf("got %v, want dance", m)
		}
	})

	t.Run("nothing_eligible_draws_nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rng := mocks.NewMockSource(ctrl)
		tr := NewTracker(personality(t, "sentinel"), rng, config.DefaultTuning(), quietLogger())
		env := engageEnv()
		env.Distance = 5
		if m := tr.CheckTrigger(env, t0); m != nil {
			t.Fatalf("triggered %s", m.ID)
		}
	})
}

func TestExecutionAndCooldown(t *testing.T) {
	tr := NewTracker(personality(t, "duelist"), random.Fixed(0), config.DefaultTuning(), quietLogger())
	if !tr.Start("blitz", t0) {
		t.Fatal("could not start blitz")
	}
	if tr.Start("dance", t0) {
		t.Fatal("second signature started while one is running")
	}
	if m := tr.CheckTrigger(engageEnv(), t0); m != nil {
		t.Fatalf("triggered %s while executing", m.ID)
	}

	var seen []string
	for {
		seen = append(seen, tr.CurrentPattern().ID)
		if !tr.Advance() {
			break
		}
	}
	if strings.Join(seen, ",") != "push_zigzag,push_direct,strafe_jitter" {
		t.Fatalf("pattern sequence %v", seen)
	}

	done := t0.Add(7 * time.Second)
	if m := tr.Complete(done); m == nil || m.ID != "blitz" {
		t.Fatalf("Complete returned %v", m)
	}
	if tr.IsExecuting() || tr.CurrentPattern() != nil {
		t.Fatal("still executing after Complete")
	}
	if got := tr.CooldownRemaining("blitz", done); got != 25*time.Second {
		t.Fatalf("cooldown %s, want 25s", got)
	}
	if !tr.OnCooldown("blitz", done.Add(24*time.Second)) {
		t.Fatal("cooldown ended early")
	}
	if tr.OnCooldown("blitz", done.Add(25*time.Second)) {
		t.Fatal("cooldown did not end")
	}
	for _, m := range tr.Eligible(engageEnv(), done.Add(time.Second)) {
		if m.ID == "blitz" {
			t.Fatal("blitz eligible during cooldown")
		}
	}
}

func TestDeathCancelsWithHalfCooldown(t *testing.T) {
	tr := NewTracker(personality(t, "duelist"), random.Fixed(0), config.DefaultTuning(), quietLogger())
	tr.Start("dance", t0)

	m := tr.OnEvent(components.CombatEvent{Kind: components.PlayerKilledBot, At: t0})
	if m == nil || m.ID != "dance" {
		t.Fatalf("OnEvent cancelled %v", m)
	}
	if tr.IsExecuting() {
		t.Fatal("still executing after death")
	}
	if got := tr.CooldownRemaining("dance", t0); got != 10*time.Second {
		t.Fatalf("cooldown %s, want 10s", got)
	}
	if tr.OnEvent(components.CombatEvent{Kind: components.PlayerKilledBot, At: t0}) != nil {
		t.Fatal("cancelled twice")
	}
}

func TestBrokenMovesAreDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	moves := []Move{
		{ID: "bad_expr", Patterns: []string{"strafe_wide"}, AggressionMax: 1, HealthMax: 1,
			ScoreDiffMin: -anyScore, ScoreDiffMax: anyScore, Condition: "Distance <"},
		{ID: "bad_pattern", Patterns: []string{"moonwalk"}, AggressionMax: 1, HealthMax: 1,
			ScoreDiffMin: -anyScore, ScoreDiffMax: anyScore},
		{ID: "fine", Patterns: []string{"strafe_wide"}, AggressionMax: 1, HealthMax: 1,
			ScoreDiffMin: -anyScore, ScoreDiffMax: anyScore, Condition: "Visible"},
	}
	tr := NewTrackerWithMoves(moves, config.Personality{ID: "anyone"}, random.Fixed(0), config.DefaultTuning(), logger)

	got := moveIDs(tr.Eligible(engageEnv(), t0))
	if strings.Join(got, ",") != "fine" {
		t.Fatalf("eligible %v, want [fine]", got)
	}
	out := buf.String()
	if !strings.Contains(out, "does not compile") || !strings.Contains(out, "unknown pattern") {
		t.Fatalf("missing warnings in log output: %q", out)
	}
}

func TestNewTriggerEnv(t *testing.T) {
	in := components.Input{
		Self:          components.SelfState{Health: 50, MaxHealth: 100, Ammo: 6, MaxAmmo: 12},
		Opponent:      components.OpponentState{Health: 25, MaxHealth: 100},
		LastSeen:      components.Sighting{Known: true},
		BotScore:      2,
		OpponentScore: 5,
		TimeRemaining: 90 * time.Second,
	}
	in.LastSeen.Position.X = 6
	in.LastSeen.Position.Z = 8

	env := NewTriggerEnv(in, 0.4, true)
	want := TriggerEnv{Distance: 10, AmmoRatio: 0.5, CoverNearby: true, Aggression: 0.4,
		Health: 0.5, OpponentHealth: 0.25, ScoreDiff: -3, TimeRemaining: 90}
	if env != want {
		t.Fatalf("env %+v, want %+v", env, want)
	}
}

func TestResetMatchesFresh(t *testing.T) {
	used := NewTracker(personality(t, "duelist"), random.Fixed(0.1), config.DefaultTuning(), quietLogger())
	used.Start("blitz", t0)
	used.Advance()
	used.Complete(t0.Add(time.Second))
	used.Start("dance", t0.Add(2*time.Second))
	used.Reset()

	fresh := NewTracker(personality(t, "duelist"), random.Fixed(0.1), config.DefaultTuning(), quietLogger())
	at := t0.Add(3 * time.Second)
	got, want := used.CheckTrigger(engageEnv(), at), fresh.CheckTrigger(engageEnv(), at)
	if got == nil || want == nil || got.ID != want.ID {
		t.Fatalf("after reset %v, fresh %v", got, want)
	}
	if used.IsExecuting() || used.OnCooldown("blitz", at) {
		t.Fatal("reset left state behind")
	}
}
