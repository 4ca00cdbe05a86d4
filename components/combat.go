package components

import "time"

// CombatEventKind names a resolved combat outcome.
type CombatEventKind string

const (
	BotHitPlayer    CombatEventKind = "bot_hit_player"
	PlayerHitBot    CombatEventKind = "player_hit_bot"
	PlayerMissed    CombatEventKind = "player_missed"
	BotMissed       CombatEventKind = "bot_missed"
	BotKilledPlayer CombatEventKind = "bot_killed_player"
	PlayerKilledBot CombatEventKind = "player_killed_bot"
)

// CombatEvent is pushed by the host whenever combat resolves.
type CombatEvent struct {
	Kind   CombatEventKind
	At     time.Time
	Damage float64
}
