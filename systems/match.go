package systems

import (
	"github.com/automoto/arenabot/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateMatch advances the match clock by one host tick and ends the match
// when time runs out.
func UpdateMatch(e *ecs.ECS) {
	match, ok := matchData(e.World)
	if !ok || match.Over {
		return
	}
	host, ok := hostData(e.World)
	if !ok {
		return
	}

	match.Now = match.Now.Add(host.Tick)
	match.Remaining -= host.Tick
	if match.Remaining > 0 {
		return
	}
	match.Remaining = 0
	match.Over = true

	args := []any{"match", match.ID, "map", match.Map, "round", match.Round}
	for _, s := range match.Scores {
		args = append(args, s.Name, s.Kills)
	}
	host.Logger.Info("match over", args...)
}

// IsMatchPlaying reports whether a match exists and still has time left.
func IsMatchPlaying(e *ecs.ECS) bool {
	match, ok := matchData(e.World)
	return ok && !match.Over
}

func matchData(w donburi.World) (*components.MatchData, bool) {
	entry, ok := components.Match.First(w)
	if !ok {
		return nil, false
	}
	return components.Match.Get(entry), true
}

func hostData(w donburi.World) (*components.HostData, bool) {
	entry, ok := components.Host.First(w)
	if !ok {
		return nil, false
	}
	return components.Host.Get(entry), true
}

func arenaData(w donburi.World) *components.ArenaData {
	if entry, ok := components.Arena.First(w); ok {
		return components.Arena.Get(entry)
	}
	return &components.ArenaData{}
}
