package factory

import (
	"time"

	"github.com/automoto/arenabot/archetypes"
	"github.com/automoto/arenabot/components"
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateMatch(ecs *ecs.ECS, mapName string, round int, start time.Time, duration time.Duration) *donburi.Entry {
	match := archetypes.Match.Spawn(ecs)
	components.Match.SetValue(match, components.MatchData{
		ID:        uuid.NewString(),
		Map:       mapName,
		Round:     round,
		Start:     start,
		Now:       start,
		Duration:  duration,
		Remaining: duration,
	})
	return match
}
