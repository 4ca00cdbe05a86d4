package factory

import (
	"time"

	"github.com/automoto/arenabot/archetypes"
	"github.com/automoto/arenabot/components"
	"github.com/automoto/arenabot/shared/random"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateHost(ecs *ecs.ECS, tick time.Duration, rng random.Source, logger *log.Logger) *donburi.Entry {
	if rng == nil {
		rng = random.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	host := archetypes.Host.Spawn(ecs)
	components.Host.SetValue(host, components.HostData{
		Tick:   tick,
		Rand:   rng,
		Logger: logger,
	})
	return host
}
