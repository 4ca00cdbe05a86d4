package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// Brain is the decision engine behind a bot entity.
type Brain interface {
	Conduct(in Input, dt time.Duration) Output
	RecordEvent(ev CombatEvent)
	Drain() []Notification
	Reset()
}

type BotData struct {
	Brain       Brain
	Name        string
	Personality string
	Slot        int      // index into the match scoreboard
	LastSeen    Sighting // the host's record, fed back as Input.LastSeen
}

var Bot = donburi.NewComponentType[BotData]()

// BotInput is the snapshot handed to the brain on the last tick.
var BotInput = donburi.NewComponentType[Input]()

// BotOutput is the brain's latest command.
var BotOutput = donburi.NewComponentType[Output]()
