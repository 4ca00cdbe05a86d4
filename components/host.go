package components

import (
	"time"

	"github.com/automoto/arenabot/shared/random"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
)

// HostData is per-world state shared by the host systems.
type HostData struct {
	Tick   time.Duration
	Rand   random.Source
	Logger *log.Logger
}

var Host = donburi.NewComponentType[HostData]()

// TelemetryData counts what each slot's brain did during the match.
type TelemetryData struct {
	Slots []SlotTelemetry
}

type SlotTelemetry struct {
	Signatures       map[string]int
	SignaturesCut    int
	Phrases          map[string]int
	MercyActivations int
	Transitions      int
	StateTime        map[string]time.Duration
}

// Slot returns the counters for slot, creating them if needed.
func (t *TelemetryData) Slot(slot int) *SlotTelemetry {
	for len(t.Slots) <= slot {
		t.Slots = append(t.Slots, SlotTelemetry{
			Signatures: map[string]int{},
			Phrases:    map[string]int{},
			StateTime:  map[string]time.Duration{},
		})
	}
	return &t.Slots[slot]
}

var Telemetry = donburi.NewComponentType[TelemetryData]()
