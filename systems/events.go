package systems

import (
	"github.com/automoto/arenabot/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/events"
)

// BotNotificationEvent carries one notification drained from a bot's brain.
type BotNotificationEvent struct {
	Bot          donburi.Entity
	Slot         int
	Name         string
	Notification components.Notification
}

// CombatResolvedEvent delivers a combat outcome to the bot it concerns.
type CombatResolvedEvent struct {
	Bot   donburi.Entity
	Event components.CombatEvent
}

var (
	BotNotification = events.NewEventType[BotNotificationEvent]()
	CombatResolved  = events.NewEventType[CombatResolvedEvent]()
)

// InitBotEvents wires the engine handlers into w. Call once per world.
func InitBotEvents(w donburi.World) {
	CombatResolved.Subscribe(w, deliverCombatEvent)
	BotNotification.Subscribe(w, recordNotification)
}

// ProcessBotEvents delivers queued combat outcomes to the brains, then
// hands every resulting notification to its subscribers. Run it last.
func ProcessBotEvents(e *ecs.ECS) {
	CombatResolved.ProcessEvents(e.World)
	BotNotification.ProcessEvents(e.World)
}

func deliverCombatEvent(w donburi.World, ev CombatResolvedEvent) {
	if !w.Valid(ev.Bot) {
		return
	}
	entry := w.Entry(ev.Bot)
	if !entry.HasComponent(components.Bot) {
		return
	}
	components.Bot.Get(entry).Brain.RecordEvent(ev.Event)
	publishNotifications(w, entry)
}

func publishNotifications(w donburi.World, entry *donburi.Entry) {
	bot := components.Bot.Get(entry)
	for _, n := range bot.Brain.Drain() {
		BotNotification.Publish(w, BotNotificationEvent{
			Bot:          entry.Entity(),
			Slot:         bot.Slot,
			Name:         bot.Name,
			Notification: n,
		})
	}
}

func recordNotification(w donburi.World, ev BotNotificationEvent) {
	if host, ok := hostData(w); ok {
		n := ev.Notification
		host.Logger.Debug("bot notification", "bot", ev.Name, "kind", n.Kind,
			"from", n.From, "to", n.To, "signature", n.Signature, "phrase", n.Phrase)
	}

	entry, ok := components.Telemetry.First(w)
	if !ok {
		return
	}
	slot := components.Telemetry.Get(entry).Slot(ev.Slot)
	n := ev.Notification
	switch n.Kind {
	case components.NotifyStateChanged:
		slot.Transitions++
	case components.NotifySignatureStarted:
		slot.Signatures[n.Signature]++
	case components.NotifySignatureCancelled:
		slot.SignaturesCut++
	case components.NotifyPhraseStarted:
		slot.Phrases[n.Phrase]++
	case components.NotifyMercyActivated:
		slot.MercyActivations++
	}
}
