package components

import "time"

// NotificationKind names an advisory lifecycle notification.
type NotificationKind string

const (
	NotifyStateChanged       NotificationKind = "state_changed"
	NotifySignatureStarted   NotificationKind = "signature_started"
	NotifySignatureCompleted NotificationKind = "signature_completed"
	NotifySignatureCancelled NotificationKind = "signature_cancelled"
	NotifyMercyActivated     NotificationKind = "mercy_activated"
	NotifyMercyDeactivated   NotificationKind = "mercy_deactivated"
	NotifyPhraseStarted      NotificationKind = "phrase_started"
	NotifyPhraseCompleted    NotificationKind = "phrase_completed"
)

// Notification is queued by the engine during a tick and drained by the
// host afterwards. Only the fields relevant to Kind are set.
type Notification struct {
	Kind      NotificationKind
	At        time.Time
	From      BotState
	To        BotState
	Signature string
	Phrase    string
}
