package table

// Event is a stateless cue raised by a scoring transition.
type Event string

const (
	EventPointScored    Event = "point-scored"
	EventPointRetracted Event = "point-retracted"
	EventDeuceEntered   Event = "deuce-entered"
	EventVictoryDecided Event = "victory-decided"
)

// Notifier receives scoring cues (sounds, haptics, chat messages).
// Implementations must not block and must swallow their own failures.
type Notifier interface {
	Notify(event Event)
}

// Deliver sends events to n in order. A nil notifier is ignored.
func Deliver(n Notifier, events []Event) {
	if n == nil {
		return
	}
	for _, e := range events {
		n.Notify(e)
	}
}
