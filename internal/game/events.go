package game

import "time"

type EventType int

const (
	EventRaceLoaded EventType = iota
	EventRaceStarted
	EventLapCompleted
	EventRaceFinished
	EventBoost
	EventBounce
	EventJump
	EventLanded
	EventDestroyed
	EventLeagueComplete
)

// Event is derived from telemetry changes after each step.
type Event struct {
	Type EventType
	Lap  int
	Time time.Duration // lap time, or total time on EventRaceFinished
}

type EventHandler func(Event)

// EventBus delivers events synchronously on the frame goroutine.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for t := EventRaceLoaded; t <= EventLeagueComplete; t++ {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
