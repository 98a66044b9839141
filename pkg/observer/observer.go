package observer

import "fx-rates/models/entities"

type EventType int

const (
	FetchStartedEvent EventType = 1
	RatesEvent        EventType = 2
	FailureEvent      EventType = 3
)

type Event struct {
	E      EventType
	Result entities.FetchResult
}

func NewStartedEvent() Event {
	return Event{E: FetchStartedEvent}
}

func NewResultEvent(result entities.FetchResult) Event {
	if result.OK() {
		return Event{E: RatesEvent, Result: result}
	}
	return Event{E: FailureEvent, Result: result}
}

type Observer interface {
	OnNotify(Event)
}

// Dispatcher runs a function on the execution context owned by the consumer.
// Post may block while the context is saturated, TryPost never does.
type Dispatcher interface {
	Post(func()) bool
	TryPost(func()) bool
}
