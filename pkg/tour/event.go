package tour

import "fmt"

// EventKind identifies the cause of a transition.
type EventKind int

const (
	// EventNone means the call changed nothing.
	EventNone EventKind = iota
	EventAdvanced
	EventRetreated
	// EventSkipped is an explicit skip.
	EventSkipped
	// EventBackedOut is a retreat from the first step.
	EventBackedOut
	// EventCompleted is an advance from the last step.
	EventCompleted
	// EventReset re-initialises the tour. Only listeners that implement
	// ResetListener receive it.
	EventReset
)

var eventNames = [...]string{"none", "advanced", "retreated", "skipped", "backed-out", "completed", "reset"}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventNames[k]
}

// Event is the outcome of one transition call.
type Event struct {
	Kind EventKind
	From int
	To   int
}

// Changed reports whether the transition changed the tour's state.
func (e Event) Changed() bool { return e.Kind != EventNone }

// Ended reports whether the transition hid the tour.
func (e Event) Ended() bool { return e.Kind != EventNone && e.To == Hidden }

func (e Event) String() string {
	return fmt.Sprintf("%s %d->%d", e.Kind, e.From, e.To)
}

// Listener observes navigation events. EventBackedOut is delivered through
// OnSkipped.
type Listener interface {
	OnAdvanced(Event)
	OnRetreated(Event)
	OnSkipped(Event)
	OnCompleted(Event)
}

// ResetListener is implemented by listeners that also want EventReset.
type ResetListener interface {
	OnReset(Event)
}

// NoopListener ignores every event. Embed it to implement a subset.
type NoopListener struct{}

func (NoopListener) OnAdvanced(Event)  {}
func (NoopListener) OnRetreated(Event) {}
func (NoopListener) OnSkipped(Event)   {}
func (NoopListener) OnCompleted(Event) {}

// ListenerFuncs adapts optional functions to a Listener.
type ListenerFuncs struct {
	Advanced  func(Event)
	Retreated func(Event)
	Skipped   func(Event)
	Completed func(Event)
	Reset     func(Event)
}

func (f ListenerFuncs) OnAdvanced(e Event)  { call(f.Advanced, e) }
func (f ListenerFuncs) OnRetreated(e Event) { call(f.Retreated, e) }
func (f ListenerFuncs) OnSkipped(e Event)   { call(f.Skipped, e) }
func (f ListenerFuncs) OnCompleted(e Event) { call(f.Completed, e) }
func (f ListenerFuncs) OnReset(e Event)     { call(f.Reset, e) }

func call(fn func(Event), e Event) {
	if fn != nil {
		fn(e)
	}
}

func deliver(l Listener, e Event) {
	switch e.Kind {
	case EventAdvanced:
		l.OnAdvanced(e)
	case EventRetreated:
		l.OnRetreated(e)
	case EventSkipped, EventBackedOut:
		l.OnSkipped(e)
	case EventCompleted:
		l.OnCompleted(e)
	case EventReset:
		if r, ok := l.(ResetListener); ok {
			r.OnReset(e)
		}
	}
}
