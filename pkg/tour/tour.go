package tour

import (
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/coachmark/pkg/observability"
)

const (
	// Hidden is the position of a tour with no active target.
	Hidden = -1

	// DefaultStartPosition is the position a new tour starts at.
	DefaultStartPosition = 1
)

// Tour is the target registry plus the navigation state machine. It is safe
// for concurrent use.
type Tour struct {
	mu        sync.Mutex
	start     int
	current   int
	targets   map[int]Target
	listeners []Listener
	logger    *log.Logger
}

// Option configures a Tour.
type Option func(*Tour)

// WithStartPosition sets the position the tour starts and resets to when the
// registry is empty.
func WithStartPosition(p int) Option {
	return func(t *Tour) { t.start = p }
}

// WithListener adds a navigation listener.
func WithListener(l Listener) Option {
	return func(t *Tour) {
		if l != nil {
			t.listeners = append(t.listeners, l)
		}
	}
}

// WithLogger sets the logger for transition debug output.
func WithLogger(l *log.Logger) Option {
	return func(t *Tour) { t.logger = l }
}

// New returns an empty tour latched at its start position.
func New(opts ...Option) *Tour {
	t := &Tour{
		start:   DefaultStartPosition,
		targets: make(map[int]Target),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.current = t.start
	return t
}

// AddListener registers l for navigation events.
func (t *Tour) AddListener(l Listener) {
	if l == nil {
		return
	}
	t.mu.Lock()
	t.listeners = append(t.listeners, l)
	t.mu.Unlock()
}

// Register stores target at position, replacing any previous target there.
// If the tour is latched at position, target becomes current immediately. The
// Hidden position is reserved and ignored.
func (t *Tour) Register(position int, target Target) {
	if position == Hidden {
		t.debug("ignoring registration at reserved position", "position", position)
		return
	}
	t.mu.Lock()
	_, replaced := t.targets[position]
	t.targets[position] = target.withDefaults()
	t.mu.Unlock()

	observability.Tour().OnRegister(position, replaced)
	t.debug("registered target", "position", position, "replaced", replaced)
}

// Current returns the current target, if any.
func (t *Tour) Current() (Target, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == Hidden {
		return Target{}, false
	}
	target, ok := t.targets[t.current]
	return target, ok
}

// Active returns the latched position together with its target when the
// tour has a current target.
func (t *Tour) Active() (int, Target, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == Hidden {
		return Hidden, Target{}, false
	}
	target, ok := t.targets[t.current]
	return t.current, target, ok
}

// Position returns the latched position, or Hidden.
func (t *Tour) Position() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// IsHidden reports whether the tour has ended.
func (t *Tour) IsHidden() bool { return t.Position() == Hidden }

// StartPosition returns the configured start position.
func (t *Tour) StartPosition() int { return t.start }

// Target returns the target registered at position.
func (t *Tour) Target(position int) (Target, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	target, ok := t.targets[position]
	return target, ok
}

// Len returns the number of registered targets.
func (t *Tour) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.targets)
}

// Order returns the registered positions in traversal order.
func (t *Tour) Order() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.order()
}

func (t *Tour) order() []int {
	keys := make([]int, 0, len(t.targets))
	for k := range t.targets {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Advance moves to the next position in traversal order. From the last
// position, or from a position that is not registered, the tour completes.
func (t *Tour) Advance() Event {
	return t.transition(func() Event {
		if !t.navigable() {
			return Event{}
		}
		order := t.order()
		i := slices.Index(order, t.current)
		if i >= 0 && i < len(order)-1 {
			return t.move(EventAdvanced, order[i+1])
		}
		return t.move(EventCompleted, Hidden)
	})
}

// Retreat moves to the previous position in traversal order. From the first
// position the tour backs out and hides.
func (t *Tour) Retreat() Event {
	return t.transition(func() Event {
		if !t.navigable() {
			return Event{}
		}
		order := t.order()
		if i := slices.Index(order, t.current); i > 0 {
			return t.move(EventRetreated, order[i-1])
		}
		return t.move(EventBackedOut, Hidden)
	})
}

// Skip hides the tour.
func (t *Tour) Skip() Event {
	return t.transition(func() Event {
		if !t.navigable() {
			return Event{}
		}
		return t.move(EventSkipped, Hidden)
	})
}

// Reset moves to the lowest registered position, or to the start position
// when nothing is registered. It is the way out of Hidden and is delivered
// only to listeners implementing ResetListener.
func (t *Tour) Reset() Event {
	return t.transition(func() Event {
		to := t.start
		if order := t.order(); len(order) > 0 {
			to = order[0]
		}
		return t.move(EventReset, to)
	})
}

// Restore latches position without emitting events. It is meant for resuming
// a persisted tour; the target at position becomes current once registered.
func (t *Tour) Restore(position int) {
	t.mu.Lock()
	from := t.current
	t.current = position
	t.mu.Unlock()
	t.debug("restored position", "from", from, "to", position)
}

// State is the persistable part of a tour.
type State struct {
	Position int  `json:"position"`
	Hidden   bool `json:"hidden"`
}

// Checkpoint returns the tour's persistable state.
func (t *Tour) Checkpoint() State {
	p := t.Position()
	return State{Position: p, Hidden: p == Hidden}
}

// navigable reports whether a navigation transition may act. Callers hold
// the lock.
func (t *Tour) navigable() bool {
	return len(t.targets) > 0 && t.current != Hidden
}

// move latches to and records the transition. Callers hold the lock.
func (t *Tour) move(kind EventKind, to int) Event {
	e := Event{Kind: kind, From: t.current, To: to}
	t.current = to
	return e
}

// transition runs fn under the lock and notifies listeners and hooks
// afterwards.
func (t *Tour) transition(fn func() Event) Event {
	t.mu.Lock()
	e := fn()
	listeners := slices.Clone(t.listeners)
	t.mu.Unlock()

	if !e.Changed() {
		return e
	}
	observability.Tour().OnTransition(e.Kind.String(), e.From, e.To)
	t.debug("transition", "kind", e.Kind, "from", e.From, "to", e.To)
	for _, l := range listeners {
		deliver(l, e)
	}
	return e
}

func (t *Tour) debug(msg string, keyvals ...any) {
	if t.logger != nil {
		t.logger.Debug(msg, keyvals...)
	}
}
