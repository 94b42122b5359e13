package overlay

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/coachmark/pkg/effect"
	"github.com/matzehuels/coachmark/pkg/geom"
	"github.com/matzehuels/coachmark/pkg/observability"
	"github.com/matzehuels/coachmark/pkg/placement"
	"github.com/matzehuels/coachmark/pkg/tour"
)

// Measurer reports the size of a target's content when laid out inside
// viewport.
type Measurer interface {
	Measure(content any, viewport geom.Rect) geom.Size
}

// MeasureFunc adapts a function to a Measurer.
type MeasureFunc func(content any, viewport geom.Rect) geom.Size

func (f MeasureFunc) Measure(content any, viewport geom.Rect) geom.Size { return f(content, viewport) }

// FixedSize measures every content as the same size.
func FixedSize(s geom.Size) Measurer {
	return MeasureFunc(func(any, geom.Rect) geom.Size { return s })
}

// Frame is one rendered state of the overlay.
type Frame struct {
	Position  int
	Target    tour.Target
	Viewport  geom.Rect
	Hole      geom.Rect
	Content   geom.Rect
	Placement placement.Result
	Buttons   []effect.Button
}

type action int

const (
	actNone action = iota
	actNext
	actBack
	actSkip
	actReset
)

func (a action) String() string {
	switch a {
	case actNext:
		return "next"
	case actBack:
		return "back"
	case actSkip:
		return "skip"
	case actReset:
		return "reset"
	}
	return "none"
}

// Option configures an Overlay.
type Option func(*Overlay)

// WithStrategy sets the adaptive placement strategy.
func WithStrategy(s placement.Strategy) Option {
	return func(o *Overlay) { o.strategy = s }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Overlay) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFrameInterval sets how often Listen is signalled while an animation
// runs.
func WithFrameInterval(d time.Duration) Option {
	return func(o *Overlay) {
		if d > 0 {
			o.interval = d
		}
	}
}

// Overlay is the orchestration shell around a tour.
type Overlay struct {
	id       string
	tour     *tour.Tour
	measure  Measurer
	strategy placement.Strategy
	logger   *log.Logger
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	frames chan struct{}

	mu          sync.Mutex
	closed      bool
	busy        bool
	shown       int
	enterCancel context.CancelFunc
	enterDone   chan struct{}
	frame       Frame
	hasFrame    bool

	captureMu sync.Mutex
	pressMu   sync.Mutex
	sink      func(action)
}

// New returns an overlay for t. measure sizes target content; a nil
// measure yields empty content, which placement puts at the origin.
func New(t *tour.Tour, measure Measurer, opts ...Option) *Overlay {
	ctx, cancel := context.WithCancel(context.Background())
	o := &Overlay{
		id:       uuid.NewString(),
		tour:     t,
		measure:  measure,
		logger:   log.Default(),
		interval: 33 * time.Millisecond,
		ctx:      ctx,
		cancel:   cancel,
		frames:   make(chan struct{}, 1),
		shown:    tour.Hidden,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With("overlay", o.id[:8])
	if o.measure == nil {
		o.measure = FixedSize(geom.Size{})
	}
	return o
}

// ID identifies this overlay in logs.
func (o *Overlay) ID() string { return o.id }

// Tour returns the tour driven by the overlay.
func (o *Overlay) Tour() *tour.Tour { return o.tour }

// Listen returns a channel signalled whenever the overlay needs repainting.
// Signals coalesce.
func (o *Overlay) Listen() <-chan struct{} { return o.frames }

func (o *Overlay) invalidate() {
	select {
	case o.frames <- struct{}{}:
	default:
	}
}

// Render draws the current target onto c. It reports false, drawing
// nothing, when the tour has no current target.
func (o *Overlay) Render(c effect.Canvas) (Frame, bool) {
	pos, target, ok := o.tour.Active()
	if !ok {
		o.mu.Lock()
		o.frame, o.hasFrame = Frame{}, false
		if !o.busy {
			o.shown = tour.Hidden
		}
		o.mu.Unlock()
		return Frame{}, false
	}
	o.maybeEnter(pos, target)

	viewport := target.Style.DrawCoachShape(target.Bounds, c)
	hole := target.Reveal.DrawTargetShape(target.Bounds, c)
	buttons := target.Style.DrawCoachButtons(viewport, c,
		o.pressFunc(actBack), o.pressFunc(actSkip), o.pressFunc(actNext))

	size := o.measure.Measure(target.Content, viewport)
	res := placement.Request{
		Viewport:  viewport,
		Target:    hole,
		Content:   size,
		Alignment: target.Alignment,
		Forced:    target.ForcedAlignment,
		Strategy:  o.strategy,
	}.Resolve()

	f := Frame{
		Position:  pos,
		Target:    target,
		Viewport:  viewport,
		Hole:      hole,
		Content:   res.Rect(size),
		Placement: res,
		Buttons:   buttons,
	}
	o.mu.Lock()
	o.frame, o.hasFrame = f, true
	o.mu.Unlock()
	return f, true
}

// maybeEnter starts the enter animation when pos was not the last position
// shown.
func (o *Overlay) maybeEnter(pos int, target tour.Target) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed || o.busy || o.shown == pos {
		return
	}
	o.shown = pos
	if o.enterCancel != nil {
		o.enterCancel()
		<-o.enterDone
	}

	ctx, cancel := context.WithCancel(o.ctx)
	done := make(chan struct{})
	o.enterCancel, o.enterDone = cancel, done

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer close(done)
		defer cancel()
		if err := o.animate(ctx, "enter", pos, target.Reveal.Enter, target.Bounds); err != nil && !isCancel(err) {
			o.logger.Warn("enter animation failed", "position", pos, "err", err)
		}
	}()
}

// Settle waits until the running enter animation, if any, has finished.
func (o *Overlay) Settle(ctx context.Context) error {
	o.mu.Lock()
	done := o.enterDone
	o.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Tap routes a tap at p: buttons first, then the hole, then the outside
// area when the current target is dismissed by outside taps. It reports
// whether a transition was committed.
func (o *Overlay) Tap(ctx context.Context, p geom.Offset) (bool, error) {
	o.mu.Lock()
	f, ok := o.frame, o.hasFrame
	o.mu.Unlock()
	if !ok {
		return false, nil
	}

	for _, b := range f.Buttons {
		if b.Hit(p) {
			return o.run(ctx, o.capture(b))
		}
	}
	if f.Hole.Contains(p) || f.Target.DismissOnOutsideTap {
		return o.run(ctx, actNext)
	}
	o.logger.Debug("tap ignored", "x", p.X, "y", p.Y)
	return false, nil
}

// Next advances the tour after the exit animation.
func (o *Overlay) Next(ctx context.Context) (bool, error) { return o.run(ctx, actNext) }

// Back retreats the tour after the exit animation.
func (o *Overlay) Back(ctx context.Context) (bool, error) { return o.run(ctx, actBack) }

// Skip hides the tour after the exit animation.
func (o *Overlay) Skip(ctx context.Context) (bool, error) { return o.run(ctx, actSkip) }

// Reset restarts the tour from its first step. A visible step plays its
// exit animation first; a hidden tour restarts at once. Like the other
// navigation calls it is rejected while a transition is in flight.
func (o *Overlay) Reset(ctx context.Context) (bool, error) { return o.run(ctx, actReset) }

// Close cancels running animations and waits for them to stop. Later calls
// to navigation methods do nothing.
func (o *Overlay) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	o.mu.Unlock()

	o.cancel()
	o.wg.Wait()
}

// run sequences one transition: cancel the enter animation, await the exit
// animation, then commit. Only a reset may start from a hidden tour.
func (o *Overlay) run(ctx context.Context, a action) (bool, error) {
	if a == actNone {
		return false, nil
	}

	o.mu.Lock()
	if o.closed || o.busy {
		o.mu.Unlock()
		return false, nil
	}
	pos, target, visible := o.tour.Active()
	if !visible && a != actReset {
		o.mu.Unlock()
		return false, nil
	}
	o.busy = true
	o.wg.Add(1)
	cancelEnter, enterDone := o.enterCancel, o.enterDone
	o.enterCancel, o.enterDone = nil, nil
	o.mu.Unlock()

	defer o.wg.Done()
	defer func() {
		o.mu.Lock()
		o.busy = false
		o.mu.Unlock()
		o.invalidate()
	}()

	if cancelEnter != nil {
		cancelEnter()
		<-enterDone
	}

	if visible {
		if dropped, err := o.exit(ctx, a, pos, target); dropped || err != nil {
			return false, err
		}
	}

	var e tour.Event
	switch a {
	case actNext:
		e = o.tour.Advance()
	case actBack:
		e = o.tour.Retreat()
	case actSkip:
		e = o.tour.Skip()
	case actReset:
		e = o.tour.Reset()
	}

	o.mu.Lock()
	o.shown = tour.Hidden
	o.mu.Unlock()

	o.logger.Debug("transition committed", "action", a, "event", e.Kind, "from", e.From, "to", e.To)
	return e.Changed(), nil
}

// exit plays the exit animation of the step at pos. It reports dropped when
// Close interrupted the animation, and ctx's error when the caller gave up.
func (o *Overlay) exit(ctx context.Context, a action, pos int, target tour.Target) (dropped bool, err error) {
	exitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(o.ctx, cancel)
	defer stop()

	if err := o.animate(exitCtx, "exit", pos, target.Reveal.Exit, target.Bounds); err != nil {
		switch {
		case o.ctx.Err() != nil:
			o.logger.Debug("transition dropped on close", "action", a, "position", pos)
			return true, nil
		case ctx.Err() != nil:
			return false, ctx.Err()
		default:
			o.logger.Warn("exit animation failed", "position", pos, "err", err)
		}
	}
	return false, nil
}

// animate runs one reveal animation, reporting it to the animation hooks and
// signalling Listen on every frame.
func (o *Overlay) animate(ctx context.Context, phase string, pos int, fn func(context.Context, geom.Rect) error, bounds geom.Rect) error {
	hooks := observability.Animation()
	hooks.OnAnimationStart(ctx, phase, pos)
	start := time.Now()

	stop := o.pump()
	err := fn(ctx, bounds)
	stop()

	hooks.OnAnimationComplete(ctx, phase, pos, time.Since(start), err)
	o.invalidate()
	return err
}

// pump signals Listen every frame interval until the returned func is
// called.
func (o *Overlay) pump() func() {
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(o.interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				o.invalidate()
			}
		}
	}()
	return func() {
		close(done)
		<-stopped
	}
}

// pressFunc is the callback handed to coach styles for action a. Called
// during Tap it only reports a; called by the host directly it runs the
// transition.
func (o *Overlay) pressFunc(a action) func() {
	return func() {
		o.pressMu.Lock()
		sink := o.sink
		o.pressMu.Unlock()
		if sink != nil {
			sink(a)
			return
		}
		if _, err := o.run(o.ctx, a); err != nil {
			o.logger.Warn("button action failed", "action", a, "err", err)
		}
	}
}

// capture resolves the action behind a button without running it.
func (o *Overlay) capture(b effect.Button) action {
	if b.OnPress == nil {
		return actNone
	}
	o.captureMu.Lock()
	defer o.captureMu.Unlock()

	got := actNone
	o.setSink(func(a action) { got = a })
	b.OnPress()
	o.setSink(nil)
	return got
}

func (o *Overlay) setSink(fn func(action)) {
	o.pressMu.Lock()
	o.sink = fn
	o.pressMu.Unlock()
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
