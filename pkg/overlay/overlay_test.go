package overlay

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/matzehuels/coachmark/pkg/effect"
	"github.com/matzehuels/coachmark/pkg/geom"
	"github.com/matzehuels/coachmark/pkg/placement"
	"github.com/matzehuels/coachmark/pkg/tour"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type canvas struct{ bounds geom.Rect }

func (c canvas) Bounds() geom.Rect           { return c.bounds }
func (canvas) Dim(geom.Rect)                 {}
func (canvas) Clear(geom.Rect)               {}
func (canvas) ClearEllipse(geom.Rect)        {}
func (canvas) Label(geom.Rect, string, bool) {}
func (canvas) TextSize(s string) geom.Size   { return geom.Size{Width: float64(len(s) + 2), Height: 1} }

var screen = canvas{bounds: geom.RectFromLTRB(0, 0, 80, 24)}

// gatedReveal records animations. When gate is set, Exit blocks until the
// gate is released or its context ends.
type gatedReveal struct {
	mu      sync.Mutex
	log     []string
	entered chan geom.Rect
	exiting chan int
	gate    chan struct{}
	tour    *tour.Tour
}

func newGated() *gatedReveal {
	return &gatedReveal{entered: make(chan geom.Rect, 16), exiting: make(chan int, 16)}
}

func (g *gatedReveal) record(s string) {
	g.mu.Lock()
	g.log = append(g.log, s)
	g.mu.Unlock()
}

func (g *gatedReveal) Enter(ctx context.Context, b geom.Rect) error {
	g.record("enter")
	g.entered <- b
	return nil
}

func (g *gatedReveal) Exit(ctx context.Context, b geom.Rect) error {
	g.record("exit")
	pos := tour.Hidden
	if g.tour != nil {
		pos = g.tour.Position()
	}
	g.exiting <- pos
	if g.gate == nil {
		return nil
	}
	select {
	case <-g.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *gatedReveal) DrawTargetShape(b geom.Rect, c effect.Canvas) geom.Rect {
	c.Clear(b)
	return b
}

func setup(t *testing.T, reveal effect.RevealEffect, positions ...int) (*tour.Tour, *Overlay) {
	t.Helper()
	tr := tour.New()
	for _, p := range positions {
		tr.Register(p, tour.NewTarget(geom.RectFromSize(float64(p*10), 10, 10, 2), p,
			tour.WithReveal(reveal), tour.WithStyle(effect.ScrimStyle{})))
	}
	o := New(tr, FixedSize(geom.Size{Width: 20, Height: 3}))
	t.Cleanup(o.Close)
	return tr, o
}

func waitEnter(t *testing.T, g *gatedReveal) geom.Rect {
	t.Helper()
	select {
	case b := <-g.entered:
		return b
	case <-time.After(2 * time.Second):
		t.Fatal("enter animation did not start")
		return geom.Rect{}
	}
}

func TestRenderWithoutTarget(t *testing.T) {
	_, o := setup(t, effect.NoReveal{})
	if _, ok := o.Render(screen); ok {
		t.Error("Render() = true on empty tour, want false")
	}
	if ok, err := o.Next(context.Background()); ok || err != nil {
		t.Errorf("Next() = %v, %v; want false, nil", ok, err)
	}
}

func TestRenderPlacesContent(t *testing.T) {
	_, o := setup(t, effect.NoReveal{}, 1)

	f, ok := o.Render(screen)
	if !ok {
		t.Fatal("Render() = false, want a frame")
	}

	// Hole (10,10)-(20,12): 10 rows above, 12 below, so the content hangs
	// below it, centered on x=15.
	if want := geom.RectFromSize(5, 12, 20, 3); f.Content != want {
		t.Errorf("Content = %v, want %v", f.Content, want)
	}
	if f.Viewport != screen.bounds {
		t.Errorf("Viewport = %v, want %v", f.Viewport, screen.bounds)
	}
	if f.Placement.Strategy != "band" || !f.Placement.Fits {
		t.Errorf("Placement = %+v, want a fitting band placement", f.Placement)
	}
	var labels []string
	for _, b := range f.Buttons {
		labels = append(labels, b.Label)
	}
	if diff := cmp.Diff([]string{"Back", "Next", "Skip"}, labels); diff != "" {
		t.Errorf("buttons mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderSearchStrategy(t *testing.T) {
	tr := tour.New()
	tr.Register(1, tour.NewTarget(geom.RectFromSize(30, 10, 10, 2), nil, tour.WithReveal(effect.NoReveal{})))
	o := New(tr, FixedSize(geom.Size{Width: 4, Height: 2}), WithStrategy(placement.StrategySearch))
	defer o.Close()

	f, _ := o.Render(screen)
	if f.Placement.Alignment != geom.TopStart {
		t.Errorf("Alignment = %v, want TopStart", f.Placement.Alignment)
	}
	if want := geom.RectFromSize(26, 8, 4, 2); f.Content != want {
		t.Errorf("Content = %v, want %v", f.Content, want)
	}
}

func TestTapRouting(t *testing.T) {
	tests := []struct {
		name    string
		dismiss bool
		tap     geom.Offset
		want    int
	}{
		{name: "inside hole", dismiss: false, tap: geom.Offset{X: 12, Y: 11}, want: 2},
		{name: "outside dismissable", dismiss: true, tap: geom.Offset{X: 60, Y: 20}, want: 2},
		{name: "outside sticky", dismiss: false, tap: geom.Offset{X: 60, Y: 20}, want: 1},
		{name: "skip button", dismiss: false, tap: geom.Offset{X: 40, Y: 23}, want: tour.Hidden},
		{name: "next button", dismiss: false, tap: geom.Offset{X: 78, Y: 0}, want: 2},
		{name: "back button", dismiss: false, tap: geom.Offset{X: 1, Y: 0}, want: tour.Hidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := tour.New()
			for _, p := range []int{1, 2} {
				tr.Register(p, tour.NewTarget(geom.RectFromSize(float64(p*10), 10, 10, 2), p,
					tour.WithReveal(effect.NoReveal{}), tour.WithOutsideTapDismiss(tt.dismiss)))
			}
			o := New(tr, FixedSize(geom.Size{Width: 20, Height: 3}))
			defer o.Close()

			if _, err := o.Tap(context.Background(), tt.tap); err != nil {
				t.Fatalf("Tap() before Render error = %v", err)
			}
			if got := tr.Position(); got != 1 {
				t.Fatalf("Tap() before Render moved the tour to %d", got)
			}

			o.Render(screen)
			if _, err := o.Tap(context.Background(), tt.tap); err != nil {
				t.Fatalf("Tap() error = %v", err)
			}
			if got := tr.Position(); got != tt.want {
				t.Errorf("Position() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitBeforeCommit(t *testing.T) {
	g := newGated()
	tr, o := setup(t, g, 1, 2)
	g.tour = tr

	o.Render(screen)
	waitEnter(t, g)

	ok, err := o.Next(context.Background())
	if !ok || err != nil {
		t.Fatalf("Next() = %v, %v; want true, nil", ok, err)
	}
	if got := <-g.exiting; got != 1 {
		t.Errorf("position during exit = %d, want 1", got)
	}
	if got := tr.Position(); got != 2 {
		t.Errorf("Position() after Next = %d, want 2", got)
	}

	o.Render(screen)
	if b := waitEnter(t, g); b != geom.RectFromSize(20, 10, 10, 2) {
		t.Errorf("second enter bounds = %v, want target 2", b)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if diff := cmp.Diff([]string{"enter", "exit", "enter"}, g.log); diff != "" {
		t.Errorf("animation order mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderEntersOncePerPosition(t *testing.T) {
	g := newGated()
	tr, o := setup(t, g, 1, 2)

	o.Render(screen)
	waitEnter(t, g)
	tr.Register(1, tour.NewTarget(geom.RectFromSize(0, 0, 5, 5), nil, tour.WithReveal(g)))
	o.Render(screen)
	o.Render(screen)

	select {
	case b := <-g.entered:
		t.Errorf("unexpected second enter for %v", b)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebounce(t *testing.T) {
	g := newGated()
	g.gate = make(chan struct{})
	tr, o := setup(t, g, 1, 2, 3)
	o.Render(screen)
	waitEnter(t, g)

	type result struct {
		ok  bool
		err error
	}
	first := make(chan result, 1)
	go func() {
		ok, err := o.Next(context.Background())
		first <- result{ok, err}
	}()
	<-g.exiting

	for i := 0; i < 5; i++ {
		if ok, err := o.Next(context.Background()); ok || err != nil {
			t.Errorf("Next() while in flight = %v, %v; want false, nil", ok, err)
		}
		if ok, _ := o.Tap(context.Background(), geom.Offset{X: 12, Y: 11}); ok {
			t.Error("Tap() while in flight committed a transition")
		}
	}
	close(g.gate)

	if r := <-first; !r.ok || r.err != nil {
		t.Errorf("first Next() = %v, %v; want true, nil", r.ok, r.err)
	}
	if got := tr.Position(); got != 2 {
		t.Errorf("Position() = %d, want 2 after a single transition", got)
	}
}

func TestCloseDropsTransition(t *testing.T) {
	g := newGated()
	g.gate = make(chan struct{})
	tr, o := setup(t, g, 1, 2)
	o.Render(screen)
	waitEnter(t, g)

	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)
	go func() {
		ok, err := o.Skip(context.Background())
		done <- result{ok, err}
	}()
	<-g.exiting
	o.Close()

	if r := <-done; r.ok || r.err != nil {
		t.Errorf("Skip() after Close = %v, %v; want false, nil", r.ok, r.err)
	}
	if got := tr.Position(); got != 1 {
		t.Errorf("Position() = %d, want 1", got)
	}
	if ok, _ := o.Next(context.Background()); ok {
		t.Error("Next() after Close committed a transition")
	}
}

func TestCallerCancelDuringExit(t *testing.T) {
	g := newGated()
	g.gate = make(chan struct{})
	tr, o := setup(t, g, 1, 2)
	o.Render(screen)
	waitEnter(t, g)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := o.Back(ctx)
		done <- err
	}()
	<-g.exiting
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Back() error = %v, want context.Canceled", err)
	}
	if got := tr.Position(); got != 1 {
		t.Errorf("Position() = %d, want 1", got)
	}
}

func TestCloseCancelsEnter(t *testing.T) {
	tr := tour.New()
	tr.Register(1, tour.NewTarget(geom.RectFromSize(0, 0, 4, 4), nil,
		tour.WithReveal(effect.NewRectReveal(1, 1, time.Hour))))
	o := New(tr, nil)

	o.Render(screen)
	o.Close()
	o.Close()
}

func TestListenSignalsDuringAnimation(t *testing.T) {
	tr := tour.New()
	tr.Register(1, tour.NewTarget(geom.RectFromSize(0, 0, 4, 4), nil,
		tour.WithReveal(effect.NewRectReveal(1, 1, time.Hour))))
	o := New(tr, nil, WithFrameInterval(5*time.Millisecond))
	defer o.Close()

	o.Render(screen)
	select {
	case <-o.Listen():
	case <-time.After(2 * time.Second):
		t.Fatal("no repaint signal while animating")
	}
}

func TestHostPressRunsTransition(t *testing.T) {
	tr, o := setup(t, effect.NoReveal{}, 1, 2)
	f, _ := o.Render(screen)

	for _, b := range f.Buttons {
		if b.Label == "Next" {
			b.OnPress()
		}
	}
	if got := tr.Position(); got != 2 {
		t.Errorf("Position() = %d, want 2", got)
	}
}

func TestSettle(t *testing.T) {
	_, o := setup(t, effect.NewRectReveal(1, 1, 40*time.Millisecond), 1)

	if err := o.Settle(context.Background()); err != nil {
		t.Fatalf("Settle() before render = %v", err)
	}
	o.Render(screen)
	if err := o.Settle(context.Background()); err != nil {
		t.Fatalf("Settle() = %v", err)
	}

	slow := effect.NewRectReveal(1, 1, time.Hour)
	tr2 := tour.New()
	tr2.Register(1, tour.NewTarget(geom.RectFromSize(0, 0, 4, 4), nil, tour.WithReveal(slow)))
	o2 := New(tr2, nil)
	defer o2.Close()
	o2.Render(screen)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := o2.Settle(ctx); err != context.DeadlineExceeded {
		t.Errorf("Settle() = %v, want deadline exceeded", err)
	}
}

func TestResetWaitsForExit(t *testing.T) {
	g := newGated()
	tr, o := setup(t, g, 1, 2, 3)
	g.tour = tr
	tr.Restore(2)
	o.Render(screen)
	waitEnter(t, g)

	ok, err := o.Reset(context.Background())
	if !ok || err != nil {
		t.Fatalf("Reset() = %v, %v; want true, nil", ok, err)
	}
	if got := <-g.exiting; got != 2 {
		t.Errorf("position during exit = %d, want 2", got)
	}
	if got := tr.Position(); got != 1 {
		t.Errorf("Position() after Reset = %d, want 1", got)
	}
}

func TestResetRejectedInFlight(t *testing.T) {
	g := newGated()
	g.gate = make(chan struct{})
	tr, o := setup(t, g, 1, 2, 3)
	tr.Restore(2)
	o.Render(screen)
	waitEnter(t, g)

	var advanced []tour.Event
	var mu sync.Mutex
	tr.AddListener(tour.ListenerFuncs{Advanced: func(e tour.Event) {
		mu.Lock()
		advanced = append(advanced, e)
		mu.Unlock()
	}})

	done := make(chan bool, 1)
	go func() {
		ok, _ := o.Next(context.Background())
		done <- ok
	}()
	<-g.exiting

	if ok, err := o.Reset(context.Background()); ok || err != nil {
		t.Errorf("Reset() while in flight = %v, %v; want false, nil", ok, err)
	}
	if got := tr.Position(); got != 2 {
		t.Errorf("Position() during exit = %d, want 2", got)
	}
	close(g.gate)

	if !<-done {
		t.Error("Next() did not commit")
	}
	if got := tr.Position(); got != 3 {
		t.Errorf("Position() = %d, want 3", got)
	}
	mu.Lock()
	defer mu.Unlock()
	want := []tour.Event{{Kind: tour.EventAdvanced, From: 2, To: 3}}
	if diff := cmp.Diff(want, advanced); diff != "" {
		t.Errorf("advanced events mismatch (-want +got):\n%s", diff)
	}
}

func TestResetFromHidden(t *testing.T) {
	g := newGated()
	tr, o := setup(t, g, 1, 2)
	tr.Skip()

	if _, ok := o.Render(screen); ok {
		t.Fatal("Render() = true on hidden tour")
	}
	ok, err := o.Reset(context.Background())
	if !ok || err != nil {
		t.Fatalf("Reset() = %v, %v; want true, nil", ok, err)
	}
	if got := tr.Position(); got != 1 {
		t.Errorf("Position() = %d, want 1", got)
	}
	select {
	case p := <-g.exiting:
		t.Errorf("unexpected exit animation at %d", p)
	default:
	}

	o.Render(screen)
	waitEnter(t, g)
}

func TestNavigationIgnoredWhileHidden(t *testing.T) {
	tr, o := setup(t, effect.NoReveal{}, 1)
	tr.Skip()
	for name, fn := range map[string]func(context.Context) (bool, error){
		"Next": o.Next, "Back": o.Back, "Skip": o.Skip,
	} {
		if ok, err := fn(context.Background()); ok || err != nil {
			t.Errorf("%s() while hidden = %v, %v; want false, nil", name, ok, err)
		}
	}
}
