package effect

import (
	"context"
	"math"
	"time"

	"github.com/matzehuels/coachmark/pkg/geom"
)

const (
	// DefaultPadding is the space added around a target by the stock reveals.
	DefaultPadding = 1.0

	// DefaultDuration is the length of the stock enter and exit animations.
	DefaultDuration = 500 * time.Millisecond
)

// RectReveal clears a padded rectangle around the target. Enter grows it out
// of the target's center and Exit shrinks it back.
type RectReveal struct {
	PadX, PadY float64
	Duration   time.Duration

	anim animator
}

// NewRectReveal returns a rectangular reveal with the given padding and
// animation length.
func NewRectReveal(padX, padY float64, d time.Duration) *RectReveal {
	return &RectReveal{PadX: padX, PadY: padY, Duration: d}
}

func (r *RectReveal) hole(bounds geom.Rect) geom.Rect { return bounds.Inflate(r.PadX, r.PadY) }

func (r *RectReveal) Enter(ctx context.Context, bounds geom.Rect) error {
	r.anim.snap(0)
	return r.anim.run(ctx, 1, r.Duration)
}

func (r *RectReveal) Exit(ctx context.Context, bounds geom.Rect) error {
	return r.anim.run(ctx, 0, r.Duration)
}

// DrawTargetShape clears the hole at its current animation size and returns
// the fully grown hole.
func (r *RectReveal) DrawTargetShape(bounds geom.Rect, c Canvas) geom.Rect {
	full := r.hole(bounds)
	if cur := collapsed(full).Lerp(full, r.anim.value()); !cur.IsEmpty() {
		c.Clear(cur)
	}
	return full
}

// CircleReveal clears the ellipse that passes through the target's corners,
// plus padding.
type CircleReveal struct {
	Pad      float64
	Duration time.Duration

	anim animator
}

// NewCircleReveal returns an elliptical reveal.
func NewCircleReveal(pad float64, d time.Duration) *CircleReveal {
	return &CircleReveal{Pad: pad, Duration: d}
}

func (r *CircleReveal) hole(bounds geom.Rect) geom.Rect {
	grow := (math.Sqrt2 - 1) / 2
	return bounds.Inflate(bounds.Width()*grow+r.Pad, bounds.Height()*grow+r.Pad)
}

func (r *CircleReveal) Enter(ctx context.Context, bounds geom.Rect) error {
	r.anim.snap(0)
	return r.anim.run(ctx, 1, r.Duration)
}

func (r *CircleReveal) Exit(ctx context.Context, bounds geom.Rect) error {
	return r.anim.run(ctx, 0, r.Duration)
}

func (r *CircleReveal) DrawTargetShape(bounds geom.Rect, c Canvas) geom.Rect {
	full := r.hole(bounds)
	if cur := collapsed(full).Lerp(full, r.anim.value()); !cur.IsEmpty() {
		c.ClearEllipse(cur)
	}
	return full
}

// NoReveal exposes exactly the target and never animates.
type NoReveal struct{}

func (NoReveal) Enter(ctx context.Context, _ geom.Rect) error { return ctx.Err() }
func (NoReveal) Exit(ctx context.Context, _ geom.Rect) error  { return ctx.Err() }

func (NoReveal) DrawTargetShape(bounds geom.Rect, c Canvas) geom.Rect {
	c.Clear(bounds)
	return bounds
}

// collapsed is the zero-size rectangle at the center of r.
func collapsed(r geom.Rect) geom.Rect {
	c := r.Center()
	return geom.Rect{Left: c.X, Top: c.Y, Right: c.X, Bottom: c.Y}
}
