package geom

import (
	"fmt"
	"math"
)

// Offset is a point, or a displacement, in the shared root coordinate space.
type Offset struct {
	X, Y float64
}

// Add returns the component-wise sum of o and d.
func (o Offset) Add(d Offset) Offset { return Offset{X: o.X + d.X, Y: o.Y + d.Y} }

func (o Offset) String() string { return fmt.Sprintf("(%g, %g)", o.X, o.Y) }

// Size is a width and height pair.
type Size struct {
	Width, Height float64
}

// IsEmpty reports whether either dimension is zero, negative or NaN.
func (s Size) IsEmpty() bool { return !(s.Width > 0) || !(s.Height > 0) }

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.Width, s.Height) }

// Rect is an axis-aligned rectangle. Y grows downwards, so Top <= Bottom.
// Values built through [RectFromLTRB] or [RectFromSize] never have a negative
// width or height.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectFromLTRB builds a rectangle from its edges, swapping them if needed so
// that the result has non-negative dimensions.
func RectFromLTRB(left, top, right, bottom float64) Rect {
	if right < left {
		left, right = right, left
	}
	if bottom < top {
		top, bottom = bottom, top
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// RectFromSize builds a rectangle from its top-left corner and size.
// Negative sizes are clamped to zero.
func RectFromSize(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Right: left + math.Max(0, width), Bottom: top + math.Max(0, height)}
}

// RectAt builds a rectangle of the given size with its top-left corner at o.
func RectAt(o Offset, s Size) Rect { return RectFromSize(o.X, o.Y, s.Width, s.Height) }

// Width returns the horizontal span.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width(), Height: r.Height()} }

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool { return r.Size().IsEmpty() }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// Center returns the center point.
func (r Rect) Center() Offset { return Offset{X: r.CenterX(), Y: r.CenterY()} }

func (r Rect) TopLeft() Offset      { return Offset{X: r.Left, Y: r.Top} }
func (r Rect) TopRight() Offset     { return Offset{X: r.Right, Y: r.Top} }
func (r Rect) BottomLeft() Offset   { return Offset{X: r.Left, Y: r.Bottom} }
func (r Rect) BottomRight() Offset  { return Offset{X: r.Right, Y: r.Bottom} }
func (r Rect) TopCenter() Offset    { return Offset{X: r.CenterX(), Y: r.Top} }
func (r Rect) BottomCenter() Offset { return Offset{X: r.CenterX(), Y: r.Bottom} }
func (r Rect) CenterLeft() Offset   { return Offset{X: r.Left, Y: r.CenterY()} }
func (r Rect) CenterRight() Offset  { return Offset{X: r.Right, Y: r.CenterY()} }

// Contains reports whether p lies inside r. Edges are inclusive on all sides.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// ContainsRect reports whether o lies entirely inside r, edges included.
func (r Rect) ContainsRect(o Rect) bool {
	return r.Contains(o.TopLeft()) && r.Contains(o.BottomRight())
}

// Intersects reports whether r and o share any area. Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right && r.Top < o.Bottom && o.Top < r.Bottom
}

// Intersect returns the overlapping region of r and o, or the zero Rect if
// they do not intersect.
func (r Rect) Intersect(o Rect) Rect {
	if !r.Intersects(o) {
		return Rect{}
	}
	return Rect{
		Left:   math.Max(r.Left, o.Left),
		Top:    math.Max(r.Top, o.Top),
		Right:  math.Min(r.Right, o.Right),
		Bottom: math.Min(r.Bottom, o.Bottom),
	}
}

// Inflate grows r by dx on the left and right and dy on the top and bottom.
// Negative values shrink it; the result never inverts.
func (r Rect) Inflate(dx, dy float64) Rect {
	out := Rect{Left: r.Left - dx, Top: r.Top - dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
	if out.Right < out.Left {
		cx := r.CenterX()
		out.Left, out.Right = cx, cx
	}
	if out.Bottom < out.Top {
		cy := r.CenterY()
		out.Top, out.Bottom = cy, cy
	}
	return out
}

// Translate moves r by d.
func (r Rect) Translate(d Offset) Rect {
	return Rect{Left: r.Left + d.X, Top: r.Top + d.Y, Right: r.Right + d.X, Bottom: r.Bottom + d.Y}
}

// Lerp interpolates between r and to. t is clamped to [0, 1].
func (r Rect) Lerp(to Rect, t float64) Rect {
	t = math.Max(0, math.Min(1, t))
	mix := func(a, b float64) float64 { return a + (b-a)*t }
	return Rect{
		Left:   mix(r.Left, to.Left),
		Top:    mix(r.Top, to.Top),
		Right:  mix(r.Right, to.Right),
		Bottom: mix(r.Bottom, to.Bottom),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.Left, r.Top, r.Width(), r.Height())
}
