package placement

import (
	"math"
	"time"

	"github.com/matzehuels/coachmark/pkg/geom"
	"github.com/matzehuels/coachmark/pkg/observability"
)

// Strategy selects how adaptive (non-forced) placement picks a position.
type Strategy int

const (
	// StrategyBand compares the space above and below the target and anchors
	// the content in the larger band. Ties go below.
	StrategyBand Strategy = iota

	// StrategySearch tries every alignment in [geom.Alignments] order and takes
	// the first whose content rectangle fits inside the viewport.
	StrategySearch
)

func (s Strategy) String() string {
	switch s {
	case StrategyBand:
		return "band"
	case StrategySearch:
		return "search"
	default:
		return "unknown"
	}
}

// ParseStrategy maps "band" or "search" to a Strategy.
func ParseStrategy(s string) (Strategy, bool) {
	switch s {
	case "band", "":
		return StrategyBand, true
	case "search":
		return StrategySearch, true
	}
	return 0, false
}

// Anchor returns the unclamped top-left offset of content placed at the given
// alignment relative to target.
//
//	TopStart     (T.left - w,       T.top - h)
//	TopCenter    (T.centerX - w/2,  T.top - h)
//	TopEnd       (T.right,          T.top - h)
//	CenterStart  (T.left - w,       T.centerY - h/2)
//	Center       (T.centerX - w/2,  T.centerY - h/2)
//	CenterEnd    (T.right,          T.centerY - h/2)
//	BottomStart  (T.left - w,       T.bottom)
//	BottomCenter (T.centerX - w/2,  T.bottom)
//	BottomEnd    (T.right,          T.bottom)
//
// Unknown alignments anchor at the origin.
func Anchor(target geom.Rect, content geom.Size, a geom.Alignment) geom.Offset {
	w, h := content.Width, content.Height

	var x, y float64
	switch a {
	case geom.TopStart, geom.CenterStart, geom.BottomStart:
		x = target.Left - w
	case geom.TopCenter, geom.Center, geom.BottomCenter:
		x = target.CenterX() - w/2
	case geom.TopEnd, geom.CenterEnd, geom.BottomEnd:
		x = target.Right
	default:
		return geom.Offset{}
	}

	switch a {
	case geom.TopStart, geom.TopCenter, geom.TopEnd:
		y = target.Top - h
	case geom.CenterStart, geom.Center, geom.CenterEnd:
		y = target.CenterY() - h/2
	default:
		y = target.Bottom
	}
	return geom.Offset{X: x, Y: y}
}

// Clamp moves o so that content placed there stays inside viewport on both
// axes. When content is larger than the viewport on an axis, the low edge
// wins and the content overflows past the high edge.
func Clamp(viewport geom.Rect, content geom.Size, o geom.Offset) geom.Offset {
	return geom.Offset{
		X: clampAxis(o.X, viewport.Left, viewport.Right-content.Width),
		Y: clampAxis(o.Y, viewport.Top, viewport.Bottom-content.Height),
	}
}

func clampAxis(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}

// Forced places content at alignment a and clamps the result into viewport.
// It never searches for a better alignment.
func Forced(viewport, target geom.Rect, content geom.Size, a geom.Alignment) geom.Offset {
	if degenerate(viewport, content) {
		return geom.Offset{}
	}
	return Clamp(viewport, content, Anchor(target, content, a))
}

// VerticalBand places content in whichever band, above or below target, has
// more room. Below wins ties. Content that fits sits flush against the target
// edge; content that does not fit sits flush against the viewport edge of the
// chosen band. Horizontally the content is centered on the target.
func VerticalBand(viewport, target geom.Rect, content geom.Size) geom.Offset {
	if degenerate(viewport, content) {
		return geom.Offset{}
	}

	above := target.Top - viewport.Top
	below := viewport.Bottom - target.Bottom

	var y float64
	if below >= above {
		if content.Height <= below {
			y = target.Bottom
		} else {
			y = viewport.Bottom - content.Height
		}
	} else {
		if content.Height <= above {
			y = target.Top - content.Height
		} else {
			y = viewport.Top
		}
	}

	x := target.CenterX() - content.Width/2
	return Clamp(viewport, content, geom.Offset{X: x, Y: y})
}

// Search walks [geom.Alignments] and returns the first alignment whose
// unclamped content rectangle lies fully inside viewport. If none does, it
// falls back to a forced [geom.BottomCenter].
func Search(viewport, target geom.Rect, content geom.Size) (geom.Alignment, geom.Offset) {
	a, o, _ := search(viewport, target, content)
	return a, o
}

func search(viewport, target geom.Rect, content geom.Size) (geom.Alignment, geom.Offset, bool) {
	if degenerate(viewport, content) {
		return geom.BottomCenter, geom.Offset{}, false
	}
	for _, a := range geom.Alignments {
		o := Anchor(target, content, a)
		if inside(viewport, o, content) {
			return a, o, true
		}
	}
	return geom.BottomCenter, Forced(viewport, target, content, geom.BottomCenter), false
}

// Place is the placement contract: forced placement honours alignment and only
// clamps; adaptive placement uses [VerticalBand].
func Place(viewport, target geom.Rect, content geom.Size, alignment geom.Alignment, forced bool) geom.Offset {
	if forced {
		return Forced(viewport, target, content, alignment)
	}
	return VerticalBand(viewport, target, content)
}

// Request bundles every input of one placement decision.
type Request struct {
	Viewport  geom.Rect
	Target    geom.Rect
	Content   geom.Size
	Alignment geom.Alignment
	Forced    bool
	Strategy  Strategy
}

// Result is the outcome of [Request.Resolve].
type Result struct {
	// Offset is the top-left corner of the content.
	Offset geom.Offset

	// Alignment is the alignment that produced Offset. For the band strategy it
	// is TopCenter or BottomCenter depending on the chosen band.
	Alignment geom.Alignment

	// Strategy is "forced", "band" or "search".
	Strategy string

	// Fits reports whether the content rectangle lies fully inside the viewport.
	Fits bool
}

// Rect returns the content rectangle described by the result.
func (r Result) Rect(content geom.Size) geom.Rect { return geom.RectAt(r.Offset, content) }

// Resolve runs the placement described by r and reports it to the
// registered placement hooks.
func (r Request) Resolve() Result {
	start := time.Now()
	res := r.resolve()
	observability.Placement().OnPlace(res.Strategy, res.Alignment.String(), res.Fits, time.Since(start))
	return res
}

func (r Request) resolve() Result {
	if r.Forced {
		o := Forced(r.Viewport, r.Target, r.Content, r.Alignment)
		return Result{Offset: o, Alignment: r.Alignment, Strategy: "forced", Fits: r.fits(o)}
	}

	switch r.Strategy {
	case StrategySearch:
		a, o, _ := search(r.Viewport, r.Target, r.Content)
		return Result{Offset: o, Alignment: a, Strategy: StrategySearch.String(), Fits: r.fits(o)}
	default:
		o := VerticalBand(r.Viewport, r.Target, r.Content)
		a := geom.BottomCenter
		if o.Y < r.Target.Bottom && o.Y+r.Content.Height <= r.Target.Top {
			a = geom.TopCenter
		}
		return Result{Offset: o, Alignment: a, Strategy: StrategyBand.String(), Fits: r.fits(o)}
	}
}

func (r Request) fits(o geom.Offset) bool {
	if degenerate(r.Viewport, r.Content) {
		return false
	}
	return inside(r.Viewport, o, r.Content)
}

// epsilon absorbs rounding in x+w after a clamp to right-w.
const epsilon = 1e-9

// inside reports whether content placed at o lies within viewport, edges
// included.
func inside(viewport geom.Rect, o geom.Offset, content geom.Size) bool {
	tol := epsilon * math.Max(1, math.Max(math.Abs(viewport.Right), math.Abs(viewport.Bottom)))
	return o.X >= viewport.Left-tol && o.Y >= viewport.Top-tol &&
		o.X+content.Width <= viewport.Right+tol && o.Y+content.Height <= viewport.Bottom+tol
}

// degenerate reports inputs for which no meaningful placement exists.
func degenerate(viewport geom.Rect, content geom.Size) bool {
	return viewport.Size().IsEmpty() || content.IsEmpty() ||
		math.IsNaN(viewport.Left) || math.IsNaN(viewport.Top)
}
