package placement

import (
	"math"
	"math/rand"
	"testing"

	"github.com/matzehuels/coachmark/pkg/geom"
)

var canvas = geom.RectFromLTRB(0, 0, 1080, 2400)

func TestVerticalBandPrefersBelowWhenMoreSpace(t *testing.T) {
	target := geom.RectFromLTRB(100, 1000, 300, 1200)
	content := geom.Size{Width: 200, Height: 200}

	got := VerticalBand(canvas, target, content)

	if got.Y != target.Bottom {
		t.Errorf("Y = %v, want %v (target bottom)", got.Y, target.Bottom)
	}
	if got.X != 100 {
		t.Errorf("X = %v, want 100 (centered on target)", got.X)
	}
}

func TestVerticalBandPrefersAboveWhenMoreSpace(t *testing.T) {
	target := geom.RectFromLTRB(100, 1800, 300, 2000)
	content := geom.Size{Width: 200, Height: 200}

	got := VerticalBand(canvas, target, content)

	if want := target.Top - content.Height; got.Y != want {
		t.Errorf("Y = %v, want %v", got.Y, want)
	}
}

func TestVerticalBandTieGoesBelow(t *testing.T) {
	vp := geom.RectFromLTRB(0, 0, 100, 100)
	target := geom.RectFromLTRB(40, 40, 60, 60) // 40 above, 40 below
	content := geom.Size{Width: 20, Height: 10}

	got := VerticalBand(vp, target, content)

	if got.Y != 60 {
		t.Errorf("Y = %v, want 60 (below on tie)", got.Y)
	}
}

func TestVerticalBandTooTall(t *testing.T) {
	vp := geom.RectFromLTRB(0, 0, 100, 100)

	tests := []struct {
		name   string
		target geom.Rect
		wantY  float64
	}{
		{
			name:   "below band flushes to bottom edge",
			target: geom.RectFromLTRB(40, 20, 60, 30), // 20 above, 70 below
			wantY:  20,                                // 100 - 80
		},
		{
			name:   "above band flushes to top edge",
			target: geom.RectFromLTRB(40, 70, 60, 80), // 70 above, 20 below
			wantY:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerticalBand(vp, tt.target, geom.Size{Width: 10, Height: 80})
			if got.Y != tt.wantY {
				t.Errorf("Y = %v, want %v", got.Y, tt.wantY)
			}
		})
	}
}

func TestVerticalBandClampsX(t *testing.T) {
	target := geom.RectFromLTRB(1000, 500, 1100, 600)
	content := geom.Size{Width: 300, Height: 100}

	got := VerticalBand(canvas, target, content)

	if got.X < 0 || got.X > canvas.Width()-content.Width {
		t.Errorf("X = %v, want within [0, %v]", got.X, canvas.Width()-content.Width)
	}
}

func TestForcedBottomCenter(t *testing.T) {
	target := geom.RectFromLTRB(100, 100, 300, 200)
	content := geom.Size{Width: 100, Height: 50}

	got := Forced(canvas, target, content, geom.BottomCenter)

	want := geom.Offset{X: target.CenterX() - content.Width/2, Y: target.Bottom}
	if got != want {
		t.Errorf("Forced() = %v, want %v", got, want)
	}
}

func TestForcedClampsOversizedContent(t *testing.T) {
	small := geom.RectFromLTRB(0, 0, 100, 100)
	target := geom.RectFromLTRB(90, 90, 110, 110)
	content := geom.Size{Width: 200, Height: 200}

	if raw := Anchor(target, content, geom.BottomEnd); raw != (geom.Offset{X: 110, Y: 110}) {
		t.Fatalf("Anchor() = %v, want (110, 110)", raw)
	}

	got := Forced(small, target, content, geom.BottomEnd)
	if got != (geom.Offset{}) {
		t.Errorf("Forced() = %v, want (0, 0)", got)
	}
}

func TestAnchorFormulas(t *testing.T) {
	target := geom.RectFromLTRB(400, 1000, 600, 1100) // center (500, 1050)
	content := geom.Size{Width: 100, Height: 40}

	tests := []struct {
		align geom.Alignment
		want  geom.Offset
	}{
		{geom.TopStart, geom.Offset{X: 300, Y: 960}},
		{geom.TopCenter, geom.Offset{X: 450, Y: 960}},
		{geom.TopEnd, geom.Offset{X: 600, Y: 960}},
		{geom.CenterStart, geom.Offset{X: 300, Y: 1030}},
		{geom.Center, geom.Offset{X: 450, Y: 1030}},
		{geom.CenterEnd, geom.Offset{X: 600, Y: 1030}},
		{geom.BottomStart, geom.Offset{X: 300, Y: 1100}},
		{geom.BottomCenter, geom.Offset{X: 450, Y: 1100}},
		{geom.BottomEnd, geom.Offset{X: 600, Y: 1100}},
	}

	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			if got := Anchor(target, content, tt.align); got != tt.want {
				t.Errorf("Anchor() = %v, want %v", got, tt.want)
			}
			// Target and content are well inside the canvas, so forcing must
			// not move the content.
			if got := Forced(canvas, target, content, tt.align); got != tt.want {
				t.Errorf("Forced() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnchorUnknownAlignment(t *testing.T) {
	got := Anchor(geom.RectFromLTRB(10, 10, 20, 20), geom.Size{Width: 1, Height: 1}, geom.Alignment(99))
	if got != (geom.Offset{}) {
		t.Errorf("Anchor() = %v, want origin", got)
	}
}

func TestSearchFirstFitWins(t *testing.T) {
	target := geom.RectFromLTRB(400, 1000, 600, 1100)
	content := geom.Size{Width: 100, Height: 40}

	a, o := Search(canvas, target, content)

	if a != geom.TopStart {
		t.Errorf("alignment = %v, want TopStart", a)
	}
	if o != (geom.Offset{X: 300, Y: 960}) {
		t.Errorf("offset = %v, want (300, 960)", o)
	}
}

func TestSearchSkipsClippingAlignments(t *testing.T) {
	// Target hugging the top-left corner: every Top* and *Start alignment clips.
	target := geom.RectFromLTRB(0, 0, 50, 50)
	content := geom.Size{Width: 40, Height: 20}

	a, o := Search(canvas, target, content)

	if a != geom.Center {
		t.Errorf("alignment = %v, want Center", a)
	}
	if o != (geom.Offset{X: 5, Y: 15}) {
		t.Errorf("offset = %v, want (5, 15)", o)
	}
}

func TestSearchFallsBackToBottomCenter(t *testing.T) {
	vp := geom.RectFromLTRB(0, 0, 100, 100)
	target := geom.RectFromLTRB(0, 0, 100, 100)
	content := geom.Size{Width: 120, Height: 50} // wider than the viewport

	a, o := Search(vp, target, content)

	if a != geom.BottomCenter {
		t.Errorf("alignment = %v, want BottomCenter", a)
	}
	if want := Forced(vp, target, content, geom.BottomCenter); o != want {
		t.Errorf("offset = %v, want %v", o, want)
	}
}

func TestPlaceDispatch(t *testing.T) {
	target := geom.RectFromLTRB(100, 1800, 300, 2000)
	content := geom.Size{Width: 200, Height: 200}

	forced := Place(canvas, target, content, geom.BottomCenter, true)
	if forced.Y != target.Bottom {
		t.Errorf("forced Y = %v, want %v", forced.Y, target.Bottom)
	}

	adaptive := Place(canvas, target, content, geom.BottomCenter, false)
	if adaptive.Y != 1600 {
		t.Errorf("adaptive Y = %v, want 1600", adaptive.Y)
	}
}

func TestDegenerateInput(t *testing.T) {
	target := geom.RectFromLTRB(10, 10, 20, 20)

	tests := []struct {
		name     string
		viewport geom.Rect
		content  geom.Size
	}{
		{"zero viewport", geom.Rect{}, geom.Size{Width: 10, Height: 10}},
		{"negative viewport", geom.Rect{Left: 0, Top: 0, Right: -5, Bottom: 10}, geom.Size{Width: 1, Height: 1}},
		{"zero content", canvas, geom.Size{}},
		{"negative content", canvas, geom.Size{Width: -3, Height: 4}},
		{"nan content", canvas, geom.Size{Width: math.NaN(), Height: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, forced := range []bool{true, false} {
				if got := Place(tt.viewport, target, tt.content, geom.TopEnd, forced); got != (geom.Offset{}) {
					t.Errorf("Place(forced=%v) = %v, want (0, 0)", forced, got)
				}
			}
			if _, got := Search(tt.viewport, target, tt.content); got != (geom.Offset{}) {
				t.Errorf("Search() = %v, want (0, 0)", got)
			}
		})
	}
}

func TestNaNTargetClampsToViewport(t *testing.T) {
	target := geom.Rect{Left: math.NaN(), Top: math.NaN(), Right: math.NaN(), Bottom: math.NaN()}
	got := Forced(canvas, target, geom.Size{Width: 10, Height: 10}, geom.Center)
	if math.IsNaN(got.X) || math.IsNaN(got.Y) {
		t.Errorf("Forced() = %v, want finite offset", got)
	}
}

// TestAdaptiveContainment checks that adaptive placement keeps content inside
// the viewport for random targets whenever the content is smaller than it.
func TestAdaptiveContainment(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		vp := geom.RectFromSize(0, 0, 50+rng.Float64()*2000, 50+rng.Float64()*3000)
		content := geom.Size{
			Width:  1 + rng.Float64()*(vp.Width()-1),
			Height: 1 + rng.Float64()*(vp.Height()-1),
		}
		tl := geom.Offset{X: rng.Float64() * vp.Width(), Y: rng.Float64() * vp.Height()}
		target := geom.RectFromSize(tl.X, tl.Y, rng.Float64()*(vp.Width()-tl.X), rng.Float64()*(vp.Height()-tl.Y))

		for _, strategy := range []Strategy{StrategyBand, StrategySearch} {
			res := Request{Viewport: vp, Target: target, Content: content, Strategy: strategy}.Resolve()
			if !inside(vp, res.Offset, content) {
				t.Fatalf("%s: content %v escapes viewport %v (target %v)", strategy, res.Rect(content), vp, target)
			}
			if !res.Fits {
				t.Fatalf("%s: Fits = false for contained content", strategy)
			}
		}
	}
}

func TestRequestResolve(t *testing.T) {
	target := geom.RectFromLTRB(100, 1800, 300, 2000)
	content := geom.Size{Width: 200, Height: 200}

	tests := []struct {
		name      string
		req       Request
		strategy  string
		alignment geom.Alignment
	}{
		{
			name:      "forced keeps alignment",
			req:       Request{Viewport: canvas, Target: target, Content: content, Alignment: geom.CenterEnd, Forced: true},
			strategy:  "forced",
			alignment: geom.CenterEnd,
		},
		{
			name:      "band above",
			req:       Request{Viewport: canvas, Target: target, Content: content},
			strategy:  "band",
			alignment: geom.TopCenter,
		},
		{
			name:      "band below",
			req:       Request{Viewport: canvas, Target: geom.RectFromLTRB(100, 100, 300, 300), Content: content},
			strategy:  "band",
			alignment: geom.BottomCenter,
		},
		{
			name:      "search",
			req:       Request{Viewport: canvas, Target: target, Content: content, Strategy: StrategySearch},
			strategy:  "search",
			alignment: geom.TopCenter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.req.Resolve()
			if res.Strategy != tt.strategy {
				t.Errorf("Strategy = %v, want %v", res.Strategy, tt.strategy)
			}
			if res.Alignment != tt.alignment {
				t.Errorf("Alignment = %v, want %v", res.Alignment, tt.alignment)
			}
		})
	}
}

func TestParseStrategy(t *testing.T) {
	if s, ok := ParseStrategy("search"); !ok || s != StrategySearch {
		t.Errorf("ParseStrategy(search) = %v, %v", s, ok)
	}
	if s, ok := ParseStrategy(""); !ok || s != StrategyBand {
		t.Errorf("ParseStrategy(\"\") = %v, %v", s, ok)
	}
	if _, ok := ParseStrategy("spiral"); ok {
		t.Error("ParseStrategy(spiral) should fail")
	}
}
