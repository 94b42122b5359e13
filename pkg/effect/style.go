package effect

import "github.com/matzehuels/coachmark/pkg/geom"

// ScrimStyle dims the whole canvas and draws Back (top start), Next (top
// end) and Skip (bottom center). Empty labels fall back to the English
// defaults.
type ScrimStyle struct {
	BackLabel, NextLabel, SkipLabel string
}

func (ScrimStyle) DrawCoachShape(_ geom.Rect, c Canvas) geom.Rect {
	b := c.Bounds()
	c.Dim(b)
	return b
}

func (s ScrimStyle) DrawCoachButtons(region geom.Rect, c Canvas, onBack, onSkip, onNext func()) []Button {
	var out []Button
	add := func(label string, a geom.Alignment, fn func()) {
		if fn == nil {
			return
		}
		size := c.TextSize(label)
		r := geom.RectAt(alignIn(region, size, a), size)
		c.Label(r, label, true)
		out = append(out, Button{Label: label, Bounds: r, OnPress: fn})
	}
	add(or(s.BackLabel, "Back"), geom.TopStart, onBack)
	add(or(s.NextLabel, "Next"), geom.TopEnd, onNext)
	add(or(s.SkipLabel, "Skip"), geom.BottomCenter, onSkip)
	return out
}

// MinimalStyle dims the canvas and draws no buttons; the tour is driven by
// taps alone.
type MinimalStyle struct{}

func (MinimalStyle) DrawCoachShape(_ geom.Rect, c Canvas) geom.Rect {
	b := c.Bounds()
	c.Dim(b)
	return b
}

func (MinimalStyle) DrawCoachButtons(geom.Rect, Canvas, func(), func(), func()) []Button {
	return nil
}

// alignIn positions size inside region at alignment a.
func alignIn(region geom.Rect, size geom.Size, a geom.Alignment) geom.Offset {
	x := region.Left
	switch a {
	case geom.TopCenter, geom.Center, geom.BottomCenter:
		x = region.CenterX() - size.Width/2
	case geom.TopEnd, geom.CenterEnd, geom.BottomEnd:
		x = region.Right - size.Width
	}
	y := region.Top
	switch a {
	case geom.CenterStart, geom.Center, geom.CenterEnd:
		y = region.CenterY() - size.Height/2
	case geom.BottomStart, geom.BottomCenter, geom.BottomEnd:
		y = region.Bottom - size.Height
	}
	return geom.Offset{X: x, Y: y}
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
