package term

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/coachmark/pkg/overlay"
)

// overlayAt writes overlay over base with its top-left corner at (x, y).
// Both strings may carry ANSI styling; widths are measured in cells. Rows
// outside base are dropped.
func overlayAt(base, overlay string, x, y, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := maxLineWidth(overlayLines)

	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		target := padRight(baseLines[row], width)

		cut, start := line, x
		if x < 0 {
			cut = ansi.TruncateLeft(line, -x, "")
			start = 0
		}
		if start >= width {
			continue
		}

		left := ansi.Truncate(target, start, "")
		if w := ansi.StringWidth(left); w < start {
			left += strings.Repeat(" ", start-w)
		}
		mid := ansi.Truncate(padRight(cut, overlayWidth+min(x, 0)), width-start, "")
		end := start + ansi.StringWidth(mid)
		right := ansi.TruncateLeft(target, end, "")
		baseLines[row] = left + mid + right
	}
	return strings.Join(baseLines, "\n")
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}

// Compose renders f over g and adds the content bubble at f.Content.
func Compose(g *Grid, f overlay.Frame, b Bubble) string {
	out := g.String()
	if f.Content.IsEmpty() {
		return out
	}
	x, y, _, _ := cells(f.Content)
	bubble := b.Render(f.Target.Content, int(f.Viewport.Width()))
	return overlayAt(out, bubble, x, y, g.width)
}

// Snapshot renders one frame of o over s. Without a current target it
// returns the bare screen.
func Snapshot(o *overlay.Overlay, s Screen, b Bubble) (string, overlay.Frame, bool) {
	lines := s.Lines()
	g := NewGrid(lines, s.Width, s.Height)
	f, ok := o.Render(g)
	if !ok {
		return strings.Join(lines, "\n"), overlay.Frame{}, false
	}
	return Compose(g, f, b), f, true
}
