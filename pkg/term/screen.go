package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/coachmark/pkg/geom"
)

// Box is one element of a terminal screen.
type Box struct {
	Bounds geom.Rect
	Label  string
}

// Screen is the host content under the overlay.
type Screen struct {
	Width, Height int
	Boxes         []Box
}

// Rect returns the screen area.
func (s Screen) Rect() geom.Rect {
	return geom.RectFromSize(0, 0, float64(s.Width), float64(s.Height))
}

var styleBox = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Align(lipgloss.Center)

// Lines renders the boxes as plain text, one string per row.
func (s Screen) Lines() []string {
	out := strings.Repeat(strings.Repeat(" ", s.Width)+"\n", max(s.Height-1, 0)) + strings.Repeat(" ", s.Width)
	for _, b := range s.Boxes {
		l, t, r, bt := cells(b.Bounds)
		w, h := r-l, bt-t
		if w < 2 || h < 2 {
			continue
		}
		drawn := styleBox.Width(w - 2).Height(h - 2).Render(ansi.Truncate(b.Label, w-2, ""))
		out = overlayAt(out, ansi.Strip(drawn), l, t, s.Width)
	}
	return strings.Split(out, "\n")
}
