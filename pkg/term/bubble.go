package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/coachmark/pkg/geom"
)

// Titled is content with a heading.
type Titled interface {
	Heading() string
	Body() string
}

// Bubble renders and measures step content.
type Bubble struct {
	// MaxWidth caps the bubble width including its frame.
	MaxWidth int
}

// DefaultBubble is 40 cells wide at most.
var DefaultBubble = Bubble{MaxWidth: 40}

// Measure implements overlay.Measurer.
func (b Bubble) Measure(content any, viewport geom.Rect) geom.Size {
	s := b.Render(content, int(viewport.Width()))
	return geom.Size{Width: float64(lipgloss.Width(s)), Height: float64(lipgloss.Height(s))}
}

// Render draws content inside the bubble frame, wrapping text to fit both
// MaxWidth and limit.
func (b Bubble) Render(content any, limit int) string {
	frame := BubbleStyle.GetHorizontalFrameSize()
	width := limit
	if b.MaxWidth > 0 {
		width = min(width, b.MaxWidth)
	}
	inner := max(width-frame, 1)

	var title, body string
	switch c := content.(type) {
	case Titled:
		title, body = c.Heading(), c.Body()
	case nil:
	default:
		body = fmt.Sprint(c)
	}

	natural := max(lipgloss.Width(title), lipgloss.Width(body))
	inner = min(inner, max(natural, 1))

	var parts []string
	if title != "" {
		parts = append(parts, styleBubbleTitle.Width(inner).Render(title))
	}
	if body != "" {
		parts = append(parts, lipgloss.NewStyle().Width(inner).Render(body))
	}
	return BubbleStyle.Render(strings.Join(parts, "\n"))
}
