package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/coachmark/pkg/effect"
	"github.com/matzehuels/coachmark/pkg/geom"
)

type label struct {
	rect     geom.Rect
	text     string
	emphasis bool
}

// Grid is an effect.Canvas over a fixed block of plain text.
type Grid struct {
	width, height int
	runes         [][]rune
	dim           [][]bool
	labels        []label
}

// NewGrid returns a grid showing lines, padded or cut to width x height.
func NewGrid(lines []string, width, height int) *Grid {
	g := &Grid{width: width, height: height}
	g.runes = make([][]rune, height)
	g.dim = make([][]bool, height)
	for y := range height {
		row := make([]rune, width)
		for x := range row {
			row[x] = ' '
		}
		if y < len(lines) {
			i := 0
			for _, r := range ansi.Strip(lines[y]) {
				if i >= width {
					break
				}
				row[i] = r
				i++
			}
		}
		g.runes[y] = row
		g.dim[y] = make([]bool, width)
	}
	return g
}

func (g *Grid) Bounds() geom.Rect {
	return geom.RectFromSize(0, 0, float64(g.width), float64(g.height))
}

func (g *Grid) Dim(r geom.Rect) { g.fill(r, true) }

func (g *Grid) Clear(r geom.Rect) { g.fill(r, false) }

// ClearEllipse clears every cell whose center lies in the ellipse inscribed
// in r.
func (g *Grid) ClearEllipse(r geom.Rect) {
	rx, ry := r.Width()/2, r.Height()/2
	if rx <= 0 || ry <= 0 {
		return
	}
	c := r.Center()
	g.each(r, func(x, y int) {
		dx := (float64(x) + 0.5 - c.X) / rx
		dy := (float64(y) + 0.5 - c.Y) / ry
		if dx*dx+dy*dy <= 1 {
			g.dim[y][x] = false
		}
	})
}

func (g *Grid) Label(r geom.Rect, text string, emphasis bool) {
	g.labels = append(g.labels, label{rect: r, text: text, emphasis: emphasis})
}

// TextSize is the label width plus one cell of padding on each side.
func (g *Grid) TextSize(text string) geom.Size {
	return geom.Size{Width: float64(ansi.StringWidth(text) + 2), Height: 1}
}

// Dimmed reports whether the cell at (x, y) is under the scrim.
func (g *Grid) Dimmed(x, y int) bool {
	if y < 0 || y >= g.height || x < 0 || x >= g.width {
		return false
	}
	return g.dim[y][x]
}

func (g *Grid) fill(r geom.Rect, v bool) {
	g.each(r, func(x, y int) { g.dim[y][x] = v })
}

// each visits every cell touched by r.
func (g *Grid) each(r geom.Rect, fn func(x, y int)) {
	l, t, rt, b := cells(r)
	for y := max(t, 0); y < min(b, g.height); y++ {
		for x := max(l, 0); x < min(rt, g.width); x++ {
			fn(x, y)
		}
	}
}

// String renders the grid with scrim styling and labels.
func (g *Grid) String() string {
	rows := make([]string, g.height)
	for y := range g.height {
		var sb strings.Builder
		start := 0
		for x := 1; x <= g.width; x++ {
			if x < g.width && g.dim[y][x] == g.dim[y][start] {
				continue
			}
			run := string(g.runes[y][start:x])
			if g.dim[y][start] {
				run = styleScrim.Render(run)
			}
			sb.WriteString(run)
			start = x
		}
		rows[y] = sb.String()
	}
	out := strings.Join(rows, "\n")

	for _, l := range g.labels {
		x, y, r, _ := cells(l.rect)
		style := styleLabel
		if l.emphasis {
			style = styleButton
		}
		text := style.Width(r - x).Align(lipgloss.Center).Render(ansi.Truncate(l.text, r-x, ""))
		out = overlayAt(out, text, x, y, g.width)
	}
	return out
}

// cells converts r to the half-open cell range it touches.
func cells(r geom.Rect) (left, top, right, bottom int) {
	return int(math.Floor(r.Left)), int(math.Floor(r.Top)), int(math.Ceil(r.Right)), int(math.Ceil(r.Bottom))
}

// CellCenter is the root-space point at the center of cell (x, y).
func CellCenter(x, y int) geom.Offset {
	return geom.Offset{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

var _ effect.Canvas = (*Grid)(nil)
