package statechart

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/coachmark/pkg/tour"
)

// Options configures chart generation.
type Options struct {
	// Detailed adds the step content to node labels.
	Detailed bool

	// MarkCurrent fills the node of the tour's current position.
	MarkCurrent bool
}

const hiddenNode = "hidden"

// labelWidth caps detailed node labels.
const labelWidth = 32

// ToDOT converts the tour's navigation graph to Graphviz DOT.
func ToDOT(t *tour.Tour, opts Options) string {
	order := t.Order()
	current := t.Position()

	var buf bytes.Buffer
	buf.WriteString("digraph tour {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	hiddenAttrs := []string{"label=\"hidden\"", "shape=doublecircle"}
	if opts.MarkCurrent && current == tour.Hidden {
		hiddenAttrs = append(hiddenAttrs, "fillcolor=lightblue")
	}
	fmt.Fprintf(&buf, "  %q [%s];\n", hiddenNode, strings.Join(hiddenAttrs, ", "))

	for _, pos := range order {
		target, _ := t.Target(pos)
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(pos, target, opts.Detailed))}
		if opts.MarkCurrent && pos == current {
			attrs = append(attrs, "fillcolor=lightblue")
		}
		if target.DismissOnOutsideTap {
			attrs = append(attrs, "peripheries=1")
		} else {
			attrs = append(attrs, "peripheries=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", node(pos), strings.Join(attrs, ", "))
	}

	if len(order) == 0 {
		buf.WriteString("}\n")
		return buf.String()
	}

	buf.WriteString("\n")
	fmt.Fprintf(&buf, "  %q -> %q [label=\"reset\", style=dotted];\n", hiddenNode, node(order[0]))
	for i, pos := range order {
		if i < len(order)-1 {
			fmt.Fprintf(&buf, "  %q -> %q [label=\"next\"];\n", node(pos), node(order[i+1]))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [label=\"complete\"];\n", node(pos), hiddenNode)
		}
		if i > 0 {
			fmt.Fprintf(&buf, "  %q -> %q [label=\"back\"];\n", node(pos), node(order[i-1]))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [label=\"backed-out\"];\n", node(pos), hiddenNode)
		}
		fmt.Fprintf(&buf, "  %q -> %q [label=\"skip\", style=dashed, color=grey];\n", node(pos), hiddenNode)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func node(pos int) string { return fmt.Sprintf("step%d", pos) }

func fmtLabel(pos int, t tour.Target, detailed bool) string {
	head := fmt.Sprintf("%d", pos)
	if !detailed || t.Content == nil {
		return head
	}

	var text string
	switch c := t.Content.(type) {
	case interface{ Heading() string }:
		text = c.Heading()
	default:
		text = fmt.Sprint(c)
	}
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return head
	}
	return head + "\n" + ansi.Truncate(text, labelWidth, "…")
}

// Format selects a Graphviz output format.
type Format = graphviz.Format

const (
	SVG Format = graphviz.SVG
	PNG Format = graphviz.PNG
)

// ParseFormat maps "svg" or "png" to a Format.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "svg", "":
		return SVG, true
	case "png":
		return PNG, true
	}
	return "", false
}

// Render lays out a DOT graph with Graphviz and encodes it in format.
func Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderSVG renders a DOT graph to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, SVG)
}
