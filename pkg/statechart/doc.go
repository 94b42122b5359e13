// Package statechart draws a tour's navigation graph.
//
// # Overview
//
// Every registered position becomes a node, plus one node for the hidden
// state. Edges follow the transitions the tour can take: next and back between
// neighbours in traversal order, skip from every step, complete from the last
// step, backed-out from the first and reset out of hidden.
//
// # Usage
//
//	dot := statechart.ToDOT(t, statechart.Options{Detailed: true})
//	svg, err := statechart.RenderSVG(ctx, dot)
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz in
// process, so no system installation is needed.
package statechart
