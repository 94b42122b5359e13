// Package geom defines the value types shared by the coach-mark engine:
// rectangles, sizes, offsets and the nine relative alignments.
//
// All coordinates live in one root space with Y growing downwards. The
// package has no notion of pixels or terminal cells; hosts pick the unit.
package geom
