// Package term hosts coach-mark tours in a terminal.
//
// Geometry is measured in cells: one unit is one column or one row. A
// [Screen] renders the host's boxes as plain text, a [Grid] implements
// effect.Canvas over that text, and [Compose] stacks the scrim, the buttons
// and the content [Bubble] into the final string. [Model] wraps all of it
// in a bubbletea program driven by keys and mouse clicks.
package term
