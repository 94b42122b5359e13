// Package remote exposes a running tour over HTTP.
//
// The server drives an [overlay.Overlay] headlessly: every request renders
// the current frame onto a [term.Grid], so placement and tap routing behave
// exactly as in the terminal player. It is meant for automation and UI tests
// that need to step through a tour without a keyboard.
//
// # Routes
//
//	GET  /tour          position, hidden flag and traversal order
//	GET  /frame         current frame: hole, content, placement, buttons
//	POST /tour/next     advance after the exit animation
//	POST /tour/back     retreat after the exit animation
//	POST /tour/skip     hide the tour
//	POST /tour/reset    restart from the first registered position
//	POST /tour/tap      route a tap, body {"x": 4.5, "y": 2.5}
//
// Navigation responses carry "committed", which is false when the request
// was dropped because another transition was in flight.
package remote
