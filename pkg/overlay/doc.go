// Package overlay binds a tour's current target to its visual policies and
// to content placement, and owns the interaction contract.
//
// Each call to [Overlay.Render] draws the scrim, the hole and the navigation
// buttons onto a canvas, places the content next to the hole and returns
// the resulting [Frame]. Navigation ([Overlay.Next], [Overlay.Back],
// [Overlay.Skip] and [Overlay.Tap]) runs the current reveal's exit animation
// to completion before committing the transition. While one transition is in
// flight, further navigation calls are rejected, so rapid taps produce a
// single state change.
//
// Animations run on goroutines owned by the overlay. [Overlay.Close]
// cancels and joins them; a transition whose exit animation is interrupted
// by Close is dropped without error.
package overlay
