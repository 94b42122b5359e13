// Package effect defines the two visual policies the overlay delegates to and
// ships the stock implementations.
//
// A [RevealEffect] draws the "hole" that exposes the highlighted target
// through the dimming scrim and owns the enter and exit animations around a
// step. A [CoachStyle] draws the scrim itself and lays out navigation
// buttons. Both draw onto a [Canvas], which hosts implement for their output
// medium (pkg/term implements one over a grid of terminal cells).
//
// # Defaults
//
// [DefaultReveal] and [DefaultStyle] are used for targets that do not pick a
// policy; DefaultReveal builds a new effect per target. Policies can also be
// resolved by name for scripts and flags:
//
//	r, ok := effect.RevealByName("circle")
//	s, ok := effect.StyleByName("minimal")
//
// Reveal effects carry animation progress and are safe for concurrent use,
// but a single instance animates one target at a time. Hosts running several
// overlays at once should give each its own instance.
package effect
