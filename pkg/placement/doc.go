// Package placement decides where a coach mark's content bubble goes.
//
// Every function here is pure: the same viewport, target rectangle, content
// size and alignment always yield the same offset, and nothing is cached.
//
// # Forced placement
//
// [Forced] honours the requested [geom.Alignment] using the per-alignment
// formulas documented on [Anchor], then clamps the offset into the viewport.
// Content larger than the viewport is pinned to the viewport's top-left
// corner on that axis.
//
// # Adaptive placement
//
// Two strategies keep content on screen:
//
//   - [VerticalBand] puts content above or below the target, whichever band is
//     larger (below wins ties), centered horizontally on the target.
//   - [Search] tries the nine alignments in canonical order and keeps the first
//     that fits entirely, falling back to a forced BottomCenter.
//
// [Place] is the two-mode contract used by hosts; [Request.Resolve] adds the
// strategy choice and reports to the observability hooks.
//
// # Degenerate input
//
// A viewport or content size with a zero, negative or NaN dimension yields
// the zero offset instead of a NaN or inverted clamp.
package placement
