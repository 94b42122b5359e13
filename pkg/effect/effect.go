package effect

import (
	"context"
	"sort"

	"github.com/matzehuels/coachmark/pkg/geom"
)

// Canvas is the drawing surface handed to reveal effects and coach styles.
// Coordinates share the root space of the target rectangles.
type Canvas interface {
	// Bounds is the full drawable area.
	Bounds() geom.Rect

	// Dim covers r with the scrim.
	Dim(r geom.Rect)

	// Clear removes the scrim inside r.
	Clear(r geom.Rect)

	// ClearEllipse removes the scrim inside the ellipse inscribed in r.
	ClearEllipse(r geom.Rect)

	// Label draws text inside r. Emphasised labels are drawn as buttons.
	Label(r geom.Rect, text string, emphasis bool)

	// TextSize reports the space a label of text occupies.
	TextSize(text string) geom.Size
}

// RevealEffect draws the cut-out around the current target.
type RevealEffect interface {
	// Enter animates the hole in. It returns ctx.Err() when cancelled.
	Enter(ctx context.Context, bounds geom.Rect) error

	// Exit animates the hole out. It returns ctx.Err() when cancelled.
	Exit(ctx context.Context, bounds geom.Rect) error

	// DrawTargetShape clears the hole for bounds on c and returns the hole
	// rectangle used for hit-testing and content placement.
	DrawTargetShape(bounds geom.Rect, c Canvas) geom.Rect
}

// CoachStyle draws the scrim and the navigation controls.
type CoachStyle interface {
	// DrawCoachShape dims the background and returns the occupied
	// rectangle, which becomes the placement viewport.
	DrawCoachShape(bounds geom.Rect, c Canvas) geom.Rect

	// DrawCoachButtons lays out the controls inside region. A nil callback
	// omits its button.
	DrawCoachButtons(region geom.Rect, c Canvas, onBack, onSkip, onNext func()) []Button
}

// Button is one navigation control drawn by a CoachStyle.
type Button struct {
	Label   string
	Bounds  geom.Rect
	OnPress func()
}

// Hit reports whether p falls on the button.
func (b Button) Hit(p geom.Offset) bool { return b.Bounds.Contains(p) }

// DefaultReveal returns a new instance of the reveal effect of targets that
// do not set one. Each call has its own animation progress.
func DefaultReveal() RevealEffect {
	return NewRectReveal(DefaultPadding, DefaultPadding, DefaultDuration)
}

// DefaultStyle is the coach style of targets that do not set one.
var DefaultStyle CoachStyle = ScrimStyle{}

var reveals = map[string]func() RevealEffect{
	"rect":   DefaultReveal,
	"circle": func() RevealEffect { return NewCircleReveal(DefaultPadding, DefaultDuration) },
	"none":   func() RevealEffect { return NoReveal{} },
}

var styles = map[string]CoachStyle{
	"scrim":   ScrimStyle{},
	"minimal": MinimalStyle{},
}

// RevealByName returns a fresh reveal effect registered under name.
func RevealByName(name string) (RevealEffect, bool) {
	f, ok := reveals[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// StyleByName returns the coach style registered under name.
func StyleByName(name string) (CoachStyle, bool) {
	s, ok := styles[name]
	return s, ok
}

// RevealNames lists the registered reveal effect names in sorted order.
func RevealNames() []string { return sortedKeys(reveals) }

// StyleNames lists the registered coach style names in sorted order.
func StyleNames() []string { return sortedKeys(styles) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
