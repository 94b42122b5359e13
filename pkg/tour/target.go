package tour

import (
	"github.com/matzehuels/coachmark/pkg/effect"
	"github.com/matzehuels/coachmark/pkg/geom"
)

// Target describes one highlightable element.
type Target struct {
	// Bounds is the element's rectangle in root coordinates.
	Bounds geom.Rect

	// Content is the host's renderer for the instructional bubble. The
	// engine never inspects it.
	Content any

	// Alignment is the requested content alignment.
	Alignment geom.Alignment

	// ForcedAlignment makes placement honour Alignment even when the content
	// would not fit.
	ForcedAlignment bool

	// DismissOnOutsideTap advances the tour on taps outside the hole.
	DismissOnOutsideTap bool

	Reveal effect.RevealEffect
	Style  effect.CoachStyle
}

// TargetOption configures a Target built by NewTarget.
type TargetOption func(*Target)

// NewTarget returns a Target with the default presentation: BottomCenter,
// adaptive placement, dismissed by outside taps, and the default reveal and
// style.
func NewTarget(bounds geom.Rect, content any, opts ...TargetOption) Target {
	t := Target{
		Bounds:              bounds,
		Content:             content,
		Alignment:           geom.BottomCenter,
		DismissOnOutsideTap: true,
		Reveal:              effect.DefaultReveal(),
		Style:               effect.DefaultStyle,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// WithAlignment sets the requested alignment.
func WithAlignment(a geom.Alignment) TargetOption {
	return func(t *Target) { t.Alignment = a }
}

// WithForcedAlignment sets the alignment and forces placement to honour it.
func WithForcedAlignment(a geom.Alignment) TargetOption {
	return func(t *Target) {
		t.Alignment = a
		t.ForcedAlignment = true
	}
}

// WithOutsideTapDismiss controls whether taps outside the hole advance.
func WithOutsideTapDismiss(dismiss bool) TargetOption {
	return func(t *Target) { t.DismissOnOutsideTap = dismiss }
}

// WithReveal sets the reveal effect. A nil effect keeps the default.
func WithReveal(r effect.RevealEffect) TargetOption {
	return func(t *Target) {
		if r != nil {
			t.Reveal = r
		}
	}
}

// WithStyle sets the coach style. A nil style keeps the default.
func WithStyle(s effect.CoachStyle) TargetOption {
	return func(t *Target) {
		if s != nil {
			t.Style = s
		}
	}
}

// withDefaults fills in the policies of a Target built as a literal.
func (t Target) withDefaults() Target {
	if t.Reveal == nil {
		t.Reveal = effect.DefaultReveal()
	}
	if t.Style == nil {
		t.Style = effect.DefaultStyle
	}
	return t
}
