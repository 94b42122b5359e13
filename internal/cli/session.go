package cli

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/coachmark/pkg/overlay"
	"github.com/matzehuels/coachmark/pkg/placement"
	"github.com/matzehuels/coachmark/pkg/script"
	"github.com/matzehuels/coachmark/pkg/term"
	"github.com/matzehuels/coachmark/pkg/tour"
)

// session is a script loaded into a tour and driven by an overlay.
type session struct {
	id      string
	tour    *tour.Tour
	overlay *overlay.Overlay
	screen  term.Screen
	bubble  term.Bubble
}

func newSession(s *script.Script, strategy placement.Strategy, bubble term.Bubble, logger *log.Logger) (*session, error) {
	t, err := s.Tour(tour.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	o := overlay.New(t, bubble, overlay.WithStrategy(strategy), overlay.WithLogger(logger))
	return &session{
		id:      s.TourID(),
		tour:    t,
		overlay: o,
		screen:  screenFor(s),
		bubble:  bubble,
	}, nil
}

// reload re-registers the steps of an edited script and returns the new
// screen.
func (s *session) reload(sc *script.Script) (term.Screen, error) {
	if err := sc.Register(s.tour); err != nil {
		return term.Screen{}, err
	}
	s.screen = screenFor(sc)
	return s.screen, nil
}

func (s *session) Close() { s.overlay.Close() }

// screenFor lays out the script's boxes as a terminal screen.
func screenFor(s *script.Script) term.Screen {
	screen := term.Screen{Width: s.Screen.Width, Height: s.Screen.Height}
	for _, b := range s.Boxes {
		screen.Boxes = append(screen.Boxes, term.Box{Bounds: b.Rect(), Label: b.Label})
	}
	return screen
}

// bubbleFor returns the bubble for a configured width, 0 meaning default.
func bubbleFor(width int) term.Bubble {
	if width <= 0 {
		return term.DefaultBubble
	}
	return term.Bubble{MaxWidth: width}
}
