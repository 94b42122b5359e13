package script

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/coachmark/pkg/effect"
	"github.com/matzehuels/coachmark/pkg/errors"
	"github.com/matzehuels/coachmark/pkg/geom"
	"github.com/matzehuels/coachmark/pkg/placement"
	"github.com/matzehuels/coachmark/pkg/tour"
)

// Tour builds a tour from the script and registers every step.
func (s *Script) Tour(opts ...tour.Option) (*tour.Tour, error) {
	all := append([]tour.Option{tour.WithStartPosition(s.StartPosition())}, opts...)
	t := tour.New(all...)
	if err := s.Register(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Register (re-)registers every step of the script on t. Registering an
// edited script on a running tour moves and restyles its targets in place.
func (s *Script) Register(t *tour.Tour) error {
	for _, st := range s.Steps {
		target, err := s.Target(st)
		if err != nil {
			return err
		}
		t.Register(st.Position, target)
	}
	return nil
}

// Target builds the tour target of one step.
func (s *Script) Target(st Step) (tour.Target, error) {
	box, ok := s.Box(st.Target)
	if !ok {
		return tour.Target{}, errors.New(errors.ErrCodeNotFound, "step %d targets unknown box %q", st.Position, st.Target)
	}

	opts := []tour.TargetOption{tour.WithOutsideTapDismiss(!st.Sticky)}
	if st.Alignment != "" {
		a, ok := geom.ParseAlignment(st.Alignment)
		if !ok {
			return tour.Target{}, errors.New(errors.ErrCodeInvalidAlignment, "step %d: unknown alignment %q", st.Position, st.Alignment)
		}
		if st.Forced {
			opts = append(opts, tour.WithForcedAlignment(a))
		} else {
			opts = append(opts, tour.WithAlignment(a))
		}
	}
	if st.Reveal != "" {
		r, ok := effect.RevealByName(st.Reveal)
		if !ok {
			return tour.Target{}, errors.New(errors.ErrCodeInvalidEffect, "step %d: unknown reveal %q", st.Position, st.Reveal)
		}
		opts = append(opts, tour.WithReveal(r))
	}
	if st.Style != "" {
		style, ok := effect.StyleByName(st.Style)
		if !ok {
			return tour.Target{}, errors.New(errors.ErrCodeInvalidStyle, "step %d: unknown style %q", st.Position, st.Style)
		}
		opts = append(opts, tour.WithStyle(style))
	}

	return tour.NewTarget(box.Rect(), Message{Title: st.Title, Text: st.Text}, opts...), nil
}

// PlacementStrategy returns the script's adaptive placement strategy.
func (s *Script) PlacementStrategy() placement.Strategy {
	st, ok := placement.ParseStrategy(s.Strategy)
	if !ok {
		log.Warn("unknown placement strategy, using band", "strategy", s.Strategy)
		return placement.StrategyBand
	}
	return st
}
