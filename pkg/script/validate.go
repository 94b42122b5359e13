package script

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/agnivade/levenshtein"

	"github.com/matzehuels/coachmark/pkg/effect"
	"github.com/matzehuels/coachmark/pkg/errors"
	"github.com/matzehuels/coachmark/pkg/geom"
	"github.com/matzehuels/coachmark/pkg/placement"
	"github.com/matzehuels/coachmark/pkg/tour"
)

// maxSuggestDistance bounds how different a suggestion may be.
const maxSuggestDistance = 3

// Validate checks the whole script. It returns nil or an INVALID_SCRIPT
// error wrapping every problem found; [Problems] lists them.
func (s *Script) Validate() error {
	var errs []error
	bad := func(code errors.Code, field, value string, candidates []string) {
		errs = append(errs, &errors.FieldError{
			Code:       code,
			Field:      field,
			Value:      value,
			Suggestion: suggest(value, candidates),
		})
	}

	if s.ID != "" {
		if err := errors.ValidateTourID(s.ID); err != nil {
			bad(errors.ErrCodeInvalidTourID, "id", s.ID, nil)
		}
	}
	if s.Screen.Width <= 0 || s.Screen.Height <= 0 {
		bad(errors.ErrCodeInvalidGeometry, "screen", fmt.Sprintf("%dx%d", s.Screen.Width, s.Screen.Height), nil)
	}
	if s.Strategy != "" {
		if _, ok := placement.ParseStrategy(s.Strategy); !ok {
			bad(errors.ErrCodeInvalidInput, "strategy", s.Strategy, []string{"band", "search"})
		}
	}
	if s.Start == tour.Hidden {
		bad(errors.ErrCodeInvalidInput, "start", strconv.Itoa(s.Start), nil)
	}

	names := make([]string, 0, len(s.Boxes))
	seenBox := make(map[string]bool)
	for i, b := range s.Boxes {
		field := fmt.Sprintf("box[%d]", i)
		switch {
		case b.Name == "":
			bad(errors.ErrCodeInvalidScript, field+".name", "", nil)
		case seenBox[b.Name]:
			bad(errors.ErrCodeInvalidScript, field+".name", b.Name, nil)
		}
		seenBox[b.Name] = true
		names = append(names, b.Name)
		if b.W <= 0 || b.H <= 0 {
			bad(errors.ErrCodeInvalidGeometry, field+".size", fmt.Sprintf("%dx%d", b.W, b.H), nil)
		}
	}

	if len(s.Steps) == 0 {
		bad(errors.ErrCodeInvalidScript, "step", "", nil)
	}
	seenPos := make(map[int]bool)
	for i, st := range s.Steps {
		field := fmt.Sprintf("step[%d]", i)
		if st.Position == tour.Hidden || seenPos[st.Position] {
			bad(errors.ErrCodeInvalidScript, field+".position", strconv.Itoa(st.Position), nil)
		}
		seenPos[st.Position] = true
		if !seenBox[st.Target] {
			bad(errors.ErrCodeNotFound, field+".target", st.Target, names)
		}
		if st.Alignment != "" {
			if _, ok := geom.ParseAlignment(st.Alignment); !ok {
				bad(errors.ErrCodeInvalidAlignment, field+".alignment", st.Alignment, geom.AlignmentNames())
			}
		}
		if st.Reveal != "" {
			if _, ok := effect.RevealByName(st.Reveal); !ok {
				bad(errors.ErrCodeInvalidEffect, field+".reveal", st.Reveal, effect.RevealNames())
			}
		}
		if st.Style != "" {
			if _, ok := effect.StyleByName(st.Style); !ok {
				bad(errors.ErrCodeInvalidStyle, field+".style", st.Style, effect.StyleNames())
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Wrap(errors.ErrCodeInvalidScript, stderrors.Join(errs...), "%d invalid field(s)", len(errs))
}

// Problems returns the field errors carried by a Validate error.
func Problems(err error) []*errors.FieldError {
	var out []*errors.FieldError
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if fe, ok := err.(*errors.FieldError); ok {
			out = append(out, fe)
			return
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				walk(e)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}

// suggest returns the candidate closest to value, or "" when none is close.
func suggest(value string, candidates []string) string {
	if value == "" {
		return ""
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(normalize(value), normalize(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// normalize folds case and separators so "bottom-center" is close to
// "BottomCenter".
func normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || r == ' ':
		case r >= 'A' && r <= 'Z':
			out = append(out, r+'a'-'A')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
