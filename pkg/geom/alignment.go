package geom

import (
	"fmt"
	"strings"
)

// Alignment places content relative to a target rectangle. The vertical half
// picks the band (above, centered on, below) and the horizontal half picks the
// side (before, centered on, after).
type Alignment int

const (
	TopStart Alignment = iota
	TopCenter
	TopEnd
	CenterStart
	Center
	CenterEnd
	BottomStart
	BottomCenter
	BottomEnd
)

// Alignments lists every alignment in canonical search order. Adaptive search
// takes the first entry that fits, so the order decides ties.
var Alignments = []Alignment{
	TopStart, TopCenter, TopEnd,
	CenterStart, Center, CenterEnd,
	BottomStart, BottomCenter, BottomEnd,
}

var alignmentNames = [...]string{
	TopStart:     "TopStart",
	TopCenter:    "TopCenter",
	TopEnd:       "TopEnd",
	CenterStart:  "CenterStart",
	Center:       "Center",
	CenterEnd:    "CenterEnd",
	BottomStart:  "BottomStart",
	BottomCenter: "BottomCenter",
	BottomEnd:    "BottomEnd",
}

// Valid reports whether a is one of the nine defined alignments.
func (a Alignment) Valid() bool { return a >= TopStart && a <= BottomEnd }

func (a Alignment) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
	return alignmentNames[a]
}

// AlignmentNames returns the canonical names in search order.
func AlignmentNames() []string {
	out := make([]string, len(Alignments))
	for i, a := range Alignments {
		out[i] = a.String()
	}
	return out
}

// ParseAlignment accepts the canonical names case-insensitively, with or
// without '-' or '_' separators ("bottom-center", "BOTTOM_CENTER").
func ParseAlignment(s string) (Alignment, bool) {
	key := normalizeName(s)
	for _, a := range Alignments {
		if normalizeName(a.String()) == key {
			return a, true
		}
	}
	return 0, false
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid alignment %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Alignment) UnmarshalText(b []byte) error {
	v, ok := ParseAlignment(string(b))
	if !ok {
		return fmt.Errorf("unknown alignment %q", string(b))
	}
	*a = v
	return nil
}
