// Package script loads tour scripts: a screen of named boxes plus the steps
// of a tour that highlight them.
//
// Scripts are TOML or YAML, picked by file extension:
//
//	id = "welcome"
//	title = "Welcome tour"
//
//	[screen]
//	width = 80
//	height = 24
//
//	[[box]]
//	name = "menu"
//	x = 2
//	y = 1
//	w = 10
//	h = 3
//	label = "Menu"
//
//	[[step]]
//	position = 1
//	target = "menu"
//	title = "Navigation"
//	text = "Everything starts here."
//	alignment = "bottom-start"
//
// [Script.Validate] reports every invalid field at once and suggests the
// closest valid name for misspelt alignments, effects, styles and box
// references.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/coachmark/pkg/errors"
	"github.com/matzehuels/coachmark/pkg/geom"
)

// Script is a parsed tour script.
type Script struct {
	ID       string `toml:"id" yaml:"id"`
	Title    string `toml:"title" yaml:"title"`
	Start    int    `toml:"start" yaml:"start"`
	Strategy string `toml:"strategy" yaml:"strategy"`
	Screen   Screen `toml:"screen" yaml:"screen"`
	Boxes    []Box  `toml:"box" yaml:"boxes"`
	Steps    []Step `toml:"step" yaml:"steps"`
}

// Screen is the size of the scripted screen.
type Screen struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
}

// Rect returns the screen as a rectangle at the origin.
func (s Screen) Rect() geom.Rect {
	return geom.RectFromSize(0, 0, float64(s.Width), float64(s.Height))
}

// Box is one named element of the scripted screen.
type Box struct {
	Name  string `toml:"name" yaml:"name"`
	X     int    `toml:"x" yaml:"x"`
	Y     int    `toml:"y" yaml:"y"`
	W     int    `toml:"w" yaml:"w"`
	H     int    `toml:"h" yaml:"h"`
	Label string `toml:"label" yaml:"label"`
}

// Rect returns the box bounds.
func (b Box) Rect() geom.Rect {
	return geom.RectFromSize(float64(b.X), float64(b.Y), float64(b.W), float64(b.H))
}

// Step is one tour step highlighting a box.
type Step struct {
	Position  int    `toml:"position" yaml:"position"`
	Target    string `toml:"target" yaml:"target"`
	Title     string `toml:"title" yaml:"title"`
	Text      string `toml:"text" yaml:"text"`
	Alignment string `toml:"alignment" yaml:"alignment"`
	Forced    bool   `toml:"forced" yaml:"forced"`
	Sticky    bool   `toml:"sticky" yaml:"sticky"`
	Reveal    string `toml:"reveal" yaml:"reveal"`
	Style     string `toml:"style" yaml:"style"`
}

// Message is the content of a step.
type Message struct {
	Title string
	Text  string
}

// Heading returns the step title.
func (m Message) Heading() string { return m.Title }

// Body returns the step text.
func (m Message) Body() string { return m.Text }

func (m Message) String() string {
	if m.Title == "" {
		return m.Text
	}
	return m.Title + "\n" + m.Text
}

// Format is the encoding of a script file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported script format %q (use .toml, .yaml or .yml)", filepath.Ext(path))
}

// Load reads, parses and validates the script at path.
func Load(path string) (*Script, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read script %s", path)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Parse decodes a script without validating it.
func Parse(data []byte, format Format) (*Script, error) {
	var s Script
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "parse toml")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "parse yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported script format %q", format)
	}
	return &s, nil
}

// scriptNamespace scopes tour IDs derived from script contents.
var scriptNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/coachmark/script"))

// TourID returns the explicit ID or, when none is set, a stable ID derived
// from the title and the position and target of every step. Two untitled
// or same-titled scripts with different steps never share a checkpoint.
func (s *Script) TourID() string {
	if s.ID != "" {
		return s.ID
	}
	return uuid.NewSHA1(scriptNamespace, s.fingerprint()).String()
}

func (s *Script) fingerprint() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "title=%q\n", s.Title)
	for _, st := range s.Steps {
		fmt.Fprintf(&b, "step=%d:%q\n", st.Position, st.Target)
	}
	return []byte(b.String())
}

// StartPosition returns the configured start or the lowest step position.
func (s *Script) StartPosition() int {
	if s.Start != 0 || len(s.Steps) == 0 {
		return s.Start
	}
	low := s.Steps[0].Position
	for _, st := range s.Steps[1:] {
		low = min(low, st.Position)
	}
	return low
}

// Box returns the box called name.
func (s *Script) Box(name string) (Box, bool) {
	for _, b := range s.Boxes {
		if b.Name == name {
			return b, true
		}
	}
	return Box{}, false
}

func (s *Script) String() string {
	return fmt.Sprintf("%s (%d boxes, %d steps)", s.Title, len(s.Boxes), len(s.Steps))
}
