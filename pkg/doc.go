// Package pkg provides the core libraries of coachmark, a coach-mark and
// onboarding-tour engine.
//
// # Overview
//
// A tour highlights one on-screen element at a time, cuts a hole in a dimmed
// scrim around it and places an explanatory bubble next to it. The pkg
// directory is organized into four main areas:
//
//  1. Domain logic ([tour], [placement], [geom])
//  2. Presentation ([effect], [overlay], [term])
//  3. Authoring and export ([script], [statechart])
//  4. Infrastructure ([checkpoint], [remote], [errors], [observability])
//
// # Architecture
//
// The typical data flow through coachmark:
//
//	Tour script (TOML/YAML)
//	         ↓
//	    [script] package (parse, validate, build targets)
//	         ↓
//	    [tour] package (position state machine + listeners)
//	         ↓
//	    [overlay] package (placement, reveal animation, input)
//	         ↓
//	    [term] package (terminal frames) or [remote] package (JSON)
//
// # Quick Start
//
// Register targets and drive the tour by hand:
//
//	import (
//	    "github.com/matzehuels/coachmark/pkg/geom"
//	    "github.com/matzehuels/coachmark/pkg/tour"
//	)
//
//	t := tour.New()
//	t.Register(1, tour.NewTarget(geom.RectFromSize(2, 1, 10, 3), "Open the menu"))
//	t.Register(2, tour.NewTarget(geom.RectFromSize(30, 1, 20, 3), "Search here",
//	    tour.WithForcedAlignment(geom.BottomCenter)))
//
//	t.Reset()   // show step 1
//	t.Advance() // step 2
//	t.Advance() // completed, tour hidden
//
// Load a script and play it in a terminal:
//
//	sc, _ := script.Load("examples/welcome.toml")
//	t, _ := sc.Tour()
//	ov := overlay.New(t, term.DefaultBubble)
//	defer ov.Close()
//	screen := term.Screen{Width: sc.Screen.Width, Height: sc.Screen.Height}
//	model := term.NewModel(ctx, ov, screen, term.DefaultBubble)
//	tea.NewProgram(model).Run()
//
// # Main Packages
//
// [tour] - The state machine. Targets are registered under integer positions;
// the tour visits them in ascending order and notifies listeners on advance,
// retreat, skip and completion.
//
// [placement] - Pure content placement: forced alignment with clamping, the
// vertical band strategy and the alignment search.
//
// [effect] - Reveal effects (rectangle, circle, none), their animators and
// the coach styles that decide which buttons a bubble shows.
//
// [overlay] - Ties a tour to placement and effects. Renders frames, runs the
// enter and exit animations and turns taps into navigation.
//
// [term] - Bubble Tea host that draws frames onto a cell grid.
//
// [script] - Tour scripts in TOML or YAML with validation and typo hints.
//
// [statechart] - Graphviz export of a tour's navigation graph.
//
// [checkpoint] - Saved tour positions with file, Redis and MongoDB backends.
//
// [remote] - HTTP/JSON surface over an overlay.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                 # All tests
//	go test ./pkg/placement/...       # Specific package
//	go test -run Example ./pkg/...    # Examples only
//
// [tour]: https://pkg.go.dev/github.com/matzehuels/coachmark/pkg/tour
// [placement]: https://pkg.go.dev/github.com/matzehuels/coachmark/pkg/placement
// [geom]: https://pkg.go.dev/github.com/matzehuels/coachmark/pkg/geom
// [effect]: https://pkg.go.dev/github.com/matzehuels/coachmark/pkg/effect
// [overlay]: https://pkg.go.dev/github.com/matzehuels/coachmark/pkg/overlay
// [term]: https://pkg.go.dev/github.com/matzehuels/coachmark/pkg/term
// [script]: https://pkg.go.dev/github.com/matzehuels/coachmark/pkg/script
// [statechart]: https://pkg.go.dev/github.com/matzehuels/coachmark/pkg/statechart
// [checkpoint]: https://pkg.go.dev/github.com/matzehuels/coachmark/pkg/checkpoint
// [remote]: https://pkg.go.dev/github.com/matzehuels/coachmark/pkg/remote
// [errors]: https://pkg.go.dev/github.com/matzehuels/coachmark/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/coachmark/pkg/observability
package pkg
