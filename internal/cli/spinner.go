package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// spinInterval is the time each spinner frame stays on screen.
const spinInterval = 120 * time.Millisecond

// spinFrames walk a highlight across four steps, like a tour does.
var spinFrames = []string{"●○○○", "○●○○", "○○●○", "○○○●", "○○●○", "○●○○"}

// spinner redraws one status line on w until it is stopped or ctx ends.
// Each redraw starts with a carriage return, so w should be a terminal.
type spinner struct {
	w       io.Writer
	message string
	cancel  context.CancelFunc
	exited  chan struct{}
	once    sync.Once
}

// spin starts a spinner showing message on w.
func spin(ctx context.Context, w io.Writer, message string) *spinner {
	return spinEvery(ctx, w, message, spinInterval)
}

func spinEvery(ctx context.Context, w io.Writer, message string, every time.Duration) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{w: w, message: message, cancel: cancel, exited: make(chan struct{})}
	go s.loop(ctx, every)
	return s
}

func (s *spinner) loop(ctx context.Context, every time.Duration) {
	defer close(s.exited)
	tick := time.NewTicker(every)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinFrames[frame%len(spinFrames)]), StyleDim.Render(s.message))
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}
	}
}

// stop ends the animation and blanks the line. Only the first call does
// anything.
func (s *spinner) stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.exited
		width := ansi.StringWidth(spinFrames[0]) + 1 + ansi.StringWidth(s.message)
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", width))
	})
}
