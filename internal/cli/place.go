package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/matzehuels/coachmark/pkg/errors"
	"github.com/matzehuels/coachmark/pkg/geom"
	"github.com/matzehuels/coachmark/pkg/overlay"
	"github.com/matzehuels/coachmark/pkg/script"
	"github.com/matzehuels/coachmark/pkg/term"
)

// settleTimeout bounds the wait for the enter animation before a snapshot.
const settleTimeout = 5 * time.Second

type placeOpts struct {
	step        int
	strategy    string
	bubbleWidth int
	plain       bool
	quiet       bool
}

// placeCommand creates the place command, which renders one step without
// interaction.
func (c *CLI) placeCommand() *cobra.Command {
	var opts placeOpts

	cmd := &cobra.Command{
		Use:   "place <script>",
		Short: "Render one step of a tour and report where its bubble goes",
		Example: `  coachmark place examples/welcome.toml
  coachmark place --step 3 --strategy search --plain examples/welcome.toml`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScripts,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.step, "step", "s", 0, "position to render (default: the first step)")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "adaptive placement: band or search (default from script)")
	cmd.Flags().IntVar(&opts.bubbleWidth, "bubble-width", 0, "maximum bubble width in cells")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "strip colors from the rendering")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the placement, not the screen")

	return cmd
}

func (c *CLI) runPlace(ctx context.Context, out io.Writer, path string, opts placeOpts) error {
	logger := loggerFromContext(ctx)

	sc, err := script.Load(path)
	if err != nil {
		return err
	}
	strategy, err := strategyFor(sc, opts.strategy)
	if err != nil {
		return err
	}
	sess, err := newSession(sc, strategy, bubbleFor(opts.bubbleWidth), logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	if opts.step != 0 {
		if _, ok := sess.tour.Target(opts.step); !ok {
			return errors.New(errors.ErrCodeNotFound, "no step at position %d (have %v)", opts.step, sess.tour.Order())
		}
		sess.tour.Restore(opts.step)
	} else {
		sess.tour.Reset()
	}

	// The first render starts the enter animation; render again once it has
	// finished so the hole is drawn at full size.
	term.Snapshot(sess.overlay, sess.screen, sess.bubble)
	settleCtx, cancel := context.WithTimeout(ctx, settleTimeout)
	defer cancel()
	if err := sess.overlay.Settle(settleCtx); err != nil {
		return err
	}
	view, f, ok := term.Snapshot(sess.overlay, sess.screen, sess.bubble)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "tour has no current step")
	}

	if !opts.quiet {
		if opts.plain {
			view = ansi.Strip(view)
		}
		fmt.Fprintln(out, view)
		fmt.Fprintln(out)
	}
	writePlacement(out, f)
	return nil
}

func writePlacement(out io.Writer, f overlay.Frame) {
	fprintKeyValue(out, "position", strconv.Itoa(f.Position))
	fprintKeyValue(out, "target", fmtRect(f.Target.Bounds))
	fprintKeyValue(out, "hole", fmtRect(f.Hole))
	fprintKeyValue(out, "content", fmtRect(f.Content))
	fprintKeyValue(out, "alignment", f.Placement.Alignment.String())
	fprintKeyValue(out, "strategy", f.Placement.Strategy)
	fprintKeyValue(out, "fits", strconv.FormatBool(f.Placement.Fits))
}

func fmtRect(r geom.Rect) string {
	return fmt.Sprintf("%g,%g %gx%g", r.Left, r.Top, r.Width(), r.Height())
}
