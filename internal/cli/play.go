package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/coachmark/pkg/checkpoint"
	"github.com/matzehuels/coachmark/pkg/script"
	"github.com/matzehuels/coachmark/pkg/term"
)

type playOpts struct {
	strategy     string
	bubbleWidth  int
	watch        bool
	restart      bool
	noCheckpoint bool
}

// playCommand creates the interactive play command.
func (c *CLI) playCommand() *cobra.Command {
	var opts playOpts

	cmd := &cobra.Command{
		Use:   "play <script>",
		Short: "Play a tour interactively in the terminal",
		Long: `Play a tour script in the terminal.

The scripted screen is drawn as boxes, the overlay dims it and cuts a hole
around the current box. Navigate with n/b/s or the mouse. The position is
checkpointed, so an interrupted tour resumes where it stopped.`,
		Example: `  coachmark play examples/welcome.toml
  coachmark play --watch --strategy search examples/welcome.toml
  coachmark play --restart examples/welcome.toml`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScripts,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "adaptive placement: band or search (default from script)")
	cmd.Flags().IntVar(&opts.bubbleWidth, "bubble-width", 0, "maximum bubble width in cells")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the script when it changes")
	cmd.Flags().BoolVar(&opts.restart, "restart", false, "ignore the saved position and start over")
	cmd.Flags().BoolVar(&opts.noCheckpoint, "no-checkpoint", false, "do not save or resume the position")

	return cmd
}

func (c *CLI) runPlay(cmd *cobra.Command, path string, opts playOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.config()
	if err != nil {
		return err
	}
	sc, err := script.Load(path)
	if err != nil {
		return err
	}
	if opts.strategy == "" {
		opts.strategy = cfg.Play.Strategy
	}
	strategy, err := strategyFor(sc, opts.strategy)
	if err != nil {
		return err
	}
	if opts.bubbleWidth == 0 {
		opts.bubbleWidth = cfg.Play.BubbleWidth
	}

	sess, err := newSession(sc, strategy, bubbleFor(opts.bubbleWidth), logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	store := checkpoint.NewNullStore()
	if !opts.noCheckpoint {
		if store, err = openStore(ctx, cfg.Checkpoint); err != nil {
			return err
		}
	}
	defer store.Close()

	if !opts.restart {
		resumed, err := checkpoint.Resume(ctx, store, sess.id, sess.tour)
		if err != nil {
			logger.Warn("checkpoint not loaded", "err", err)
		}
		if resumed && sess.tour.IsHidden() {
			printInfo("Tour %s already finished", StyleValue.Render(sc.Title))
			printNextStep("Play it again", "coachmark play --restart "+path)
			return nil
		}
		if resumed {
			logger.Info("resuming tour", "position", sess.tour.Position())
		}
	}
	checkpoint.Track(ctx, store, sess.id, sess.tour, logger)

	model := term.NewModel(ctx, sess.overlay, sess.screen, sess.bubble)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())

	if opts.watch {
		go func() {
			err := watchScript(ctx, path, logger, func(ns *script.Script) {
				screen, err := sess.reload(ns)
				if err != nil {
					logger.Warn("script not applied", "err", err)
					return
				}
				program.Send(term.ReloadMsg{Screen: screen})
			})
			if err != nil {
				logger.Warn("watch stopped", "err", err)
			}
		}()
	}

	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(term.Model); ok && m.Completed() {
		printSuccess("Finished %s", StyleValue.Render(sc.Title))
	}
	return nil
}
