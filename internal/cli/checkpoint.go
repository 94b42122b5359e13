package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coachmark/pkg/checkpoint"
	"github.com/matzehuels/coachmark/pkg/errors"
	"github.com/matzehuels/coachmark/pkg/script"
)

// checkpointCommand creates the checkpoint management command.
func (c *CLI) checkpointCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Inspect and clear saved tour positions",
		Long: `Inspect and clear saved tour positions.

Tours are named by script path or by tour id. The backend comes from the
config file or COACHMARK_CHECKPOINT_BACKEND.`,
	}

	cmd.AddCommand(c.checkpointListCommand())
	cmd.AddCommand(c.checkpointShowCommand())
	cmd.AddCommand(c.checkpointClearCommand())

	return cmd
}

func (c *CLI) checkpointListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved tour positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(ctx context.Context, s checkpoint.Store) error {
				ids, err := checkpoint.List(ctx, s)
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					printInfo("No saved tours")
					return nil
				}
				var cps []checkpoint.Checkpoint
				for _, id := range ids {
					cp, ok, err := s.Load(ctx, id)
					if err != nil {
						return err
					}
					if ok {
						cps = append(cps, cp)
					}
				}
				writeCheckpoints(cmd.OutOrStdout(), cps)
				return nil
			})
		},
	}
}

func (c *CLI) checkpointShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <script|tour-id>",
		Short: "Show the saved position of a tour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTourID(args[0])
			if err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(ctx context.Context, s checkpoint.Store) error {
				cp, err := checkpoint.Require(ctx, s, id)
				if err != nil {
					return err
				}
				writeCheckpoints(cmd.OutOrStdout(), []checkpoint.Checkpoint{cp})
				return nil
			})
		},
	}
}

func (c *CLI) checkpointClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <script|tour-id>",
		Short: "Forget the saved position of a tour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTourID(args[0])
			if err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(ctx context.Context, s checkpoint.Store) error {
				if err := s.Delete(ctx, id); err != nil {
					return err
				}
				printSuccess("Cleared checkpoint of %s", StyleValue.Render(id))
				return nil
			})
		},
	}
}

// withStore opens the configured store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(context.Context, checkpoint.Store) error) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	s, err := openStore(ctx, cfg.Checkpoint)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s)
}

// resolveTourID maps a script path to its tour ID; anything that is not a
// file is taken as a tour ID.
func resolveTourID(arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		sc, err := script.Load(arg)
		if err != nil {
			return "", err
		}
		return sc.TourID(), nil
	}
	if err := errors.ValidateTourID(arg); err != nil {
		return "", err
	}
	return arg, nil
}

func writeCheckpoints(w io.Writer, cps []checkpoint.Checkpoint) {
	rows := make([][]string, 0, len(cps))
	for _, cp := range cps {
		state := styleActive.Render("at " + strconv.Itoa(cp.Position))
		if cp.Hidden {
			state = styleHidden.Render("finished")
		}
		rows = append(rows, []string{cp.TourID, state, formatSavedAt(cp.SavedAt)})
	}
	fmt.Fprintln(w, renderTable([]string{"Tour", "State", "Saved"}, rows))
}

func formatSavedAt(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Local().Format("2006-01-02")
	}
}
