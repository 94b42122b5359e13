package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coachmark/pkg/errors"
	"github.com/matzehuels/coachmark/pkg/script"
	"github.com/matzehuels/coachmark/pkg/statechart"
)

type graphOpts struct {
	format   string
	output   string
	detailed bool
}

// graphCommand creates the graph command, which exports a tour's
// navigation graph.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <script>",
		Short: "Export the navigation graph of a tour",
		Long: `Export the navigation graph of a tour as Graphviz DOT, SVG or PNG.

Nodes are the steps in traversal order plus the hidden state; edges are the
next, back, skip, complete, backed-out and reset transitions.`,
		Example: `  coachmark graph examples/welcome.toml
  coachmark graph -f svg -o welcome.svg --detailed examples/welcome.toml`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScripts,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "dot", "output format: dot, svg or png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include step titles in node labels")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, out io.Writer, path string, opts graphOpts) error {
	logger := loggerFromContext(ctx)

	sc, err := script.Load(path)
	if err != nil {
		return err
	}
	t, err := sc.Tour()
	if err != nil {
		return err
	}
	dot := statechart.ToDOT(t, statechart.Options{Detailed: opts.detailed})

	var data []byte
	switch f := strings.ToLower(opts.format); f {
	case "dot":
		data = []byte(dot)
	default:
		format, ok := statechart.ParseFormat(f)
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want dot, svg or png)", opts.format)
		}
		if format == statechart.PNG && opts.output == "" {
			return errors.New(errors.ErrCodeInvalidInput, "png output needs --output")
		}

		prog := newProgress(logger)
		sp := spin(ctx, os.Stderr, "Rendering "+f+"...")
		data, err = statechart.Render(ctx, dot, format)
		sp.stop()
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render %s", f)
		}
		prog.done("Rendered statechart")
	}

	if opts.output == "" {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Wrote %s graph of %s", opts.format, StyleValue.Render(sc.Title))
	printFile(opts.output)
	return nil
}
