package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/coachmark/pkg/errors"
	"github.com/matzehuels/coachmark/pkg/script"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "validate <script>...",
		Short:             "Check tour scripts for mistakes",
		Example:           `  coachmark validate examples/*.toml`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeScripts,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateScripts(args)
		},
	}
}

// validateScripts reports every problem of every script and fails if any
// script is invalid.
func validateScripts(paths []string) error {
	bad := 0
	for _, path := range paths {
		sc, err := script.Load(path)
		if err == nil {
			printSuccess("%s %s", path, StyleDim.Render(sc.String()))
			continue
		}

		bad++
		printError("%s", path)
		problems := script.Problems(err)
		if len(problems) == 0 {
			printDetail("%s", errors.UserMessage(err))
			continue
		}
		for _, p := range problems {
			printDetail("%s", p.Error())
		}
	}
	if bad > 0 {
		return errors.New(errors.ErrCodeInvalidScript, "%d of %d scripts invalid", bad, len(paths))
	}
	return nil
}
