package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// completionShells maps each supported shell to its script generator.
var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// scriptExts are the file extensions offered when completing a script path.
var scriptExts = []string{"toml", "yaml", "yml"}

// completeScripts offers tour script files for a command's first argument.
func completeScripts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 && cmd.Name() != "validate" {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return scriptExts, cobra.ShellCompDirectiveFilterFileExt
}

// completionCommand prints a completion script. Script arguments of play,
// place, graph, serve and validate complete to .toml and .yaml files.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <bash|zsh|fish|powershell>",
		Short: "Print a shell completion script",
		Long: `Print a completion script for your shell. Script arguments complete to
tour files (.toml, .yaml, .yml).

Try it in the current shell:
  bash        source <(coachmark completion bash)
  zsh         source <(coachmark completion zsh)
  fish        coachmark completion fish | source
  powershell  coachmark completion powershell | Out-String | Invoke-Expression

Install it for new shells by writing the output to your shell's completion
directory, e.g. ~/.config/fish/completions/coachmark.fish.`,
		Example:               `  coachmark completion zsh > "${fpath[1]}/_coachmark"`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
