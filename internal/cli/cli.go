// Package cli implements the coachmark command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/coachmark/pkg/buildinfo"
	"github.com/matzehuels/coachmark/pkg/errors"
	"github.com/matzehuels/coachmark/pkg/placement"
	"github.com/matzehuels/coachmark/pkg/script"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "coachmark"

	// defaultAddr is where serve listens unless configured otherwise.
	defaultAddr = "127.0.0.1:7331"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath overrides the config file location.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Coachmark walks users through a screen one highlighted element at a time",
		Long:         `Coachmark plays onboarding tours: it dims the screen, cuts a hole around one element at a time and places a hint bubble next to it.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/coachmark/config.toml)")

	root.AddCommand(c.playCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.checkpointCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Script Helpers
// =============================================================================

// strategyFor resolves the --strategy flag, falling back to the script.
func strategyFor(s *script.Script, flag string) (placement.Strategy, error) {
	if flag == "" {
		return s.PlacementStrategy(), nil
	}
	st, ok := placement.ParseStrategy(flag)
	if !ok {
		return 0, errUnknownStrategy(flag)
	}
	return st, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/coachmark/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

func errUnknownStrategy(s string) error {
	return errors.New(errors.ErrCodeInvalidInput, "unknown placement strategy %q (want band or search)", s)
}
