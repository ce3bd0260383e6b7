package commands

import (
	"github.com/spf13/cobra"

	"github.com/systmms/opcred/internal/logging"
	pkgexec "github.com/systmms/opcred/pkg/exec"
)

// App carries chorus's global flags and collaborators.
type App struct {
	Debug   bool
	NoColor bool
	Version string

	Logger *logging.Logger
	// Executor runs hub and tput. Nil means the real binaries.
	Executor pkgexec.CommandExecutor
}

// NewRootCommand assembles the chorus command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chorus",
		Short: "Helpers for tmuxinator project files",
		Long: `chorus resolves repository roots, computes tmux layouts and generates
window definitions for tmuxinator projects.

Use it from ERB in a tmuxinator file, for example:
  root: <%= ` + "`chorus root ppm-core`" + ` %>
  layout: <%= ` + "`chorus layout claude`" + ` %>
  panes: <%= ` + "`chorus panes rails-server`" + ` %>`,
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.Logger = logging.New(app.Debug, app.NoColor).WithWriter(cmd.ErrOrStderr())
			if app.Executor == nil {
				app.Executor = pkgexec.DefaultExecutor()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&app.NoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		NewRootPathCommand(app),
		NewLayoutCommand(app),
		NewWindowsCommand(app),
		NewPanesCommand(app),
		NewCmdCommand(app),
		NewDetectCommand(app),
	)

	return rootCmd
}
