package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/systmms/opcred/internal/tmux"
)

func NewLayoutCommand(app *App) *cobra.Command {
	var size tmux.Size

	cmd := &cobra.Command{
		Use:   "layout [name]",
		Short: "Print a tmux layout",
		Long: `Print the tmux layout for name (default main-vertical).

Named layouts: even-horizontal, even-vertical, main-horizontal,
main-vertical, main-horizontal-mirrored, main-vertical-mirrored, tiled.

"claude" prints a custom layout sized to the terminal: a left column split
into two panes and a full-height right pane. Sizes under 40x10, detected or
given, fall back to 200x50.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := tmux.DefaultLayout
			if len(args) == 1 {
				name = args[0]
			}

			s := size
			if s.Cols <= 0 || s.Rows <= 0 {
				detected := tmux.TerminalSize(cmd.Context(), app.Executor)
				if s.Cols <= 0 {
					s.Cols = detected.Cols
				}
				if s.Rows <= 0 {
					s.Rows = detected.Rows
				}
			}
			s = tmux.ClampSize(s)
			app.Logger.Debug("terminal size %dx%d", s.Cols, s.Rows)

			fmt.Fprintln(cmd.OutOrStdout(), tmux.Layout(name, s))
			return nil
		},
	}

	cmd.Flags().IntVar(&size.Cols, "cols", 0, "Terminal width (default: detect)")
	cmd.Flags().IntVar(&size.Rows, "rows", 0, "Terminal height (default: detect)")

	return cmd
}
