package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Print version",
		Args:    cobra.NoArgs,
		// No config or op client needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "opcred %s\n", app.Version)
		},
	}
}
