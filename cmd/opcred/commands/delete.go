package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewDeleteCommand(app *App) *cobra.Command {
	var (
		vault   string
		archive bool
	)

	cmd := &cobra.Command{
		Use:     "delete <item>",
		Aliases: []string{"rm"},
		Short:   "Delete a credential from 1Password",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if res := app.Client.DeleteItem(cmd.Context(), args[0], vault, archive); !res.Success {
				return res.Err()
			}

			verb := "Deleted"
			if archive {
				verb = "Archived"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", verb, args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&vault, "vault", "v", "", "Vault containing the item")
	cmd.Flags().BoolVar(&archive, "archive", false, "Move the item to the archive instead of deleting it")

	return cmd
}
