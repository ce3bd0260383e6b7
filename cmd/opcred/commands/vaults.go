package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewVaultsCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "vaults [vault]",
		Short: "List vaults, or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				res := app.Client.GetVault(ctx, args[0])
				if !res.Success {
					return res.Err()
				}
				fmt.Fprintln(out, res.Text())
				return nil
			}

			if err := checkFormat(format, "text", "json"); err != nil {
				return err
			}

			res := app.Client.ListVaults(ctx)
			if !res.Success {
				return res.Err()
			}
			if format == "json" {
				fmt.Fprintln(out, res.Text())
				return nil
			}

			vaults, _ := res.Data.([]interface{})
			for _, v := range vaults {
				if m, ok := v.(map[string]interface{}); ok {
					fmt.Fprintln(out, m["name"])
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "F", "text", "Output format (text, json)")

	return cmd
}
