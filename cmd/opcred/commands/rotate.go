package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/systmms/opcred/internal/onepassword"
	"github.com/systmms/opcred/internal/providers"
)

func NewRotateCommand(app *App) *cobra.Command {
	var (
		vault  string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "rotate <item>",
		Aliases: []string{"r"},
		Short:   "Rotate credentials for a service",
		Long: `Rotate the secret stored in an item. The provider is picked from the
item's tags (aws, proxmox, kubernetes, traefik, otherwise generic).

AWS access keys are never rotated here; the command prints the manual
procedure and fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			res := app.Client.GetItem(ctx, args[0], vault)
			if !res.Success {
				return res.Err()
			}
			item, err := onepassword.DecodeItem(res)
			if err != nil {
				return err
			}

			name := providers.Detect(item.Tags)
			out := cmd.OutOrStdout()

			if dryRun {
				fmt.Fprintf(out, "Would rotate credentials for: %s\n", item.Title)
				fmt.Fprintf(out, "Provider: %s\n", name)
				return nil
			}

			res = providers.For(name, app.Deps(nil)).Rotate(ctx, item)
			app.Metrics.RecordRotation(name, res.Success, float64(time.Now().Unix()))
			if !res.Success {
				return res.Err()
			}
			fmt.Fprintf(out, "Rotated: %s\n", item.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&vault, "vault", "v", "", "Vault containing the item")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be changed without rotating")

	return cmd
}
