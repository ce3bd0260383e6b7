package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/systmms/opcred/internal/onepassword"
)

func NewListCommand(app *App) *cobra.Command {
	var (
		vault    string
		provider string
		site     string
		format   string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List credentials matching criteria",
		Long: `List items, optionally narrowed by vault and by provider and site tags.

Examples:
  opcred list -v HomeLab
  opcred list -p aws -s singapore
  opcred list --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "text", "json"); err != nil {
				return err
			}

			res := app.Client.ListItems(cmd.Context(), onepassword.ListFilter{
				Vault: vault,
				Tags:  listTags(provider, site),
			})
			if !res.Success {
				return res.Err()
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				if res.IsEmpty() {
					fmt.Fprintln(out, "[]")
					return nil
				}
				text, err := prettyJSON(res.Data)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
				return nil
			}

			items, err := onepassword.DecodeItems(res)
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Fprintf(out, "%s (%s)\n", item.Title, item.Vault.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&vault, "vault", "v", "", "Vault to search in")
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "Filter by provider tag")
	cmd.Flags().StringVarP(&site, "site", "s", "", "Filter by site tag")
	cmd.Flags().StringVarP(&format, "format", "F", "text", "Output format (text, json)")

	return cmd
}

func listTags(provider, site string) string {
	var tags []string
	if provider != "" {
		tags = append(tags, provider)
	}
	if site != "" {
		tags = append(tags, site)
	}
	return strings.Join(tags, ",")
}
