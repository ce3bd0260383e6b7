package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/systmms/opcred/internal/providers"
)

func NewPolicyCommand(app *App) *cobra.Command {
	var (
		accountID    string
		templatePath string
		region       string
		profile      string
	)

	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Print the IAM policy for the credential manager role",
		Long: `Render the IAM policy that lets the credential manager create and rotate
svc-* users and lab/* secrets.

The policy comes from templates/iam_credential_manager_policy.json.tmpl next
to the config file when that exists ({{ .AccountID }} is substituted), and
from a built-in document otherwise. Without --account-id the account of the
current AWS credentials is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if accountID == "" {
				resolver, err := app.accounts(ctx, providers.STSOptions{Region: region, Profile: profile})
				if err != nil {
					return err
				}
				id, err := resolver.AccountID(ctx)
				if err != nil {
					return fmt.Errorf("failed to detect AWS account: %w", err)
				}
				accountID = id
			}

			if templatePath == "" {
				templatePath = providers.DefaultPolicyTemplatePath(app.Config.Path)
			}

			policy, err := providers.CredentialManagerPolicy(accountID, templatePath)
			if err != nil {
				return err
			}

			text, err := prettyJSON(policy)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account-id", "", "AWS account ID (default: detect with STS)")
	cmd.Flags().StringVar(&templatePath, "template", "", "Policy template path")
	cmd.Flags().StringVar(&region, "region", "", "AWS region for the STS lookup")
	cmd.Flags().StringVar(&profile, "profile", "", "AWS shared config profile for the STS lookup")

	return cmd
}
