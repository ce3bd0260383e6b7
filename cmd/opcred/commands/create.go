package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/systmms/opcred/internal/providers"
)

func NewCreateCommand(app *App) *cobra.Command {
	var (
		opts     providers.Options
		provider string
		tags     []string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"c", "new"},
		Short:   "Create a new credential in 1Password",
		Long: `Build a credential for a provider and site and store it in 1Password.

A password is generated unless --password is given. AWS credentials carry
access-key fields instead and go to the AWS operations vault by default.

Examples:
  opcred create -p proxmox -s singapore -u root --url https://pve.sg.lab:8006
  opcred create -p aws -s singapore -S terraform -v AWS-Operations
  opcred create -p generic -s us -u admin --service traefik --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts.Extra = tags

			var accounts providers.AccountResolver
			if opts.DetectAccount && opts.AccountID == "" && providers.KindOf(provider) == providers.KindAWS {
				region := opts.Region
				if region == "" {
					region = app.Config.SiteRegion(opts.Site)
				}
				resolver, err := app.accounts(ctx, providers.STSOptions{
					Region:          region,
					AccessKeyID:     opts.AccessKeyID,
					SecretAccessKey: opts.SecretAccessKey,
				})
				if err != nil {
					return err
				}
				accounts = resolver
			}

			p := providers.For(provider, app.Deps(accounts))
			cred, err := p.BuildCredential(ctx, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintln(out, "Would create:")
				fmt.Fprintln(out, strings.Join(cred.ToOpArgs(), " \\\n  "))
				return nil
			}

			res := cred.Save(ctx, app.Client)
			app.Metrics.RecordCreate(p.Name(), res.Success)
			if !res.Success {
				return res.Err()
			}
			fmt.Fprintf(out, "Created: %s in %s\n", cred.Title, cred.Vault)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&provider, "provider", "p", "", "Provider type (aws, proxmox, kubernetes, traefik, generic)")
	f.StringVarP(&opts.Site, "site", "s", "", "Site identifier (singapore, us, etc.)")
	f.StringVarP(&opts.Service, "service", "S", "", "Service name, for sub-services")
	f.StringVarP(&opts.Vault, "vault", "v", "", "1Password vault name (default from config)")
	f.StringVarP(&opts.Username, "username", "u", "", "Username for the credential")
	f.StringVar(&opts.URL, "url", "", "Service URL")
	f.StringVar(&opts.Password, "password", "", "Provide password instead of generating")
	f.StringSliceVarP(&tags, "tag", "t", nil, "Extra tag (repeatable)")
	f.StringVar(&opts.AccessKeyID, "access-key-id", "", "AWS access key ID")
	f.StringVar(&opts.SecretAccessKey, "secret-access-key", "", "AWS secret access key")
	f.StringVar(&opts.AccountID, "account-id", "", "AWS account ID")
	f.StringVar(&opts.RoleARN, "role-arn", "", "AWS role ARN")
	f.StringVar(&opts.Region, "region", "", "AWS region (default from site)")
	f.BoolVar(&opts.DetectAccount, "detect-account", false, "Look the AWS account ID up with STS")
	f.StringVar(&opts.Node, "node", "", "Proxmox node name")
	f.BoolVar(&dryRun, "dry-run", false, "Show what would be created without creating")

	_ = cmd.MarkFlagRequired("provider")
	_ = cmd.MarkFlagRequired("site")

	return cmd
}
