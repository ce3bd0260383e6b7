package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	dserrors "github.com/systmms/opcred/internal/errors"
)

func NewDoctorCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the configuration and the 1Password CLI session",
		Long: `Verify that opcred is ready to use.

This command checks:
- Configuration file validity
- 1Password CLI presence and sign-in
- Access to the configured vaults`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := app.Logger
			out := cmd.OutOrStdout()

			if _, err := os.Stat(app.Config.Path); err == nil {
				log.Info("Configuration loaded from %s", app.Config.Path)
			} else {
				log.Info("No configuration file at %s, using defaults", app.Config.Path)
			}
			configErr := app.Config.Problems()

			if !app.Client.SignedIn(ctx) {
				err := app.Client.Whoami(ctx).Err()
				if err == nil {
					err = errors.New("not signed in")
				}
				return dserrors.ProviderError("op", "sign-in check", err)
			}

			who := app.Client.Whoami(ctx)
			if doc, ok := who.Data.(map[string]interface{}); ok {
				log.Info("Signed in as %v (%v)", doc["email"], doc["url"])
			} else {
				log.Info("Signed in")
			}

			res := app.Client.ListVaults(ctx)
			if !res.Success {
				return dserrors.ProviderError("op", "vault list", res.Err())
			}
			available := map[string]bool{}
			vaults, _ := res.Data.([]interface{})
			for _, v := range vaults {
				if m, ok := v.(map[string]interface{}); ok {
					if name, ok := m["name"].(string); ok {
						available[name] = true
					}
				}
			}

			missing := 0
			for _, purpose := range []string{"default", "aws_operations", "aws_bootstrap"} {
				name := app.Config.VaultFor(purpose)
				if available[name] {
					fmt.Fprintf(out, "  %-16s %s\n", purpose, name)
					continue
				}
				missing++
				log.Warn("Vault %q (%s) is not accessible", name, purpose)
			}

			if missing > 0 {
				return dserrors.UserError{
					Message:    fmt.Sprintf("%d configured vault(s) not accessible", missing),
					Suggestion: "List vaults with 'opcred vaults' and fix them with 'opcred config <key> <value>'",
				}
			}
			if configErr != nil {
				return configErr
			}
			log.Info("All checks passed")
			return nil
		},
	}
}
