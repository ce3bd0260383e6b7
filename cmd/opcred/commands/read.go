package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	dserrors "github.com/systmms/opcred/internal/errors"
)

func NewReadCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read <op://vault/item/field>",
		Short: "Print the value behind a secret reference",
		Long: `Resolve one secret reference and print its value.

Example:
  export AWS_SECRET_ACCESS_KEY=$(opcred read "op://AWS-Operations/Aws - Singapore - terraform/Secret Access Key")`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := args[0]
			if !strings.HasPrefix(ref, "op://") {
				return dserrors.UserError{
					Message:    fmt.Sprintf("Not a secret reference: %s", ref),
					Suggestion: "References look like op://<vault>/<item>/<field>",
				}
			}

			res := app.Client.Read(cmd.Context(), ref)
			if !res.Success {
				return res.Err()
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Text())
			return nil
		},
	}
}

func NewInjectCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inject [template]",
		Short: "Replace secret references in a template",
		Long: `Read a template from a file, or stdin when no file is given, and print it
with every {{ op://... }} reference replaced by its value.

Example:
  opcred inject .env.tpl > .env`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				template []byte
				err      error
			)
			if len(args) == 1 {
				template, err = os.ReadFile(args[0])
			} else {
				template, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return dserrors.SimplifyError(fmt.Errorf("failed to read template: %w", err))
			}

			res := app.Client.Inject(cmd.Context(), string(template))
			if !res.Success {
				return res.Err()
			}
			fmt.Fprint(cmd.OutOrStdout(), res.Text())
			return nil
		},
	}
}
