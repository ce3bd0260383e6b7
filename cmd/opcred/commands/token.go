package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	dserrors "github.com/systmms/opcred/internal/errors"
	"github.com/systmms/opcred/internal/secure"
)

func NewTokenCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the 1Password service account token in the OS keyring",
		Long: `Store a 1Password service account token in the OS keyring. While one is
stored, every op invocation receives it as OP_SERVICE_ACCOUNT_TOKEN unless
that variable is already set.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set",
			Short: "Store a token read from stdin or prompted for",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				token, err := readToken(cmd)
				if err != nil {
					return err
				}
				if err := app.Tokens.Save(token); err != nil {
					return dserrors.UserError{
						Message:    "Failed to store token",
						Details:    err.Error(),
						Suggestion: "Service account tokens start with ops_. Create one at https://my.1password.com/developer-tools",
						Err:        err,
					}
				}
				app.Logger.Info("Token stored in keyring")
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the stored token",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				err := app.Tokens.Delete()
				if errors.Is(err, secure.ErrNoToken) {
					app.Logger.Warn("No token stored")
					return nil
				}
				if err != nil {
					return err
				}
				app.Logger.Info("Token removed from keyring")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Report whether a token is stored",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				out := cmd.OutOrStdout()
				_, err := app.Tokens.Load()
				switch {
				case err == nil:
					fmt.Fprintln(out, "Service account token: stored")
				case errors.Is(err, secure.ErrNoToken):
					fmt.Fprintln(out, "Service account token: not stored")
				default:
					return err
				}
				if os.Getenv(secure.ServiceAccountTokenEnv) != "" {
					fmt.Fprintf(out, "%s is set and takes precedence\n", secure.ServiceAccountTokenEnv)
				}
				return nil
			},
		},
	)

	return cmd
}

// readToken prompts without echo on a terminal and reads one line otherwise.
func readToken(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Service account token: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(line), nil
}
