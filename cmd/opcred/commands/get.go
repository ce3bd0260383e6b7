package commands

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	dserrors "github.com/systmms/opcred/internal/errors"
	"github.com/systmms/opcred/internal/onepassword"
)

var nonEnvChars = regexp.MustCompile(`[^A-Z0-9]`)

func NewGetCommand(app *App) *cobra.Command {
	var (
		vault  string
		field  string
		format string
	)

	cmd := &cobra.Command{
		Use:     "get <item>",
		Aliases: []string{"g", "show"},
		Short:   "Retrieve a credential from 1Password",
		Long: `Show one item by name or ID.

Examples:
  opcred get "Proxmox - Singapore"
  opcred get "Aws - Singapore - terraform" -f "Access Key ID"
  opcred get "Proxmox - Us" --format env`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "text", "json", "env"); err != nil {
				return err
			}

			res := app.Client.GetItem(cmd.Context(), args[0], vault)
			if !res.Success {
				return res.Err()
			}
			item, err := onepassword.DecodeItem(res)
			if err != nil {
				return err
			}

			var output string
			switch {
			case field != "":
				if f, ok := item.Field(field); ok {
					output = f.Value
				} else {
					output = "Field not found"
				}
			case format == "json":
				output, err = prettyJSON(res.Data)
				if err != nil {
					return err
				}
			case format == "env":
				output = fieldsToEnv(item.Fields)
			default:
				output = formatItemText(item)
			}

			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&vault, "vault", "v", "", "Vault to search in")
	cmd.Flags().StringVarP(&field, "field", "f", "", "Print only this field")
	cmd.Flags().StringVarP(&format, "format", "F", "text", "Output format (text, json, env)")

	return cmd
}

// EnvKey upper-cases label and turns anything outside [A-Z0-9] into "_".
func EnvKey(label string) string {
	return nonEnvChars.ReplaceAllString(strings.ToUpper(label), "_")
}

func fieldsToEnv(fields []onepassword.ItemField) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		lines = append(lines, EnvKey(f.Label)+"="+f.Value)
	}
	return strings.Join(lines, "\n")
}

func formatItemText(item *onepassword.Item) string {
	lines := []string{
		"Title: " + item.Title,
		"Vault: " + item.Vault.Name,
	}
	if item.Fields != nil {
		lines = append(lines, "\nFields:")
		for _, f := range item.Fields {
			if f.Purpose == "NOTES" {
				continue
			}
			value := f.Value
			if f.Type == "CONCEALED" {
				value = "********"
			}
			lines = append(lines, fmt.Sprintf("  %s: %s", f.Label, value))
		}
	}
	return strings.Join(lines, "\n")
}

func prettyJSON(v interface{}) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(out), nil
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return dserrors.UserError{
		Message:    fmt.Sprintf("Unknown format %q", format),
		Suggestion: "Use one of: " + strings.Join(allowed, ", "),
	}
}
