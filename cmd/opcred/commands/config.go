package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewConfigCommand(app *App) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "Show or set configuration",
		Long: `Read or write a configuration value. Keys are dotted paths into the
configuration file.

Examples:
  opcred config --list
  opcred config default_vault
  opcred config default_vault HomeLab
  opcred config sites.eu.aws_region eu-west-1`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := app.Config

			switch {
			case list:
				text, err := cfg.YAML()
				if err != nil {
					return err
				}
				fmt.Fprint(out, text)

			case len(args) == 2:
				key, value := args[0], args[1]
				cfg.Set(key, value)
				if err := cfg.Save(); err != nil {
					return err
				}
				fmt.Fprintf(out, "Set %s = %s\n", key, value)

			case len(args) == 1:
				text, err := formatConfigValue(cfg.Get(args[0]))
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)

			default:
				fmt.Fprintln(out, "Usage: opcred config [--list | KEY [VALUE]]")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List all configuration")

	return cmd
}

func formatConfigValue(v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return "(not set)", nil
	case map[string]interface{}:
		out, err := yaml.Marshal(val)
		if err != nil {
			return "", fmt.Errorf("failed to encode value: %w", err)
		}
		return strings.TrimRight(string(out), "\n"), nil
	default:
		return fmt.Sprint(val), nil
	}
}
