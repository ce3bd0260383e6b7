package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/systmms/opcred/internal/tmux"
)

func NewPanesCommand(app *App) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "panes <preset> [args...]",
		Short: "Print a pane preset as an inline YAML list",
		Long: `Print the panes of a preset as a flow-style YAML list, ready for a
tmuxinator panes: key.

Presets: ` + strings.Join(tmux.PaneSetNames(), ", ") + `

  editor [editor]       editor plus a spare shell (default vim)
  logs [file...]        tail -f log/<file> (default development.log test.log)
  tests [framework]     suite and watcher; framework detected from --dir when omitted

Example:
  panes: <%= ` + "`chorus panes logs production.log`" + ` %>`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, rest := args[0], args[1:]
			if preset == "tests" && len(rest) == 0 {
				if fw := tmux.TestFramework(dir); fw != "" {
					app.Logger.Debug("detected %s tests in %s", fw, dir)
					rest = []string{fw}
				}
			}

			panes, err := tmux.Panes(preset, rest)
			if err != nil {
				return err
			}
			out, err := flowList(panes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Checkout used to detect the test framework")

	return cmd
}

func NewCmdCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cmd <helper> [args...]",
		Short: "Print a command line built by a helper",
		Long: `Print a command line for a tmuxinator pane.

Helpers: ` + strings.Join(tmux.CommandNames(), ", ") + `

Examples:
  chorus cmd rails console              # bundle exec rails console
  chorus cmd ansible site --check       # ansible-playbook site.yml --check
  chorus cmd env staging rails server   # STAGING_ENV=staging rails server

Arguments after the helper name are passed through, flags included.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := tmux.Command(args[0], args[1:])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)

	return cmd
}

func NewDetectCommand(app *App) *cobra.Command {
	var repo string

	cmd := &cobra.Command{
		Use:   "detect [dir]",
		Short: "Print the kinds of project found in a checkout",
		Long: `Print one line per project kind (rails, node, terraform, ansible) found
in dir, the current directory by default, or in the checkout of --repo.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if repo != "" {
				project, err := loadProject(cmd, app, "", []string{repo})
				if err != nil {
					return err
				}
				dir = project.Root
			}

			for _, kind := range tmux.ProjectKinds(dir) {
				fmt.Fprintln(cmd.OutOrStdout(), kind)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&repo, "repo", "r", "", "Repository name resolved with hub")

	return cmd
}

// flowList renders items as ["a", "b"], which tmuxinator reads inline.
func flowList(items []string) (string, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, item := range items {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item,
			Style: yaml.DoubleQuotedStyle,
		})
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("failed to encode panes: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
