package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	dserrors "github.com/systmms/opcred/internal/errors"
	"github.com/systmms/opcred/internal/tmux"
)

func NewRootPathCommand(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "root [repository]",
		Short: "Print the checkout path of a repository",
		Long: `Resolve a repository to its checkout path with 'hub list --path'.

The repository name defaults to the name of the tmuxinator file given with
--file, e.g. ~/.config/tmuxinator/ppm-core.yml resolves ppm-core.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := loadProject(cmd, app, file, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), project.Root)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "tmuxinator project file")

	return cmd
}

func NewWindowsCommand(app *App) *cobra.Command {
	var (
		file string
		repo string
	)

	cmd := &cobra.Command{
		Use:   "windows <service>...",
		Short: "Print tmuxinator windows for services of a repository",
		Long: `Print one tmuxinator window per service, rooted at <repository>/<service>,
as YAML suitable for the windows: key.

Example:
  chorus windows --repo shop api web worker`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var nameArgs []string
			if repo != "" {
				nameArgs = []string{repo}
			}
			project, err := loadProject(cmd, app, file, nameArgs)
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(project.ServiceWindows(args...))
			if err != nil {
				return fmt.Errorf("failed to encode windows: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "tmuxinator project file")
	cmd.Flags().StringVarP(&repo, "repo", "r", "", "Repository name")

	return cmd
}

func loadProject(cmd *cobra.Command, app *App, file string, args []string) (*tmux.Project, error) {
	var name string
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" && file == "" {
		return nil, dserrors.UserError{
			Message:    "No repository given",
			Suggestion: "Pass a repository name or --file <tmuxinator file>",
		}
	}

	project := tmux.NewProject(cmd.Context(), app.Executor, file, name)
	app.Logger.Debug("hub list --path %s exited %d", project.Name, project.Status)
	return project.Setup()
}
