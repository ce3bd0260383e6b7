package tmux

import (
	"os"
	"path/filepath"
)

// Test frameworks known to TestPanes.
const (
	FrameworkRails = "rails"
	FrameworkNode  = "node"
	FrameworkRust  = "rust"
)

// DevLayout is the layout of generated service windows.
const DevLayout = DefaultLayout

// EditorPanes opens editor in the window root next to a spare shell.
func EditorPanes(editor string) []string {
	if editor == "" {
		editor = "vim"
	}
	return []string{editor + " .", "# shell for quick commands"}
}

func RailsServerPanes() []string {
	return []string{RailsCmd("server"), RailsCmd("console")}
}

func K8sMonitoringPanes() []string {
	return []string{
		K8sCmd("get pods -w"),
		K8sCmd("get services"),
		K8sCmd("logs -f deployment/app"),
	}
}

func DockerDevPanes() []string {
	return []string{DockerCmd(""), "docker-compose logs -f", "docker ps"}
}

// LogPanes tails each file under log/. No names means development.log and test.log.
func LogPanes(logs ...string) []string {
	if len(logs) == 0 {
		logs = []string{"development.log", "test.log"}
	}
	panes := make([]string, len(logs))
	for i, l := range logs {
		panes[i] = "tail -f log/" + l
	}
	return panes
}

// TestPanes runs the suite and a watcher for framework.
func TestPanes(framework string) []string {
	switch framework {
	case FrameworkRails:
		return []string{RailsCmd("test"), "# test watcher"}
	case FrameworkNode:
		return []string{NpmCmd("test"), NpmCmd("test:watch")}
	case FrameworkRust:
		return []string{CargoCmd("test"), CargoCmd("test -- --nocapture")}
	default:
		return []string{"# tests", "# test watcher"}
	}
}

func IsRailsProject(root string) bool {
	return exists(root, "Gemfile") && exists(root, "config", "application.rb")
}

func IsNodeProject(root string) bool {
	return exists(root, "package.json")
}

func IsTerraformProject(root string) bool {
	matches, _ := filepath.Glob(filepath.Join(root, "*.tf"))
	return len(matches) > 0
}

func IsAnsibleProject(root string) bool {
	return exists(root, "ansible.cfg") || exists(root, "playbooks") || exists(root, "roles")
}

// Window is one tmuxinator window definition.
type Window struct {
	Root   string   `yaml:"root"`
	Layout string   `yaml:"layout"`
	Panes  []string `yaml:"panes"`
}

// ServiceWindows returns one window per service, rooted at the service's
// subdirectory, in tmuxinator's list-of-single-key-maps shape.
func (p *Project) ServiceWindows(services ...string) []map[string]Window {
	windows := make([]map[string]Window, 0, len(services))
	for _, s := range services {
		windows = append(windows, map[string]Window{
			s: {
				Root:   p.Subdir(s),
				Layout: DevLayout,
				Panes:  EditorPanes(""),
			},
		})
	}
	return windows
}

func exists(root string, elem ...string) bool {
	_, err := os.Stat(filepath.Join(append([]string{root}, elem...)...))
	return err == nil
}
