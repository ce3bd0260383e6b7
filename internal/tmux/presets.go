package tmux

import (
	"fmt"
	"sort"
	"strings"

	dserrors "github.com/systmms/opcred/internal/errors"
)

// Project kinds reported by ProjectKinds.
const (
	KindRails     = "rails"
	KindNode      = "node"
	KindTerraform = "terraform"
	KindAnsible   = "ansible"
)

var paneSets = map[string]func(args []string) []string{
	"editor":       func(args []string) []string { return EditorPanes(strings.Join(args, " ")) },
	"rails-server": func([]string) []string { return RailsServerPanes() },
	"k8s":          func([]string) []string { return K8sMonitoringPanes() },
	"docker":       func([]string) []string { return DockerDevPanes() },
	"logs":         func(args []string) []string { return LogPanes(args...) },
	"tests":        func(args []string) []string { return TestPanes(strings.Join(args, " ")) },
}

// PaneSetNames lists the presets Panes knows, sorted.
func PaneSetNames() []string {
	return sortedKeys(paneSets)
}

// Panes returns the panes of a named preset. args are passed to the preset:
// the editor for "editor", log file names for "logs", the framework for "tests".
func Panes(preset string, args []string) ([]string, error) {
	build, ok := paneSets[preset]
	if !ok {
		return nil, dserrors.UserError{
			Message:    fmt.Sprintf("Unknown pane preset %q", preset),
			Suggestion: "Use one of: " + strings.Join(PaneSetNames(), ", "),
		}
	}
	return build(args), nil
}

var commandHelpers = map[string]func(args []string) (string, error){
	"rails":   joined(RailsCmd),
	"k8s":     joined(K8sCmd),
	"tf":      joined(TfCmd),
	"git":     joined(GitCmd),
	"npm":     joined(NpmCmd),
	"yarn":    joined(YarnCmd),
	"cargo":   joined(CargoCmd),
	"go":      joined(GoCmd),
	"bundle":  joined(BundleCmd),
	"docker":  joined(DockerCmd),
	"make":    joined(MakeCmd),
	"ansible": ansibleCommand,
	"env":     envCommand,
}

func joined(helper func(string) string) func(args []string) (string, error) {
	return func(args []string) (string, error) {
		return helper(strings.Join(args, " ")), nil
	}
}

func ansibleCommand(args []string) (string, error) {
	if len(args) == 0 {
		return AnsibleCmd("", ""), nil
	}
	return strings.TrimSpace(AnsibleCmd(args[0], strings.Join(args[1:], " "))), nil
}

func envCommand(args []string) (string, error) {
	if len(args) < 2 {
		return "", dserrors.UserError{
			Message:    "env needs an environment and a command",
			Suggestion: "chorus cmd env staging rails server",
		}
	}
	return EnvCmd(strings.Join(args[1:], " "), args[0]), nil
}

// CommandNames lists the helpers Command knows, sorted.
func CommandNames() []string {
	return sortedKeys(commandHelpers)
}

// Command renders a command helper by name with args joined by spaces.
// "ansible" takes the playbook first; "env" takes the environment first.
func Command(helper string, args []string) (string, error) {
	build, ok := commandHelpers[helper]
	if !ok {
		return "", dserrors.UserError{
			Message:    fmt.Sprintf("Unknown command helper %q", helper),
			Suggestion: "Use one of: " + strings.Join(CommandNames(), ", "),
		}
	}
	return build(args)
}

// ProjectKinds reports what the checkout at root looks like.
func ProjectKinds(root string) []string {
	var kinds []string
	if IsRailsProject(root) {
		kinds = append(kinds, KindRails)
	}
	if IsNodeProject(root) {
		kinds = append(kinds, KindNode)
	}
	if IsTerraformProject(root) {
		kinds = append(kinds, KindTerraform)
	}
	if IsAnsibleProject(root) {
		kinds = append(kinds, KindAnsible)
	}
	return kinds
}

// TestFramework picks the TestPanes framework for the checkout at root.
// Rails wins over node; Cargo.toml means rust.
func TestFramework(root string) string {
	switch {
	case IsRailsProject(root):
		return FrameworkRails
	case IsNodeProject(root):
		return FrameworkNode
	case exists(root, "Cargo.toml"):
		return FrameworkRust
	default:
		return ""
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
