// Package tmux supports tmuxinator project files: it resolves project roots,
// computes tmux layouts and builds common pane and window definitions.
package tmux

import (
	"context"
	"path/filepath"
	"strings"

	dserrors "github.com/systmms/opcred/internal/errors"
	pkgexec "github.com/systmms/opcred/pkg/exec"
)

// HubBinary resolves repository names to checkout paths.
const HubBinary = "hub"

// Project is one tmuxinator project backed by a repository checkout.
type Project struct {
	// File is the tmuxinator file the project was loaded from.
	File string
	// Name is the repository name looked up with hub.
	Name string
	// Root is the repository checkout. Empty when the lookup failed.
	Root string
	// Status is hub's exit code, or -1 when hub could not run.
	Status int
	// Output is what hub printed.
	Output string

	err error
}

// NewProject resolves the repository for a tmuxinator file. name overrides
// the repository name, which otherwise comes from the file name:
// ~/.config/tmuxinator/ppm-core.yml is looked up as "ppm-core".
// A failed lookup is recorded on the Project; Setup reports it.
func NewProject(ctx context.Context, executor pkgexec.CommandExecutor, path, name string) *Project {
	if name == "" {
		name = NameFromPath(path)
	}
	p := &Project{File: path, Name: name}

	stdout, stderr, err := executor.Execute(ctx, HubBinary, "list", "--path", name)
	p.Output = string(stdout)
	if err != nil {
		p.err = err
		p.Status = pkgexec.ExitCode(err)
		if p.Output == "" {
			p.Output = string(stderr)
		}
		return p
	}

	p.Root = filepath.Clean(strings.TrimSpace(p.Output))
	return p
}

// NameFromPath returns the part of path after "tmuxinator/" with the first
// ".yml" removed.
func NameFromPath(path string) string {
	if i := strings.LastIndex(path, "tmuxinator/"); i >= 0 {
		path = path[i+len("tmuxinator/"):]
	}
	return strings.Replace(path, ".yml", "", 1)
}

// Found reports whether hub resolved the repository.
func (p *Project) Found() bool {
	return p.err == nil && p.Root != ""
}

// Setup returns the project ready for use, or an error explaining how to
// find a valid repository name.
func (p *Project) Setup() (*Project, error) {
	if p.Found() {
		return p, nil
	}
	if p.err != nil && pkgexec.IsNotFound(p.err) {
		return nil, dserrors.WrapCommandNotFound(HubBinary, p.err)
	}
	msg := "Run `repo ls` to list available repositories"
	if out := strings.TrimSpace(p.Output); out != "" {
		msg = out + "\n" + msg
	}
	return nil, dserrors.UserError{
		Message:    msg,
		Suggestion: "Pass the repository name explicitly if it differs from the file name",
		Err:        p.err,
	}
}

// Subdir joins paths onto the project root.
func (p *Project) Subdir(paths ...string) string {
	return filepath.Join(append([]string{p.Root}, paths...)...)
}
