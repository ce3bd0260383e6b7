package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	dserrors "github.com/systmms/opcred/internal/errors"
	"github.com/systmms/opcred/internal/tmux"
	"github.com/systmms/opcred/tests/testutil"
)

var hubResponses testutil.HubMockResponses

func run(t *testing.T, mock *testutil.MockCommandExecutor, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(&App{Version: "test", Executor: mock})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--no-color"}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestRootPathCommand(t *testing.T) {
	t.Parallel()

	mock := testutil.NewMockCommandExecutor()
	mock.AddResponse("hub list --path ppm-core", hubResponses.Path("/src/ppm-core"))

	out, err := run(t, mock, "root", "ppm-core")
	require.NoError(t, err)
	assert.Equal(t, "/src/ppm-core\n", out)

	out, err = run(t, mock, "root", "--file", "/home/u/.config/tmuxinator/ppm-core.yml")
	require.NoError(t, err)
	assert.Equal(t, "/src/ppm-core\n", out)
}

func TestRootPathCommand_Errors(t *testing.T) {
	t.Parallel()

	mock := testutil.NewMockCommandExecutor()
	mock.AddErrorResponse("hub list --path", "", 1)

	_, err := run(t, mock, "root")
	var userErr dserrors.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "No repository given", userErr.Message)

	_, err = run(t, mock, "root", "ghost")
	assert.ErrorContains(t, err, "Run `repo ls` to list available repositories")
}

func TestLayoutCommand(t *testing.T) {
	t.Parallel()

	mock := testutil.NewMockCommandExecutor()

	out, err := run(t, mock, "layout", "claude", "--cols", "200", "--rows", "50")
	require.NoError(t, err)
	assert.Equal(t, "ddd5,200x50,0,0{100x50,0,0[100x25,0,0,0,100x24,0,26,1],99x50,101,0,2}\n", out)

	out, err = run(t, mock, "layout", "tiled")
	require.NoError(t, err)
	assert.Equal(t, "tiled\n", out)

	out, err = run(t, mock, "layout")
	require.NoError(t, err)
	assert.Equal(t, "main-vertical\n", out)
}

func TestWindowsCommand(t *testing.T) {
	t.Parallel()

	mock := testutil.NewMockCommandExecutor()
	mock.AddResponse("hub list --path shop", hubResponses.Path("/src/shop"))

	out, err := run(t, mock, "windows", "--repo", "shop", "api", "web")
	require.NoError(t, err)

	var windows []map[string]tmux.Window
	require.NoError(t, yaml.Unmarshal([]byte(out), &windows))
	require.Len(t, windows, 2)
	assert.Equal(t, "/src/shop/api", windows[0]["api"].Root)
	assert.Equal(t, "main-vertical", windows[1]["web"].Layout)
	assert.Equal(t, []string{"vim .", "# shell for quick commands"}, windows[1]["web"].Panes)
}

func TestWindowsCommand_RequiresServices(t *testing.T) {
	t.Parallel()

	_, err := run(t, testutil.NewMockCommandExecutor(), "windows", "--repo", "shop")
	assert.Error(t, err)
}

func TestLayoutCommand_ClampsExplicitSize(t *testing.T) {
	t.Parallel()

	mock := testutil.NewMockCommandExecutor()

	tiny, err := run(t, mock, "layout", "claude", "--cols", "1", "--rows", "1")
	require.NoError(t, err)
	fallback, err := run(t, mock, "layout", "claude", "--cols", "200", "--rows", "50")
	require.NoError(t, err)
	assert.Equal(t, fallback, tiny)

	out, err := run(t, mock, "layout", "claude", "--cols", "120", "--rows", "5")
	require.NoError(t, err)
	assert.Contains(t, out, ",120x50,0,0{")
}

func TestPanesCommand(t *testing.T) {
	t.Parallel()

	mock := testutil.NewMockCommandExecutor()

	out, err := run(t, mock, "panes", "logs", "production.log", "sidekiq.log")
	require.NoError(t, err)
	assert.True(t, len(out) > 0 && out[0] == '[', "flow-style list: %q", out)

	var panes []string
	require.NoError(t, yaml.Unmarshal([]byte(out), &panes))
	assert.Equal(t, []string{"tail -f log/production.log", "tail -f log/sidekiq.log"}, panes)

	out, err = run(t, mock, "panes", "editor")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(out), &panes))
	assert.Equal(t, []string{"vim .", "# shell for quick commands"}, panes, "comments survive quoting")
}

func TestPanesCommand_DetectsTestFramework(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0o600))

	out, err := run(t, testutil.NewMockCommandExecutor(), "panes", "tests", "--dir", dir)
	require.NoError(t, err)

	var panes []string
	require.NoError(t, yaml.Unmarshal([]byte(out), &panes))
	assert.Equal(t, []string{"npm run test", "npm run test:watch"}, panes)
}

func TestPanesCommand_UnknownPreset(t *testing.T) {
	t.Parallel()

	_, err := run(t, testutil.NewMockCommandExecutor(), "panes", "emacs")
	var userErr dserrors.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, `Unknown pane preset "emacs"`, userErr.Message)
}

func TestCmdCommand(t *testing.T) {
	t.Parallel()

	mock := testutil.NewMockCommandExecutor()

	out, err := run(t, mock, "cmd", "rails", "console")
	require.NoError(t, err)
	assert.Equal(t, "bundle exec rails console\n", out)

	out, err = run(t, mock, "cmd", "ansible", "site", "--check")
	require.NoError(t, err)
	assert.Equal(t, "ansible-playbook site.yml --check\n", out)

	out, err = run(t, mock, "cmd", "env", "staging", "rails", "server")
	require.NoError(t, err)
	assert.Equal(t, "STAGING_ENV=staging rails server\n", out)

	_, err = run(t, mock, "cmd", "svn")
	assert.ErrorContains(t, err, `Unknown command helper "svn"`)
}

func TestDetectCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.tf"), nil, 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "playbooks"), 0o755))

	out, err := run(t, testutil.NewMockCommandExecutor(), "detect", dir)
	require.NoError(t, err)
	assert.Equal(t, "terraform\nansible\n", out)

	mock := testutil.NewMockCommandExecutor()
	mock.AddResponse("hub list --path infra", hubResponses.Path(dir))
	out, err = run(t, mock, "detect", "--repo", "infra")
	require.NoError(t, err)
	assert.Equal(t, "terraform\nansible\n", out)

	out, err = run(t, testutil.NewMockCommandExecutor(), "detect", t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, out)
}
