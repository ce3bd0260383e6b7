package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/systmms/opcred/internal/providers"
	"github.com/systmms/opcred/tests/testutil"
)

var opResponses testutil.OnePasswordMockResponses

type harness struct {
	app        *App
	mock       *testutil.MockCommandExecutor
	logs       *bytes.Buffer
	configPath string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mock := testutil.NewMockCommandExecutor()
	logs := &bytes.Buffer{}
	return &harness{
		app: &App{
			Version:   "0.1.0",
			Executor:  mock,
			LogOutput: logs,
			AccountResolver: func(ctx context.Context, opts providers.STSOptions) (providers.AccountResolver, error) {
				return testutil.StaticAccount("123456789012"), nil
			},
		},
		mock:       mock,
		logs:       logs,
		configPath: filepath.Join(t.TempDir(), "config.yml"),
	}
}

// run executes the opcred command tree with args and returns stdout.
func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(h.app)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", h.configPath, "--no-color"}, args...))

	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := h.run(t, "", args...)
	require.NoError(t, err)
	return out
}
