package exec

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealCommandExecutor_Execute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		command     string
		args        []string
		wantSuccess bool
		wantOutput  string
	}{
		{
			name:        "echo command",
			command:     "echo",
			args:        []string{"hello"},
			wantSuccess: true,
			wantOutput:  "hello\n",
		},
		{
			name:        "command with multiple args",
			command:     "echo",
			args:        []string{"item", "get", "Proxmox - Singapore"},
			wantSuccess: true,
			wantOutput:  "item get Proxmox - Singapore\n",
		},
		{
			name:        "invalid command",
			command:     "nonexistent_command_xyz123",
			wantSuccess: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			executor := &RealCommandExecutor{}
			stdout, stderr, err := executor.Execute(context.Background(), tt.command, tt.args...)

			if tt.wantSuccess {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOutput, string(stdout))
				assert.Empty(t, stderr)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRealCommandExecutor_ExecuteWithInput(t *testing.T) {
	t.Parallel()

	executor := &RealCommandExecutor{}
	stdout, _, err := executor.ExecuteWithInput(context.Background(), "user={{ op://HomeLab/db/username }}", "cat")

	require.NoError(t, err)
	assert.Equal(t, "user={{ op://HomeLab/db/username }}", string(stdout))
}

func TestRealCommandExecutor_StderrCapture(t *testing.T) {
	t.Parallel()

	executor := &RealCommandExecutor{}
	stdout, stderr, err := executor.Execute(context.Background(), "sh", "-c", "echo 'stdout' && echo 'stderr' >&2")

	require.NoError(t, err)
	assert.Equal(t, "stdout\n", string(stdout))
	assert.Equal(t, "stderr\n", string(stderr))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	executor := &RealCommandExecutor{}

	_, _, err := executor.Execute(context.Background(), "sh", "-c", "exit 3")
	require.Error(t, err)
	assert.Equal(t, 3, ExitCode(err))

	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, -1, ExitCode(errors.New("boom")))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	executor := &RealCommandExecutor{}

	_, _, err := executor.Execute(context.Background(), "nonexistent_command_xyz123")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, _, err = executor.Execute(context.Background(), "sh", "-c", "exit 1")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestDefaultExecutor(t *testing.T) {
	t.Parallel()

	executor := DefaultExecutor()
	require.NotNil(t, executor)

	_, ok := executor.(*RealCommandExecutor)
	assert.True(t, ok, "DefaultExecutor should return a *RealCommandExecutor")
}

func TestRealCommandExecutor_Env(t *testing.T) {
	t.Setenv("OPCRED_EXEC_PARENT", "inherited")

	executor := &RealCommandExecutor{Env: []string{"OP_SERVICE_ACCOUNT_TOKEN=ops_abc"}}
	stdout, _, err := executor.Execute(context.Background(), "sh", "-c", `echo "$OP_SERVICE_ACCOUNT_TOKEN $OPCRED_EXEC_PARENT"`)

	require.NoError(t, err)
	assert.Equal(t, "ops_abc inherited\n", string(stdout))
}
