package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/systmms/opcred/internal/errors"
)

func TestUserErrorFormatting(t *testing.T) {
	t.Parallel()

	err := errors.UserError{
		Message:    "Operation failed",
		Details:    "vault not found",
		Suggestion: "Check the vault name",
	}

	errMsg := err.Error()

	assert.Contains(t, errMsg, "Operation failed")
	assert.Contains(t, errMsg, "Details: vault not found")
	assert.Contains(t, errMsg, "💡 Try: Check the vault name")
}

func TestUserErrorFallsBackToWrapped(t *testing.T) {
	t.Parallel()

	inner := fmt.Errorf("boom")
	err := errors.UserError{Err: inner}

	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestConfigErrorFormatting(t *testing.T) {
	t.Parallel()

	err := errors.ConfigError{
		Field:      "sites.singapore.aws_region",
		Value:      42,
		Message:    "must be a string",
		Suggestion: "Use a region name such as ap-southeast-1",
	}

	errMsg := err.Error()

	assert.Contains(t, errMsg, "sites.singapore.aws_region")
	assert.Contains(t, errMsg, "(value: 42)")
	assert.Contains(t, errMsg, "must be a string")
	assert.Contains(t, errMsg, "ap-southeast-1")
}

func TestCommandErrorFormatting(t *testing.T) {
	t.Parallel()

	err := errors.CommandError{Command: "op item get", ExitCode: 1, Message: "item not found"}

	assert.Equal(t, "Command 'op item get' failed (exit code: 1): item not found", err.Error())
}

func TestProviderErrorSuggestions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider string
		err      error
		want     string
	}{
		{
			name:     "op not signed in",
			provider: "op",
			err:      fmt.Errorf("You are not currently signed in"),
			want:     "op signin",
		},
		{
			name:     "op item not found",
			provider: "1password",
			err:      fmt.Errorf("\"foo\" not found"),
			want:     "opcred list",
		},
		{
			name:     "aws access denied",
			provider: "aws",
			err:      fmt.Errorf("AccessDenied: nope"),
			want:     "sts:GetCallerIdentity",
		},
		{
			name:     "proxmox reminder",
			provider: "proxmox",
			err:      fmt.Errorf("anything"),
			want:     "pveum passwd",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := errors.ProviderError(tt.provider, "rotate", tt.err)
			assert.Contains(t, err.Error(), tt.want)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestWrapCommandNotFound(t *testing.T) {
	t.Parallel()

	err := errors.WrapCommandNotFound("op", nil)
	assert.Contains(t, err.Error(), "mise install op")

	err = errors.WrapCommandNotFound("weird-tool", nil)
	assert.Contains(t, err.Error(), "Make sure 'weird-tool' is installed")
}

func TestSimplifyError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, errors.SimplifyError(nil))

	wrapped := fmt.Errorf("wrapped: %w", errors.UserError{Message: "already friendly"})
	assert.Equal(t, wrapped, errors.SimplifyError(wrapped))

	yamlErr := errors.SimplifyError(fmt.Errorf("load: %w", fmt.Errorf("yaml: line 3: mapping values are not allowed")))
	assert.IsType(t, errors.ConfigError{}, yamlErr)

	plain := fmt.Errorf("something else")
	assert.Equal(t, plain, errors.SimplifyError(plain))
}
