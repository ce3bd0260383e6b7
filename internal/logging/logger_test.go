package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecretRedaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "secret is redacted", input: "my-secret-password"},
		{name: "empty secret is still redacted", input: ""},
		{name: "complex secret is redacted", input: "password123!@#"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, "[REDACTED]", Secret(tt.input).String())
			assert.Equal(t, "[REDACTED]", Secret(tt.input).GoString())
		})
	}
}

func TestLoggerWritesMarkers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(false, true).WithWriter(&buf)

	logger.Info("created %s", "Proxmox - Singapore")
	logger.Warn("careful")
	logger.Error("failed")
	logger.Plain("  pveum passwd %s", "root@pam")

	out := buf.String()
	assert.Contains(t, out, "✓ created Proxmox - Singapore\n")
	assert.Contains(t, out, "⚠ careful\n")
	assert.Contains(t, out, "✗ failed\n")
	assert.Contains(t, out, "  pveum passwd root@pam\n")
	assert.NotContains(t, out, "\033[")
}

func TestLoggerColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(false, false).WithWriter(&buf).Info("hello")

	assert.Contains(t, buf.String(), "\033[32m")
}

func TestLoggerDebugGate(t *testing.T) {
	t.Parallel()

	var quiet, loud bytes.Buffer
	New(false, true).WithWriter(&quiet).Debug("op item list")
	New(true, true).WithWriter(&loud).Debug("op item list")

	assert.Empty(t, quiet.String())
	assert.Equal(t, "[DEBUG] op item list\n", loud.String())
	assert.True(t, New(true, true).DebugEnabled())
}

func TestSecretNeverPrinted(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(true, true).WithWriter(&buf)

	logger.Debug("generated %s", Secret("hunter2hunter2"))

	assert.Contains(t, buf.String(), "[REDACTED]")
	assert.NotContains(t, buf.String(), "hunter2hunter2")
}

func TestRedactFunction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		secrets  []string
		expected string
	}{
		{
			name:     "single secret redacted",
			input:    "The password is secret123",
			secrets:  []string{"secret123"},
			expected: "The password is [REDACTED]",
		},
		{
			name:     "empty secret ignored",
			input:    "This has no secrets",
			secrets:  []string{""},
			expected: "This has no secrets",
		},
		{
			name:     "short secret ignored",
			input:    "Short secret: ab",
			secrets:  []string{"ab"},
			expected: "Short secret: ab",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Redact(tt.input, tt.secrets))
		})
	}
}

func TestRedactArgs(t *testing.T) {
	t.Parallel()

	in := []string{
		"op", "item", "create",
		"--title", "AWS - Singapore - terraform",
		"password[concealed]=abc123",
		"Secret Access Key[concealed]=wJalr",
		"username[text]=root@pam",
		"Access Key ID[concealed]=AKIA",
	}

	got := RedactArgs(in)

	assert.Equal(t, []string{
		"op", "item", "create",
		"--title", "AWS - Singapore - terraform",
		"password[concealed]=<REDACTED>",
		"Secret Access Key[concealed]=<REDACTED>",
		"username[text]=root@pam",
		"Access Key ID[concealed]=AKIA",
	}, got)
	assert.Equal(t, "password[concealed]=abc123", in[5], "input must not be modified")
}

func TestSecretValues(t *testing.T) {
	t.Parallel()

	got := SecretValues([]string{
		"item", "edit", "abc",
		"password[concealed]=hunter2=x",
		"Secret Access Key[concealed]=wJalr",
		"username[text]=root@pam",
		"--vault",
	})

	assert.Equal(t, []string{"hunter2=x", "wJalr"}, got)
	assert.Empty(t, SecretValues([]string{"vault", "list"}))
}
