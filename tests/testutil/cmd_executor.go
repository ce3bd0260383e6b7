// Package testutil provides testing utilities for opcred and chorus.
package testutil

import (
	"context"
	"fmt"
	osexec "os/exec"
	"strings"
	"sync"
)

// MockCommandExecutor provides a configurable mock for testing CLI wrappers.
// It satisfies pkg/exec.CommandExecutor.
type MockCommandExecutor struct {
	mu sync.Mutex

	// Responses maps command patterns to their mock responses.
	// Key format: "command arg1 arg2" (space-separated command and args)
	Responses map[string]MockResponse

	// DefaultResponse is used when no matching pattern is found.
	DefaultResponse *MockResponse

	// RecordedCalls stores all calls made to Execute for verification.
	RecordedCalls []RecordedCall

	// StrictMode causes Execute to fail if no matching response is found.
	StrictMode bool
}

// MockResponse defines the expected output for a mocked command.
type MockResponse struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// RecordedCall stores information about a command execution.
type RecordedCall struct {
	Command string
	Args    []string
	Input   string
}

// Argv returns the command followed by its arguments.
func (c RecordedCall) Argv() []string {
	return append([]string{c.Command}, c.Args...)
}

// NewMockCommandExecutor creates a new mock executor with empty responses.
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{
		Responses:     make(map[string]MockResponse),
		RecordedCalls: make([]RecordedCall, 0),
	}
}

// Execute returns the mocked response for the given command.
func (m *MockCommandExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return m.record(RecordedCall{Command: name, Args: args})
}

// ExecuteWithInput records input alongside the call and returns the mocked response.
func (m *MockCommandExecutor) ExecuteWithInput(ctx context.Context, input string, name string, args ...string) ([]byte, []byte, error) {
	return m.record(RecordedCall{Command: name, Args: args, Input: input})
}

func (m *MockCommandExecutor) record(call RecordedCall) ([]byte, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RecordedCalls = append(m.RecordedCalls, call)

	key := strings.Join(call.Argv(), " ")

	if resp, ok := m.Responses[key]; ok {
		return resp.Stdout, resp.Stderr, resp.Err
	}

	// Longest matching prefix wins so specific patterns beat general ones.
	best := ""
	for pattern := range m.Responses {
		if strings.HasPrefix(key, pattern) && len(pattern) > len(best) {
			best = pattern
		}
	}
	if best != "" {
		resp := m.Responses[best]
		return resp.Stdout, resp.Stderr, resp.Err
	}

	if m.DefaultResponse != nil {
		return m.DefaultResponse.Stdout, m.DefaultResponse.Stderr, m.DefaultResponse.Err
	}

	if m.StrictMode {
		return nil, nil, fmt.Errorf("mock: no response configured for command: %s", key)
	}

	return []byte{}, []byte{}, nil
}

// AddResponse registers a mock response for a specific command pattern.
func (m *MockCommandExecutor) AddResponse(commandPattern string, response MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[commandPattern] = response
}

// AddJSONResponse is a convenience method to add a successful response.
func (m *MockCommandExecutor) AddJSONResponse(commandPattern string, jsonData string) {
	m.AddResponse(commandPattern, MockResponse{Stdout: []byte(jsonData)})
}

// AddErrorResponse adds a nonzero-exit response for a command pattern.
func (m *MockCommandExecutor) AddErrorResponse(commandPattern string, stderr string, exitCode int) {
	m.AddResponse(commandPattern, MockResponse{
		Stderr: []byte(stderr),
		Err:    fmt.Errorf("exit status %d", exitCode),
	})
}

// AddNotFoundResponse simulates the binary missing from PATH.
func (m *MockCommandExecutor) AddNotFoundResponse(commandPattern string) {
	name := strings.Fields(commandPattern)[0]
	m.AddResponse(commandPattern, MockResponse{
		Err: &osexec.Error{Name: name, Err: osexec.ErrNotFound},
	})
}

// Calls returns a copy of every recorded call.
func (m *MockCommandExecutor) Calls() []RecordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedCall, len(m.RecordedCalls))
	copy(out, m.RecordedCalls)
	return out
}

// LastCall returns the most recent call. It panics when nothing ran.
func (m *MockCommandExecutor) LastCall() RecordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RecordedCalls[len(m.RecordedCalls)-1]
}

// CallCount returns the number of times Execute was called.
func (m *MockCommandExecutor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.RecordedCalls)
}

// OnePasswordMockResponses provides pre-configured responses for the 1Password CLI.
type OnePasswordMockResponses struct{}

// AccountList returns a mock response for op account list with one account.
func (OnePasswordMockResponses) AccountList() MockResponse {
	return MockResponse{
		Stdout: []byte(`[{"url": "my.1password.com", "email": "ops@example.com", "user_uuid": "U1", "account_uuid": "A1"}]`),
	}
}

// Item returns a mock op item get response for a login item.
func (OnePasswordMockResponses) Item(id, title, vaultID string, tags []string, username, password string) MockResponse {
	quoted := make([]string, len(tags))
	for i, t := range tags {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return MockResponse{
		Stdout: []byte(fmt.Sprintf(`{
			"id": %q,
			"title": %q,
			"category": "LOGIN",
			"tags": [%s],
			"vault": {"id": %q, "name": "HomeLab"},
			"fields": [
				{"id": "notesPlain", "type": "STRING", "purpose": "NOTES", "label": "notesPlain", "value": "keep me out"},
				{"id": "username", "type": "STRING", "purpose": "USERNAME", "label": "username", "value": %q},
				{"id": "password", "type": "CONCEALED", "purpose": "PASSWORD", "label": "password", "value": %q},
				{"id": "node", "type": "STRING", "label": "Node", "value": "pve-01"}
			]
		}`, id, title, strings.Join(quoted, ", "), vaultID, username, password)),
	}
}

// ItemList returns a mock op item list response.
func (OnePasswordMockResponses) ItemList() MockResponse {
	return MockResponse{
		Stdout: []byte(`[
			{"id": "i1", "title": "Proxmox - Singapore", "category": "LOGIN", "tags": ["proxmox", "singapore"], "vault": {"id": "v1", "name": "HomeLab"}},
			{"id": "i2", "title": "AWS - Singapore - terraform", "category": "LOGIN", "tags": ["aws", "singapore"], "vault": {"id": "v2", "name": "AWS-Operations"}}
		]`),
	}
}

// HubMockResponses provides pre-configured responses for hub list.
type HubMockResponses struct{}

// Path returns the response of a successful hub list --path lookup.
func (HubMockResponses) Path(root string) MockResponse {
	return MockResponse{Stdout: []byte(root + "\n")}
}
