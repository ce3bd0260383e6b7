// Package onepassword drives the 1Password CLI. Every operation is a single
// op invocation whose outcome comes back as a Result rather than an error.
package onepassword

import (
	"context"
	"encoding/json"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode"

	dserrors "github.com/systmms/opcred/internal/errors"
	"github.com/systmms/opcred/internal/logging"
	pkgexec "github.com/systmms/opcred/pkg/exec"
)

// Binary is the executable name of the 1Password CLI.
const Binary = "op"

// DebugEnv enables command logging when set to "1".
const DebugEnv = "OPCREDS_DEBUG"

// DebugEnvAlias is accepted as well as DebugEnv.
const DebugEnvAlias = "OPCRED_DEBUG"

var errorPrefix = regexp.MustCompile(`^\[ERROR\]\s*\d{4}/\d{2}/\d{2}\s*\d{2}:\d{2}:\d{2}\s*`)

// Recorder observes op invocations.
type Recorder interface {
	RecordCommand(command string, success bool, durationSeconds float64)
}

// Client wraps op invocations.
type Client struct {
	executor pkgexec.CommandExecutor
	logger   *logging.Logger
	recorder Recorder
	debug    bool
}

// NewClient creates a client that runs the real op binary.
func NewClient(logger *logging.Logger) *Client {
	return NewClientWithExecutor(pkgexec.DefaultExecutor(), logger)
}

// NewClientWithExecutor creates a client with a custom executor.
// This is primarily for testing, allowing command execution to be mocked.
func NewClientWithExecutor(executor pkgexec.CommandExecutor, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.New(false, true)
	}
	return &Client{
		executor: executor,
		logger:   logger,
		debug:    DebugFromEnv() || logger.DebugEnabled(),
	}
}

// DebugFromEnv reports whether OPCREDS_DEBUG or OPCRED_DEBUG is "1".
func DebugFromEnv() bool {
	return os.Getenv(DebugEnv) == "1" || os.Getenv(DebugEnvAlias) == "1"
}

// SetDebug toggles command logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SetRecorder installs r to observe every invocation. Nil disables it.
func (c *Client) SetRecorder(r Recorder) {
	c.recorder = r
}

// Run invokes op with args.
func (c *Client) Run(ctx context.Context, args ...string) Result {
	c.logCommand(args)
	start := time.Now()
	stdout, stderr, err := c.executor.Execute(ctx, Binary, args...)

	var res Result
	if err != nil {
		res = failure(stderr, err, args)
	} else {
		res = parseOutput(stdout, args)
	}
	c.record(args, res, start)
	return res
}

// CreateRequest describes a new item.
type CreateRequest struct {
	Category string
	Title    string
	Vault    string
	Tags     []string
	Fields   []Field
	URL      string
}

// CreateItemArgs builds the argument vector, without the binary name, for
// creating req. CreateItem sends exactly this vector.
func CreateItemArgs(req CreateRequest) []string {
	args := []string{"item", "create"}
	args = append(args, "--category", req.Category)
	args = append(args, "--title", req.Title)
	args = append(args, "--vault", req.Vault)
	if len(req.Tags) > 0 {
		args = append(args, "--tags", strings.Join(req.Tags, ","))
	}
	args = append(args, "--format", "json")

	for _, f := range req.Fields {
		args = append(args, FieldAssignment(f.Label, f.Value))
	}

	if req.URL != "" {
		args = append(args, "url="+req.URL)
	}
	return args
}

// CreateItem creates an item.
func (c *Client) CreateItem(ctx context.Context, req CreateRequest) Result {
	return c.Run(ctx, CreateItemArgs(req)...)
}

// GetItem fetches one item by name or ID. vault may be empty.
func (c *Client) GetItem(ctx context.Context, item, vault string) Result {
	args := []string{"item", "get", item, "--format", "json"}
	if vault != "" {
		args = append(args, "--vault", vault)
	}
	return c.Run(ctx, args...)
}

// EditItem assigns updates to an existing item.
func (c *Client) EditItem(ctx context.Context, item, vault string, updates []Field) Result {
	args := []string{"item", "edit", item}
	if vault != "" {
		args = append(args, "--vault", vault)
	}
	for _, f := range updates {
		args = append(args, FieldAssignment(f.Label, f.Value))
	}
	return c.Run(ctx, args...)
}

// DeleteItem deletes an item, moving it to the archive when archive is set.
func (c *Client) DeleteItem(ctx context.Context, item, vault string, archive bool) Result {
	args := []string{"item", "delete", item}
	if vault != "" {
		args = append(args, "--vault", vault)
	}
	if archive {
		args = append(args, "--archive")
	}
	return c.Run(ctx, args...)
}

// ListFilter narrows an item listing. Empty fields are ignored.
type ListFilter struct {
	Vault      string
	Tags       string
	Categories string
}

// ListItems lists items.
func (c *Client) ListItems(ctx context.Context, filter ListFilter) Result {
	args := []string{"item", "list", "--format", "json"}
	if filter.Vault != "" {
		args = append(args, "--vault", filter.Vault)
	}
	if filter.Tags != "" {
		args = append(args, "--tags", filter.Tags)
	}
	if filter.Categories != "" {
		args = append(args, "--categories", filter.Categories)
	}
	return c.Run(ctx, args...)
}

// ListVaults lists the vaults visible to the signed-in account.
func (c *Client) ListVaults(ctx context.Context) Result {
	return c.Run(ctx, "vault", "list", "--format", "json")
}

// GetVault describes one vault.
func (c *Client) GetVault(ctx context.Context, vault string) Result {
	return c.Run(ctx, "vault", "get", vault, "--format", "json")
}

// Read resolves a secret reference such as op://vault/item/field.
func (c *Client) Read(ctx context.Context, reference string) Result {
	res := c.Run(ctx, "read", reference)
	if !res.Success {
		return res
	}
	return Ok(strings.TrimRightFunc(res.Text(), unicode.IsSpace), res.Raw)
}

// Inject resolves secret references inside template, fed to op on stdin.
// The output is returned untrimmed.
func (c *Client) Inject(ctx context.Context, template string) Result {
	args := []string{"inject"}
	c.logCommand(args)
	start := time.Now()
	stdout, stderr, err := c.executor.ExecuteWithInput(ctx, template, Binary, args...)

	res := Ok(string(stdout), stdout)
	if err != nil {
		res = failure(stderr, err, args)
	}
	c.record(args, res, start)
	return res
}

// SignedIn reports whether op has at least one signed-in account.
func (c *Client) SignedIn(ctx context.Context) bool {
	res := c.Run(ctx, "account", "list", "--format", "json")
	return res.Success && !res.IsEmpty()
}

// Whoami describes the current session.
func (c *Client) Whoami(ctx context.Context) Result {
	return c.Run(ctx, "whoami", "--format", "json")
}

// CleanError trims stderr and strips op's "[ERROR] yyyy/mm/dd hh:mm:ss" prefix.
func CleanError(stderr string) string {
	return errorPrefix.ReplaceAllString(strings.TrimSpace(stderr), "")
}

// failure builds the Result of a failed invocation. Secret values passed in
// args are scrubbed in case op echoes them back.
func failure(stderr []byte, err error, args []string) Result {
	if pkgexec.IsNotFound(err) {
		return Fail(dserrors.OpInstallHint)
	}
	msg := CleanError(string(stderr))
	if msg == "" {
		msg = err.Error()
	}
	return Fail(logging.Redact(msg, logging.SecretValues(args)))
}

func parseOutput(stdout []byte, args []string) Result {
	if len(stdout) == 0 {
		return Ok("", stdout)
	}

	text := strings.TrimSpace(string(stdout))
	if !wantsJSON(args) {
		return Ok(text, stdout)
	}

	var doc interface{}
	if err := json.Unmarshal(stdout, &doc); err != nil {
		return Ok(text, stdout)
	}
	return Ok(doc, stdout)
}

func wantsJSON(args []string) bool {
	for i, a := range args {
		if a == "--format" && i+1 < len(args) && args[i+1] == "json" {
			return true
		}
	}
	return false
}

// CommandLabel names the op subcommand in args: "item get", "read", ...
// Positional values such as secret references never appear in it.
func CommandLabel(args []string) string {
	if len(args) == 0 {
		return ""
	}
	switch args[0] {
	case "item", "vault", "account", "document", "user", "group":
		if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
			return args[0] + " " + args[1]
		}
	}
	return args[0]
}

func (c *Client) record(args []string, res Result, start time.Time) {
	if c.recorder == nil {
		return
	}
	c.recorder.RecordCommand(CommandLabel(args), res.Success, time.Since(start).Seconds())
}

func (c *Client) logCommand(args []string) {
	if !c.debug {
		return
	}
	cmd := append([]string{Binary}, args...)
	c.logger.Plain("[DEBUG] %s", strings.Join(logging.RedactArgs(cmd), " "))
}
