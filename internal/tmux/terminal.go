package tmux

import (
	"context"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	pkgexec "github.com/systmms/opcred/pkg/exec"
)

// FallbackSize replaces implausible terminal dimensions.
var FallbackSize = Size{Cols: 200, Rows: 50}

const (
	minCols = 40
	minRows = 10
)

// TerminalSize reports the size of the first of stdout, stderr and stdin
// that is a terminal. When none is, it asks tput, which reads the
// controlling terminal. Widths under 40 or heights under 10 are replaced
// by FallbackSize.
func TerminalSize(ctx context.Context, executor pkgexec.CommandExecutor) Size {
	for _, f := range []*os.File{os.Stdout, os.Stderr, os.Stdin} {
		if cols, rows, err := term.GetSize(int(f.Fd())); err == nil {
			return ClampSize(Size{Cols: cols, Rows: rows})
		}
	}
	return ClampSize(Size{
		Cols: tputInt(ctx, executor, "cols"),
		Rows: tputInt(ctx, executor, "lines"),
	})
}

func tputInt(ctx context.Context, executor pkgexec.CommandExecutor, capability string) int {
	if executor == nil {
		return 0
	}
	stdout, _, err := executor.Execute(ctx, "tput", capability)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(stdout)))
	if err != nil {
		return 0
	}
	return n
}

// ClampSize replaces a width under 40 or a height under 10 with the
// matching FallbackSize dimension.
func ClampSize(s Size) Size {
	if s.Cols < minCols {
		s.Cols = FallbackSize.Cols
	}
	if s.Rows < minRows {
		s.Rows = FallbackSize.Rows
	}
	return s
}
