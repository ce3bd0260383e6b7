package tmux

import (
	"fmt"
	"strings"
)

// DefaultLayout is used for unknown layout names.
const DefaultLayout = "main-vertical"

// ClaudeLayoutName selects ClaudeLayout.
const ClaudeLayoutName = "claude"

var layouts = map[string]string{
	"even-horizontal":          "even-horizontal",
	"even-vertical":            "even-vertical",
	"main-horizontal":          "main-horizontal",
	"main-vertical":            "main-vertical",
	"main-horizontal-mirrored": "main-horizontal-mirrored",
	"main-vertical-mirrored":   "main-vertical-mirrored",
	"tiled":                    "tiled",
}

// Size is a terminal size in character cells.
type Size struct {
	Cols int
	Rows int
}

// Layout returns the tmux layout for name. Underscores and hyphens are
// interchangeable. "claude" yields ClaudeLayout(size); unknown names fall
// back to main-vertical.
func Layout(name string, size Size) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if key == ClaudeLayoutName {
		return ClaudeLayout(size)
	}
	if l, ok := layouts[key]; ok {
		return l
	}
	return DefaultLayout
}

// ClaudeLayout is a custom layout with the left half split into two panes
// (0 on top, 1 below) and pane 2 taking the full right half.
func ClaudeLayout(size Size) string {
	cols, rows := size.Cols, size.Rows
	leftW := cols / 2
	rightW := cols - leftW - 1
	topH := rows / 2
	bottomH := rows - topH - 1

	body := fmt.Sprintf("%dx%d,0,0{%dx%d,0,0[%dx%d,0,0,0,%dx%d,0,%d,1],%dx%d,%d,0,2}",
		cols, rows,
		leftW, rows,
		leftW, topH,
		leftW, bottomH, topH+1,
		rightW, rows, leftW+1,
	)
	return LayoutChecksum(body) + "," + body
}

// LayoutChecksum is the checksum tmux prefixes to a layout string.
func LayoutChecksum(layout string) string {
	var csum uint32
	for i := 0; i < len(layout); i++ {
		csum = (csum >> 1) + ((csum & 1) << 15)
		csum += uint32(layout[i])
		csum &= 0xffff
	}
	return fmt.Sprintf("%04x", csum)
}
