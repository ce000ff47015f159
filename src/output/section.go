package output

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	indent     = "    "
	frameWidth = 61 // rule length after the corner glyph
)

// Section is a framed block of rows under a titled header.
type Section struct {
	w     io.Writer
	color bool
}

// NewSection writes the header for title and returns the open section.
// A non-zero elapsed is shown at the right end of the header.
func NewSection(w io.Writer, title string, elapsed time.Duration, color bool) *Section {
	head := "── " + title + " "
	tail := "──"
	if elapsed > 0 {
		tail = " " + formatElapsed(elapsed) + " ──"
	}
	line := head + rule(frameWidth+4-len(head)-len(tail)) + tail
	if color {
		line = "\033[2;36m" + line + "\033[0m"
	}
	fmt.Fprintf(w, "\n%s%s\n", indent, line)
	return &Section{w: w, color: color}
}

// Row writes one framed line.
func (s *Section) Row(format string, args ...any) {
	fmt.Fprintf(s.w, "%s│ %s\n", indent, fmt.Sprintf(format, args...))
}

// Separator divides the rows above from the rows below.
func (s *Section) Separator() {
	fmt.Fprintf(s.w, "%s├%s\n", indent, rule(frameWidth))
}

// Close writes the footer.
func (s *Section) Close() {
	fmt.Fprintf(s.w, "%s└%s\n", indent, rule(frameWidth))
}

func rule(n int) string {
	return strings.Repeat("─", max(n, 1))
}

// status is the outcome shown at the start of a summary row.
type status int

const (
	started status = iota
	skipped
	failed
)

var glyphs = [...]struct {
	mark string
	ansi string
}{
	started: {"✓", "32"},
	skipped: {"⊘", "33"},
	failed:  {"✗", "31"},
}

func (st status) icon(color bool) string {
	g := glyphs[st]
	if !color {
		return g.mark
	}
	return "\033[" + g.ansi + "m" + g.mark + "\033[0m"
}

// KV is one line of the context block.
type KV struct {
	Key   string
	Value string
}

// ContextBlock prints kv as a key-aligned column ahead of the summary.
func ContextBlock(w io.Writer, kv []KV) {
	if len(kv) == 0 {
		return
	}
	width := 0
	for _, p := range kv {
		width = max(width, len(p.Key))
	}
	fmt.Fprintln(w)
	for _, p := range kv {
		fmt.Fprintf(w, "%s%-*s  %s\n", indent, width, p.Key, p.Value)
	}
}

// formatElapsed renders run time for the section header.
func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return "<1ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}
