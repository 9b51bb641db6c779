package text

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Truncate cuts s to maxWidth cells with a trailing "…". Escape sequences
// do not count toward the width and are never split.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// TruncateLeft keeps the tail of s, prefixing "…". Used for paths and URLs
// where the end is the informative part.
func TruncateLeft(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	if w <= maxWidth {
		return s
	}
	return "…" + ansi.TruncateLeft(s, w-maxWidth+1, "")
}

// Wrap breaks s into lines of at most width cells, splitting on spaces and
// respecting existing newlines. Words wider than width are truncated.
func Wrap(s string, width int) []string {
	if width <= 0 || s == "" {
		return []string{s}
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		out = append(out, wrapLine(para, width)...)
	}
	return out
}

func wrapLine(s string, width int) []string {
	if ansi.StringWidth(s) <= width {
		return []string{s}
	}
	var (
		lines []string
		cur   strings.Builder
		curW  int
	)
	for _, word := range strings.Fields(s) {
		ww := ansi.StringWidth(word)
		if ww > width {
			word = ansi.Truncate(word, width, "…")
			ww = width
		}
		switch {
		case curW == 0:
		case curW+1+ww <= width:
			cur.WriteByte(' ')
			curW++
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			curW = 0
		}
		cur.WriteString(word)
		curW += ww
	}
	if curW > 0 {
		lines = append(lines, cur.String())
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// PadRight pads s with spaces to width cells. Wider strings are returned
// unchanged.
func PadRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Fit truncates or pads s to exactly width cells.
func Fit(s string, width int) string {
	return PadRight(Truncate(s, width), width)
}
