package border

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/healtop/internal/ui/styles"
)

// Border characters
const (
	cornerTL = "╭"
	cornerTR = "╮"
	cornerBL = "╰"
	cornerBR = "╯"
	horizBar = "─"
	vertBar  = "│"
)

// Panel is a rounded box with a title in the top edge, an optional badge on
// the right of the title edge and keybind hints in the bottom edge.
type Panel struct {
	Title    string
	Badge    string
	Keybinds []Keybind
	Width    int
	Height   int
	Focused  bool
	// Accent replaces the focus color of the frame when set.
	Accent lipgloss.TerminalColor
}

func (p Panel) frameStyle() lipgloss.Style {
	switch {
	case p.Accent != nil:
		return lipgloss.NewStyle().Foreground(p.Accent)
	case p.Focused:
		return lipgloss.NewStyle().Foreground(styles.BorderFocused)
	default:
		return lipgloss.NewStyle().Foreground(styles.BorderUnfocused)
	}
}

// Render assembles the panel around content. Content is padded or cropped
// to exactly Height-2 rows of Width-2 columns.
func (p Panel) Render(content string) string {
	if p.Height < 2 || p.Width < 2 {
		return ""
	}

	innerHeight := p.Height - 2
	innerWidth := p.Width - 2

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	for len(lines) < innerHeight {
		lines = append(lines, strings.Repeat(" ", innerWidth))
	}

	return p.top() + "\n" + p.sides(strings.Join(lines, "\n")) + "\n" + p.bottom()
}

// top renders ╭─ Title ──── Badge ─╮
func (p Panel) top() string {
	bs := p.frameStyle()
	innerWidth := p.Width - 2
	if p.Title == "" && p.Badge == "" {
		return bs.Render(cornerTL + strings.Repeat(horizBar, innerWidth) + cornerTR)
	}

	ts := styles.TextSecondaryStyle.Bold(true)
	if p.Focused {
		ts = styles.TitleStyle
	}

	left := ""
	used := 0
	if p.Title != "" {
		title := ts.Render(p.Title)
		left = bs.Render(horizBar+" ") + title + bs.Render(" ")
		used = 3 + lipgloss.Width(title)
	}

	right := ""
	if p.Badge != "" {
		badge := p.Badge
		bw := lipgloss.Width(badge)
		// badge needs " " + badge + " ─"
		if used+bw+3 <= innerWidth {
			right = bs.Render(" ") + badge + bs.Render(" "+horizBar)
			used += bw + 3
		}
	}

	if used > innerWidth {
		// Title alone overflows; fall back to a plain edge.
		return bs.Render(cornerTL + strings.Repeat(horizBar, innerWidth) + cornerTR)
	}

	fill := strings.Repeat(horizBar, innerWidth-used)
	return bs.Render(cornerTL) + left + bs.Render(fill) + right + bs.Render(cornerTR)
}

// bottom renders ╰─ [e]dit  [k]ill ──╯ when focused, a plain edge otherwise.
// Keybinds that do not fit are dropped.
func (p Panel) bottom() string {
	bs := p.frameStyle()
	innerWidth := p.Width - 2

	if !p.Focused || len(p.Keybinds) == 0 {
		return bs.Render(cornerBL + strings.Repeat(horizBar, innerWidth) + cornerBR)
	}

	maxKbWidth := max(innerWidth-3, 0)

	var kbParts []string
	usedWidth := 0
	for _, kb := range p.Keybinds {
		rendered := RenderKeybind(kb)
		kbW := lipgloss.Width(rendered)
		sepW := 0
		if len(kbParts) > 0 {
			sepW = 2
		}
		if usedWidth+sepW+kbW > maxKbWidth {
			break
		}
		kbParts = append(kbParts, rendered)
		usedWidth += sepW + kbW
	}

	fillWidth := max(maxKbWidth-usedWidth, 0)
	return bs.Render(cornerBL+horizBar+" ") +
		strings.Join(kbParts, "  ") +
		bs.Render(" "+strings.Repeat(horizBar, fillWidth)+cornerBR)
}

// sides wraps content lines with │ on each side, truncating or padding each
// line to the inner width. Widths are measured ANSI-aware.
func (p Panel) sides(content string) string {
	bs := p.frameStyle()
	innerWidth := p.Width - 2
	truncator := lipgloss.NewStyle().MaxWidth(innerWidth)

	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > innerWidth {
			line = truncator.Render(line)
			w = lipgloss.Width(line)
		}
		if w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		result = append(result, bs.Render(vertBar)+line+bs.Render(vertBar))
	}
	return strings.Join(result, "\n")
}
