package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/healtop/internal/ui/border"
	"github.com/justinpbarnett/healtop/internal/ui/styles"
)

type HelpOverlay struct {
	width  int
	height int
}

func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		width:  46,
		height: 20,
	}
}

func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "?", "q":
			return h, func() tea.Msg { return CloseModalMsg{} }
		}
	}
	return h, nil
}

func (h HelpOverlay) View() string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	descStyle := styles.TextPrimaryStyle
	sectionStyle := styles.TitleStyle

	kv := func(key, desc string) string {
		return "  " + keyStyle.Render(padKey(key)) + "  " + descStyle.Render(desc)
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Form") + "\n")
	b.WriteString(kv("Tab/↓", "Next field") + "\n")
	b.WriteString(kv("S-Tab/↑", "Previous field") + "\n")
	b.WriteString(kv("Enter", "Run agent") + "\n")
	b.WriteString(kv("Esc", "Leave form") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Dashboard") + "\n")
	b.WriteString(kv("Tab", "Cycle panel focus") + "\n")
	b.WriteString(kv("n", "Focus form") + "\n")
	b.WriteString(kv("j/k G/gg", "Move / jump") + "\n")
	b.WriteString(kv("y", "Yank commit message") + "\n")
	b.WriteString(kv("b", "Yank branch name") + "\n")
	b.WriteString(kv("Y", "Yank fix ledger") + "\n")
	b.WriteString(kv("x", "Stop run") + "\n")
	b.WriteString(kv("?", "Toggle this help") + "\n")
	b.WriteString(kv("q", "Quit"))

	bottomKb := []border.Keybind{{Key: "?", Label: " close"}, {Key: "Esc", Label: " close"}}
	return border.Panel{
		Title:    "Keybinds",
		Keybinds: bottomKb,
		Width:    h.width,
		Height:   h.height,
		Focused:  true,
	}.Render(b.String())
}

func padKey(k string) string {
	const w = 9
	if n := lipgloss.Width(k); n < w {
		return k + strings.Repeat(" ", w-n)
	}
	return k
}
