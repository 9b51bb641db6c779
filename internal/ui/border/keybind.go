package border

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/healtop/internal/ui/styles"
)

// Keybind is one hint in a panel's bottom edge, rendered as [Key]Label.
type Keybind struct {
	Key   string
	Label string
}

func RenderKeybind(kb Keybind) string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(styles.KeybindLabel)
	return keyStyle.Render("["+kb.Key+"]") + labelStyle.Render(kb.Label)
}
