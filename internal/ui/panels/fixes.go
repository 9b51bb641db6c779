package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/healtop/internal/run"
	"github.com/justinpbarnett/healtop/internal/ui/border"
	"github.com/justinpbarnett/healtop/internal/ui/styles"
	"github.com/justinpbarnett/healtop/internal/ui/text"
)

// Column widths for the fix ledger.
const (
	colOutcomeW = 2
	colTypeW    = 12
	colLocW     = 22
)

// Fixes lists the fix ledger in arrival order.
type Fixes struct {
	fixes    []run.Fix
	selected int
	offset   int
	width    int
	height   int
	focused  bool
	gTap     DoubleTap
}

func NewFixes() Fixes {
	return Fixes{gTap: NewDoubleTap(gTapIDFixes)}
}

func (f Fixes) Update(msg tea.Msg) (Fixes, tea.Cmd) {
	switch msg := msg.(type) {
	case StoreUpdatedMsg:
		f.fixes = msg.State.Fixes
		f.clampSelection()
		return f, nil
	case GTimerExpiredMsg:
		f.gTap.HandleExpiry(msg)
		return f, nil
	case tea.KeyMsg:
		if !f.focused {
			return f, nil
		}
		return f.handleKey(msg)
	}
	return f, nil
}

func (f Fixes) handleKey(msg tea.KeyMsg) (Fixes, tea.Cmd) {
	if msg.String() != "g" {
		f.gTap.Reset()
	}
	switch msg.String() {
	case "j", "down":
		if f.selected < len(f.fixes)-1 {
			f.selected++
		}
	case "k", "up":
		if f.selected > 0 {
			f.selected--
		}
	case "G":
		f.selected = max(len(f.fixes)-1, 0)
	case "g":
		fired, cmd := f.gTap.Check()
		if fired {
			f.selected = 0
		}
		f.scrollToSelection()
		return f, cmd
	case "y":
		if fx, ok := f.Selected(); ok {
			return f, func() tea.Msg { return YankMsg{Text: fx.CommitMsg, What: "commit message"} }
		}
		return f, nil
	}
	f.scrollToSelection()
	return f, nil
}

// Selected returns the highlighted fix.
func (f Fixes) Selected() (run.Fix, bool) {
	if f.selected < 0 || f.selected >= len(f.fixes) {
		return run.Fix{}, false
	}
	return f.fixes[f.selected], true
}

func (f *Fixes) clampSelection() {
	if f.selected >= len(f.fixes) {
		f.selected = max(len(f.fixes)-1, 0)
	}
	f.scrollToSelection()
}

func (f *Fixes) visibleRows() int {
	return max(f.height-3, 1) // borders and header
}

func (f *Fixes) scrollToSelection() {
	rows := f.visibleRows()
	if f.selected < f.offset {
		f.offset = f.selected
	}
	if f.selected >= f.offset+rows {
		f.offset = f.selected - rows + 1
	}
	if f.offset < 0 {
		f.offset = 0
	}
}

func (f Fixes) View() string {
	innerW := f.width - 2
	msgW := max(innerW-1-colOutcomeW-colTypeW-colLocW, 4)

	header := " " + styles.TextSecondaryStyle.Bold(true).Render(
		text.PadRight("", colOutcomeW)+
			text.PadRight("TYPE", colTypeW)+
			text.PadRight("LOCATION", colLocW)+
			"COMMIT",
	)
	rows := []string{header}

	if len(f.fixes) == 0 {
		rows = append(rows, " "+styles.TextDimStyle.Render("No fixes yet"))
	}

	end := min(f.offset+f.visibleRows(), len(f.fixes))
	for i := f.offset; i < end; i++ {
		fx := f.fixes[i]
		icon := "✓"
		if fx.Status != run.OutcomeFixed {
			icon = "✗"
		}
		iconCell := lipgloss.NewStyle().Foreground(styles.OutcomeColor(fx.Status)).Render(text.PadRight(icon, colOutcomeW))
		typeCell := lipgloss.NewStyle().Foreground(styles.BugTypeColor(fx.Type)).
			Render(text.Fit(text.Placeholder(fx.Type, "?"), colTypeW-1) + " ")
		locCell := styles.TextPrimaryStyle.Render(text.Fit(text.TruncateLeft(text.Location(fx.File, fx.Line), colLocW-1), colLocW-1) + " ")
		msgCell := styles.TextSecondaryStyle.Render(text.Truncate(fx.CommitMsg, msgW))

		line := " " + iconCell + typeCell + locCell + msgCell
		if f.focused && i == f.selected {
			line = styles.SelectedRowStyle.Render(text.PadRight(line, innerW))
		}
		rows = append(rows, line)
	}

	fixed, failed := countOutcomes(f.fixes)
	badge := ""
	if len(f.fixes) > 0 {
		badge = styles.TextSecondaryStyle.Render(fmt.Sprintf("%d/%d fixed", fixed, fixed+failed))
	}

	var kbs []border.Keybind
	if f.focused {
		kbs = []border.Keybind{
			{Key: "j/k", Label: " select"},
			{Key: "y", Label: "ank commit"},
			{Key: "G", Label: " bottom"},
		}
	}
	return border.Panel{
		Title:    "Fixes",
		Badge:    badge,
		Keybinds: kbs,
		Width:    f.width,
		Height:   f.height,
		Focused:  f.focused,
	}.Render(strings.Join(rows, "\n"))
}

func (f *Fixes) SetFocused(focused bool) { f.focused = focused }

func (f *Fixes) SetSize(w, h int) {
	f.width = w
	f.height = h
	f.scrollToSelection()
}
