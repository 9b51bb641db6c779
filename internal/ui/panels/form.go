package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/healtop/internal/run"
	"github.com/justinpbarnett/healtop/internal/ui/border"
	"github.com/justinpbarnett/healtop/internal/ui/styles"
	"github.com/justinpbarnett/healtop/internal/ui/text"
)

const (
	fieldRepo = iota
	fieldTeam
	fieldLeader
	numFields
)

var fieldLabels = [numFields]string{"Repo", "Team", "Leader"}

const labelWidth = 8

// Form collects the three run inputs. It only checks presence; the
// controller validates the URL.
type Form struct {
	inputs  [numFields]textinput.Model
	field   int
	width   int
	height  int
	focused bool
	locked  bool
	err     string
}

func NewForm() Form {
	placeholders := [numFields]string{
		"https://github.com/org/repo",
		"Team name",
		"Team leader",
	}
	var f Form
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		f.inputs[i] = ti
	}
	return f
}

func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	switch msg := msg.(type) {
	case StoreUpdatedMsg:
		f.locked = msg.State.Status == run.StatusRunning
		return f, nil
	case tea.KeyMsg:
		if !f.focused {
			return f, nil
		}
		return f.handleKey(msg)
	}

	// cursor blink and similar internal messages
	var cmd tea.Cmd
	f.inputs[f.field], cmd = f.inputs[f.field].Update(msg)
	return f, cmd
}

func (f Form) handleKey(msg tea.KeyMsg) (Form, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return f, f.moveTo((f.field + 1) % numFields)
	case "shift+tab", "up":
		return f, f.moveTo((f.field + numFields - 1) % numFields)
	case "enter":
		return f.submit()
	}

	if f.locked {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.field], cmd = f.inputs[f.field].Update(msg)
	f.err = ""
	return f, cmd
}

func (f *Form) moveTo(field int) tea.Cmd {
	f.inputs[f.field].Blur()
	f.field = field
	return f.inputs[f.field].Focus()
}

func (f Form) submit() (Form, tea.Cmd) {
	if f.locked {
		f.err = "A run is already in progress"
		return f, nil
	}
	in := f.Value().Normalize()
	for i, v := range []string{in.RepoURL, in.TeamName, in.LeaderName} {
		if v == "" {
			f.err = fieldLabels[i] + " is required"
			return f, f.moveTo(i)
		}
	}
	f.err = ""
	return f, func() tea.Msg { return SubmitRunMsg{Input: in} }
}

// Value returns the raw field contents.
func (f Form) Value() run.Input {
	return run.Input{
		RepoURL:    f.inputs[fieldRepo].Value(),
		TeamName:   f.inputs[fieldTeam].Value(),
		LeaderName: f.inputs[fieldLeader].Value(),
	}
}

// SetValues prefills the fields, e.g. from command-line flags.
func (f *Form) SetValues(in run.Input) {
	f.inputs[fieldRepo].SetValue(in.RepoURL)
	f.inputs[fieldTeam].SetValue(in.TeamName)
	f.inputs[fieldLeader].SetValue(in.LeaderName)
}

// SetError shows msg under the fields until the next edit.
func (f *Form) SetError(msg string) { f.err = msg }

func (f Form) Err() string { return f.err }

func (f Form) Locked() bool { return f.locked }

func (f *Form) SetFocused(focused bool) tea.Cmd {
	f.focused = focused
	if !focused {
		f.inputs[f.field].Blur()
		return nil
	}
	return f.inputs[f.field].Focus()
}

func (f *Form) SetSize(w, h int) {
	f.width = w
	f.height = h
	inputW := max(w-2-labelWidth-2, 1)
	for i := range f.inputs {
		f.inputs[i].Width = inputW
	}
}

func (f Form) View() string {
	innerW := f.width - 2
	labelStyle := styles.TextSecondaryStyle
	activeLabel := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)

	var rows []string
	for i := range f.inputs {
		ls := labelStyle
		marker := "  "
		if f.focused && i == f.field {
			ls = activeLabel
			marker = activeLabel.Render("▸ ")
		}
		label := ls.Render(text.PadRight(fieldLabels[i], labelWidth-2))
		value := f.inputs[i].View()
		if f.locked {
			value = styles.TextDimStyle.Render(text.Placeholder(f.inputs[i].Value(), "—"))
		}
		rows = append(rows, text.Truncate(marker+label+value, innerW))
	}

	rows = append(rows, "")
	if f.locked {
		rows = append(rows, lipgloss.NewStyle().Foreground(styles.StatusRunning).Render("  Agent running…"))
	} else {
		rows = append(rows, "  "+lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true).Render("[⏎]")+
			styles.TextPrimaryStyle.Render(" Run Agent"))
	}
	if f.err != "" {
		rows = append(rows, "  "+styles.ErrorStyle.Render(text.Truncate(f.err, innerW-2)))
	}

	kbs := []border.Keybind{
		{Key: "⇥", Label: " next"},
		{Key: "⏎", Label: " run"},
		{Key: "Esc", Label: " leave"},
	}
	return border.Panel{
		Title:    "New Run",
		Keybinds: kbs,
		Width:    f.width,
		Height:   f.height,
		Focused:  f.focused,
	}.Render(strings.Join(rows, "\n"))
}
