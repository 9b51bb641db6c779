package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/healtop/internal/logbuf"
	"github.com/justinpbarnett/healtop/internal/ui/border"
	"github.com/justinpbarnett/healtop/internal/ui/styles"
	"github.com/justinpbarnett/healtop/internal/ui/text"
)

// Console tails the agent's log lines. It follows new output until the
// operator scrolls up; G resumes following.
type Console struct {
	viewport viewport.Model
	buffer   *logbuf.RingBuffer
	content  string
	width    int
	height   int
	focused  bool
	follow   bool
	gTap     DoubleTap
}

func NewConsole(buf *logbuf.RingBuffer) Console {
	return Console{
		viewport: viewport.New(0, 0),
		buffer:   buf,
		follow:   true,
		gTap:     NewDoubleTap(gTapIDConsole),
	}
}

func (c Console) Update(msg tea.Msg) (Console, tea.Cmd) {
	switch msg := msg.(type) {
	case StoreUpdatedMsg, AnimTickMsg:
		c.refresh()
		return c, nil
	case GTimerExpiredMsg:
		c.gTap.HandleExpiry(msg)
		return c, nil
	case tea.KeyMsg:
		if !c.focused {
			return c, nil
		}
		switch msg.String() {
		case "j", "down":
			c.gTap.Reset()
			c.viewport.SetYOffset(c.viewport.YOffset + 1)
			c.follow = c.viewport.AtBottom()
			return c, nil
		case "k", "up":
			c.gTap.Reset()
			c.viewport.SetYOffset(max(c.viewport.YOffset-1, 0))
			c.follow = false
			return c, nil
		case "G":
			c.gTap.Reset()
			c.follow = true
			c.viewport.GotoBottom()
			return c, nil
		case "g":
			fired, cmd := c.gTap.Check()
			if fired {
				c.follow = false
				c.viewport.GotoTop()
			}
			return c, cmd
		}
		c.gTap.Reset()
	}
	return c, nil
}

func (c *Console) refresh() {
	content := c.render()
	if content == c.content {
		return
	}
	c.content = content
	c.viewport.SetContent(content)
	if c.follow {
		c.viewport.GotoBottom()
	}
}

func (c *Console) render() string {
	if c.buffer == nil || c.buffer.Len() == 0 {
		return styles.TextDimStyle.Render("Waiting for agent output...")
	}
	tsStyle := styles.TextDimStyle
	msgStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
	entries := c.buffer.Entries()
	lines := make([]string, 0, len(entries))
	width := max(c.viewport.Width-9, 1)
	for _, e := range entries {
		ts := tsStyle.Render(e.At.Format("15:04:05"))
		for i, part := range text.Wrap(e.Text, width) {
			if i > 0 {
				ts = strings.Repeat(" ", 8)
			}
			lines = append(lines, ts+" "+msgStyle.Render(part))
		}
	}
	return strings.Join(lines, "\n")
}

// Following reports whether new lines scroll into view.
func (c Console) Following() bool { return c.follow }

func (c *Console) SetFocused(focused bool) { c.focused = focused }

func (c *Console) SetSize(w, h int) {
	c.width = w
	c.height = h
	c.viewport.Width = max(w-2, 0)
	c.viewport.Height = max(h-2, 0)
	c.content = ""
	c.refresh()
}

func (c Console) View() string {
	var kbs []border.Keybind
	if c.focused {
		kbs = []border.Keybind{
			{Key: "j/k", Label: " scroll"},
			{Key: "G", Label: " follow"},
			{Key: "g", Label: "g top"},
		}
	}
	badge := ""
	if !c.follow {
		badge = styles.TextSecondaryStyle.Render("paused")
	}
	return border.Panel{
		Title:    "Console",
		Badge:    badge,
		Keybinds: kbs,
		Width:    c.width,
		Height:   c.height,
		Focused:  c.focused,
	}.Render(c.viewport.View())
}
