package panels

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const gTimeout = 300 * time.Millisecond

// GTimerExpiredMsg is sent when a "gg" window expires. ID names the panel.
type GTimerExpiredMsg struct{ ID int }

const (
	gTapIDFixes = iota + 1
	gTapIDConsole
)

// DoubleTap tracks the "gg" jump-to-top chord.
type DoubleTap struct {
	Pending bool
	id      int
}

func NewDoubleTap(id int) DoubleTap {
	return DoubleTap{id: id}
}

// Check handles a "g" press. It fires on the second press inside the window;
// the first press returns the command that closes the window.
func (dt *DoubleTap) Check() (fired bool, cmd tea.Cmd) {
	if dt.Pending {
		dt.Pending = false
		return true, nil
	}
	dt.Pending = true
	id := dt.id
	return false, tea.Tick(gTimeout, func(time.Time) tea.Msg {
		return GTimerExpiredMsg{ID: id}
	})
}

// HandleExpiry clears Pending when msg belongs to this panel.
func (dt *DoubleTap) HandleExpiry(msg GTimerExpiredMsg) bool {
	if msg.ID != dt.id {
		return false
	}
	dt.Pending = false
	return true
}

// Reset drops a pending first press, e.g. after any other key.
func (dt *DoubleTap) Reset() { dt.Pending = false }
