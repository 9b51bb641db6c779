package panels

import "github.com/justinpbarnett/healtop/internal/run"

// StoreUpdatedMsg carries a fresh snapshot after the run store changed.
type StoreUpdatedMsg struct {
	State run.ViewState
}

// SubmitRunMsg is emitted by the form when the operator starts a run.
type SubmitRunMsg struct {
	Input run.Input
}

// YankMsg asks the app to copy Text to the clipboard. What names the thing
// being copied for the flash message.
type YankMsg struct {
	Text string
	What string
}

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg struct{}

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg struct{}

// AnimTickMsg drives spinners and the elapsed clock.
type AnimTickMsg struct{}
