package ui

import "github.com/justinpbarnett/healtop/internal/ui/panels"

// Messages shared with the panels package.

type StoreUpdatedMsg = panels.StoreUpdatedMsg

type SubmitRunMsg = panels.SubmitRunMsg

type YankMsg = panels.YankMsg

type CloseModalMsg = panels.CloseModalMsg

type ClearFlashMsg = panels.ClearFlashMsg

type AnimTickMsg = panels.AnimTickMsg

// storeChangedMsg wakes the app after the store signalled a change; the app
// takes the snapshot itself.
type storeChangedMsg struct{}

// RunStartedMsg reports the outcome of Runner.Start.
type RunStartedMsg struct {
	Err error
}

// elapsedTickMsg advances the run clock once per second.
type elapsedTickMsg struct{}
