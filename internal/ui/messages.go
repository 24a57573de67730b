package ui

import "github.com/justinpbarnett/scopesync/internal/ui/panels"

// Aliases for the panels message types, which own the definitions.

// RunStoreUpdatedMsg is sent when any run in the store changes.
type RunStoreUpdatedMsg = panels.RunStoreUpdatedMsg

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg = panels.CloseModalMsg

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg = panels.ClearFlashMsg

type (
	SelectTabMsg   = panels.SelectTabMsg
	AddTabMsg      = panels.AddTabMsg
	SetParamMsg    = panels.SetParamMsg
	TogglePowerMsg = panels.TogglePowerMsg
)
