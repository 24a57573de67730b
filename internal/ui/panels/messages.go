package panels

import (
	"github.com/justinpbarnett/scopesync/internal/engine"
	"github.com/justinpbarnett/scopesync/internal/run"
)

// RunStoreUpdatedMsg is sent when any run in the store changes.
type RunStoreUpdatedMsg struct{}

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg struct{}

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg struct{}

// SelectTabMsg asks the app to switch the displayed run.
type SelectTabMsg struct {
	ID run.ID
}

// AddTabMsg carries the cumulative number of presses of the add action.
type AddTabMsg struct {
	Clicks int
}

// SetParamMsg asks the app to write a generator setting.
type SetParamMsg struct {
	Param engine.Param
	Value string
}

// Instrument identifies a power toggle.
type Instrument int

const (
	InstrumentScope Instrument = iota
	InstrumentGenerator
)

func (i Instrument) String() string {
	if i == InstrumentGenerator {
		return "generator"
	}
	return "scope"
}

// TogglePowerMsg flips an instrument's power indicator.
type TogglePowerMsg struct {
	Instrument Instrument
}
