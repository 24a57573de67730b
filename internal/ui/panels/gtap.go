package panels

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const doubleTapWindow = 300 * time.Millisecond

// DoubleTapExpiredMsg closes the window opened by a first "g".
type DoubleTapExpiredMsg struct{ seq int }

// doubleTap recognises "gg". Every first tap opens a new numbered window so
// that the expiry of an older window cannot cancel a newer one.
type doubleTap struct {
	pending bool
	seq     int
}

// tap handles a "g". It reports fired on the second tap inside the window;
// on the first tap it returns the expiry timer.
func (d *doubleTap) tap() (fired bool, cmd tea.Cmd) {
	if d.pending {
		d.pending = false
		return true, nil
	}
	d.pending = true
	d.seq++
	seq := d.seq
	return false, tea.Tick(doubleTapWindow, func(time.Time) tea.Msg {
		return DoubleTapExpiredMsg{seq: seq}
	})
}

func (d *doubleTap) expire(msg DoubleTapExpiredMsg) {
	if msg.seq == d.seq {
		d.pending = false
	}
}

func (d *doubleTap) reset() { d.pending = false }
