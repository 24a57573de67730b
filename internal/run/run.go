package run

import (
	"strconv"
	"time"

	"github.com/justinpbarnett/scopesync/internal/instrument"
)

// ID identifies a run and the tab that shows it. IDs start at 1.
type ID int

func (id ID) String() string { return strconv.Itoa(int(id)) }

// Run is the last capture taken while a tab was live, together with the
// generator settings read for it.
type Run struct {
	ID         ID
	Capture    []instrument.Sample
	Label      string
	CapturedAt time.Time
}

func (r Run) clone() Run {
	if r.Capture != nil {
		r.Capture = append([]instrument.Sample(nil), r.Capture...)
	}
	return r
}
