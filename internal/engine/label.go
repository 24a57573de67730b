package engine

import (
	"fmt"

	"github.com/justinpbarnett/scopesync/internal/instrument"
)

// Label formats generator settings as "SIN | 1000000Hz | 5mV | 0mV".
func Label(p instrument.Params) string {
	return fmt.Sprintf("%s | %sHz | %smV | %smV",
		p.Waveform,
		instrument.FormatValue(p.Frequency),
		instrument.FormatValue(p.Amplitude),
		instrument.FormatValue(p.Offset),
	)
}
