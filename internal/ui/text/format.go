package text

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

var siPrefixes = []struct {
	factor float64
	prefix string
}{
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
}

// FormatSI scales v by the largest prefix that keeps it at or above one:
// 2500000, "Hz" -> "2.5 MHz", 500 -> "500 Hz". At most three decimals are kept.
func FormatSI(v float64, unit string) string {
	abs := math.Abs(v)
	for _, p := range siPrefixes {
		if abs >= p.factor {
			return trimFloat(v/p.factor) + " " + p.prefix + unit
		}
	}
	return trimFloat(v) + " " + unit
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// FormatElapsed formats a duration as "500ms", "2s", "3m", "1h12m".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return trimFloat(d.Seconds()) + "s"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
