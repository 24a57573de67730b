package panels

import (
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/scopesync/internal/engine"
	"github.com/justinpbarnett/scopesync/internal/instrument"
	"github.com/justinpbarnett/scopesync/internal/ui/border"
	"github.com/justinpbarnett/scopesync/internal/ui/styles"
	"github.com/justinpbarnett/scopesync/internal/ui/text"
)

// Knob is a bounded numeric control.
type Knob struct {
	Param          engine.Param
	Label          string
	Unit           string
	Min, Max, Step float64
	Value          float64
}

// Adjust moves the knob by steps and clamps it to its range.
func (k *Knob) Adjust(steps int) {
	v := k.Value + float64(steps)*k.Step
	// snap to the step grid so repeated adds don't drift
	if k.Step > 0 {
		v = k.Min + math.Round((v-k.Min)/k.Step)*k.Step
	}
	k.Value = math.Max(k.Min, math.Min(k.Max, v))
}

// Set clamps v into range without snapping; values read back from the
// generator are shown as they are.
func (k *Knob) Set(v float64) {
	k.Value = math.Max(k.Min, math.Min(k.Max, v))
}

func (k Knob) fraction() float64 {
	if k.Max <= k.Min {
		return 0
	}
	return (k.Value - k.Min) / (k.Max - k.Min)
}

const (
	rowScopePower = iota
	rowGenPower
	rowWaveform
	rowKnobs
)

// Controls is the generator panel: power indicators, waveform selector and
// the three knobs, each with the value last echoed by the instrument.
type Controls struct {
	knobs    []Knob
	waveform int
	echoes   map[engine.Param]string
	scopeOn  bool
	genOn    bool
	cursor   int
	width    int
	height   int
	focused  bool
}

func NewControls(knobs []Knob) Controls {
	return Controls{
		knobs:   knobs,
		echoes:  make(map[engine.Param]string),
		scopeOn: true,
		genOn:   true,
	}
}

func (c Controls) rows() int { return rowKnobs + len(c.knobs) }

func (c Controls) Update(msg tea.Msg) (Controls, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key.String() {
	case "j", "down":
		if c.cursor < c.rows()-1 {
			c.cursor++
		}
	case "k", "up":
		if c.cursor > 0 {
			c.cursor--
		}
	case "l", "right", "=":
		return c.adjust(1)
	case "h", "left", "-":
		return c.adjust(-1)
	case "L", "pgup":
		return c.adjust(10)
	case "H", "pgdown":
		return c.adjust(-10)
	case "enter", " ":
		switch c.cursor {
		case rowScopePower:
			return c, togglePower(InstrumentScope)
		case rowGenPower:
			return c, togglePower(InstrumentGenerator)
		}
	}
	return c, nil
}

func (c Controls) adjust(steps int) (Controls, tea.Cmd) {
	switch {
	case c.cursor == rowScopePower:
		return c, togglePower(InstrumentScope)
	case c.cursor == rowGenPower:
		return c, togglePower(InstrumentGenerator)
	case c.cursor == rowWaveform:
		n := len(instrument.Waveforms)
		c.waveform = ((c.waveform+steps)%n + n) % n
		w := instrument.Waveforms[c.waveform]
		return c, setParam(engine.ParamWaveform, string(w))
	default:
		k := &c.knobs[c.cursor-rowKnobs]
		before := k.Value
		k.Adjust(steps)
		if k.Value == before {
			return c, nil
		}
		return c, setParam(k.Param, instrument.FormatValue(k.Value))
	}
}

func togglePower(i Instrument) tea.Cmd {
	return func() tea.Msg { return TogglePowerMsg{Instrument: i} }
}

func setParam(p engine.Param, v string) tea.Cmd {
	return func() tea.Msg { return SetParamMsg{Param: p, Value: v} }
}

func (c Controls) View() string {
	inner := c.width - 2
	if inner < 1 {
		return border.RenderPanel("Generator", "", nil, c.width, c.height, c.focused)
	}

	var lines []string
	lines = append(lines,
		c.row(rowScopePower, "Scope", powerText(c.scopeOn), inner),
		c.row(rowGenPower, "Generator", powerText(c.genOn), inner),
		"",
		c.row(rowWaveform, "Waveform", c.waveformText(), inner),
		c.echoLine(engine.ParamWaveform, inner),
	)
	for i, k := range c.knobs {
		value := instrument.FormatValue(k.Value) + " " + k.Unit
		if k.Unit == "Hz" {
			value = text.FormatSI(k.Value, k.Unit)
		}
		lines = append(lines,
			"",
			c.row(rowKnobs+i, k.Label, value, inner),
			"  "+c.gauge(k, inner-2),
			c.echoLine(k.Param, inner),
		)
	}

	keybinds := []border.Keybind{
		{Key: "j/k", Label: " select"},
		{Key: "h/l", Label: " adjust"},
	}
	return border.RenderPanel("Generator", strings.Join(lines, "\n"), keybinds, c.width, c.height, c.focused)
}

func (c Controls) row(idx int, label, value string, width int) string {
	marker := "  "
	labelStyle := styles.TextSecondaryStyle
	if c.focused && c.cursor == idx {
		marker = styles.AccentStyle.Render("▸ ")
		labelStyle = styles.AccentStyle
	}
	left := marker + labelStyle.Render(label)
	gap := width - lipgloss.Width(left) - lipgloss.Width(value)
	if gap < 1 {
		gap = 1
	}
	return text.Truncate(left+strings.Repeat(" ", gap)+value, width)
}

func (c Controls) echoLine(p engine.Param, width int) string {
	echo, ok := c.echoes[p]
	if !ok {
		echo = engine.NoData
	}
	return text.Truncate(styles.TextDimStyle.Render("    set: "+echo), width)
}

func (c Controls) waveformText() string {
	parts := make([]string, len(instrument.Waveforms))
	for i, w := range instrument.Waveforms {
		if i == c.waveform {
			parts[i] = styles.AccentStyle.Render(string(w))
		} else {
			parts[i] = styles.TextDimStyle.Render(string(w))
		}
	}
	return strings.Join(parts, " ")
}

func (c Controls) gauge(k Knob, width int) string {
	if width < 3 {
		return ""
	}
	filled := int(math.Round(k.fraction() * float64(width)))
	bar := lipgloss.NewStyle().Foreground(styles.Accent).Render(strings.Repeat("━", filled))
	rest := styles.TextDimStyle.Render(strings.Repeat("─", width-filled))
	return bar + rest
}

func powerText(on bool) string {
	label := "● off"
	if on {
		label = "● on"
	}
	return lipgloss.NewStyle().Foreground(styles.PowerColor(on)).Render(label)
}

// SetParams moves every control to the generator's reported settings.
func (c *Controls) SetParams(p instrument.Params) {
	for i := range c.knobs {
		switch c.knobs[i].Param {
		case engine.ParamFrequency:
			c.knobs[i].Set(p.Frequency)
		case engine.ParamAmplitude:
			c.knobs[i].Set(p.Amplitude)
		case engine.ParamOffset:
			c.knobs[i].Set(p.Offset)
		}
	}
	for i, w := range instrument.Waveforms {
		if w == p.Waveform {
			c.waveform = i
		}
	}
}

// SetEcho records the value the session echoed for p.
func (c *Controls) SetEcho(p engine.Param, echo string) {
	c.echoes[p] = echo
}

func (c Controls) Echo(p engine.Param) (string, bool) {
	e, ok := c.echoes[p]
	return e, ok
}

func (c Controls) Knob(p engine.Param) (Knob, bool) {
	for _, k := range c.knobs {
		if k.Param == p {
			return k, true
		}
	}
	return Knob{}, false
}

func (c Controls) Waveform() instrument.Waveform {
	return instrument.Waveforms[c.waveform]
}

func (c *Controls) SetPower(i Instrument, on bool) {
	if i == InstrumentGenerator {
		c.genOn = on
	} else {
		c.scopeOn = on
	}
}

func (c *Controls) SetSize(w, h int) {
	c.width = w
	c.height = h
}

func (c *Controls) SetFocused(f bool) {
	c.focused = f
}
