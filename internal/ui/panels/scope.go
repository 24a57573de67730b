package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/scopesync/internal/engine"
	"github.com/justinpbarnett/scopesync/internal/figure"
	"github.com/justinpbarnett/scopesync/internal/instrument"
	"github.com/justinpbarnett/scopesync/internal/ui/border"
	"github.com/justinpbarnett/scopesync/internal/ui/styles"
	"github.com/justinpbarnett/scopesync/internal/ui/text"
)

// Scope draws the figure of the selected run under its metadata line.
type Scope struct {
	render   engine.Render
	hasData  bool
	showAxis bool
	powered  bool
	width    int
	height   int
	focused  bool
}

func NewScope(showAxis bool) Scope {
	return Scope{showAxis: showAxis, powered: true}
}

func (s Scope) Update(msg tea.Msg) (Scope, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "a" {
		s.showAxis = !s.showAxis
	}
	return s, nil
}

func (s Scope) View() string {
	inner := s.width - 2
	rows := s.height - 2
	if inner < 1 || rows < 1 {
		return border.RenderPanel(s.title(), "", nil, s.width, s.height, s.focused)
	}

	var b strings.Builder
	b.WriteString(text.Truncate(s.metadataLine(), inner))

	plotRows := rows - 1
	if s.showAxis {
		plotRows--
	}
	if plotRows > 0 && s.hasData {
		b.WriteString("\n")
		b.WriteString(s.plot(inner, plotRows))
	}

	keybinds := []border.Keybind{
		{Key: "a", Label: "xis"},
		{Key: "y", Label: "ank"},
		{Key: "e", Label: "xport"},
	}
	return border.RenderPanel(s.title(), b.String(), keybinds, s.width, s.height, s.focused)
}

func (s Scope) title() string {
	title := "Scope"
	if s.hasData {
		title = fmt.Sprintf("Scope · %s", runTitle(s.render))
	}
	return title
}

func runTitle(r engine.Render) string {
	switch {
	case r.Figure.Placeholder:
		return fmt.Sprintf("Run #%d (no capture)", r.RunID)
	case r.Live:
		return fmt.Sprintf("Run #%d live", r.RunID)
	default:
		return fmt.Sprintf("Run #%d", r.RunID)
	}
}

func (s Scope) metadataLine() string {
	label := engine.NoData
	if s.hasData {
		label = s.render.Label
	}
	line := styles.MetadataStyle.Render(label)
	if !s.powered {
		line += "  " + lipgloss.NewStyle().Foreground(styles.PowerOff).Render("scope off")
	}
	return line
}

// plot renders the trace, with range labels in a left gutter and the time
// window underneath when the axis is shown.
func (s Scope) plot(width, height int) string {
	f := s.render.Figure
	if !s.showAxis {
		return figure.Plot(f, width, height)
	}

	lo, hi := f.YRange()
	top := axisLabel(hi)
	bottom := axisLabel(lo)
	gutter := max(lipgloss.Width(top), lipgloss.Width(bottom)) + 1
	if width-gutter < 4 {
		return figure.Plot(f, width, height)
	}

	lines := strings.Split(figure.Plot(f, width-gutter, height), "\n")
	for i := range lines {
		var lbl string
		switch i {
		case 0:
			lbl = top
		case len(lines) - 1:
			lbl = bottom
		}
		lines[i] = styles.AxisLabelStyle.Render(text.PadRight(lbl, gutter)) + lines[i]
	}

	window := ""
	if n := len(f.Trace.X); n > 1 {
		window = fmt.Sprintf("%s … %s %s",
			instrument.FormatValue(f.Trace.X[0]),
			instrument.FormatValue(f.Trace.X[n-1]),
			f.XAxis.Title)
	}
	lines = append(lines, strings.Repeat(" ", gutter)+styles.AxisLabelStyle.Render(window))
	return strings.Join(lines, "\n")
}

func axisLabel(v float64) string {
	return instrument.FormatValue(v) + "V"
}

// SetRender replaces what is drawn.
func (s *Scope) SetRender(r engine.Render) {
	s.render = r
	s.hasData = true
}

func (s Scope) Render() (engine.Render, bool) {
	return s.render, s.hasData
}

func (s *Scope) SetPowered(on bool) {
	s.powered = on
}

func (s *Scope) SetSize(w, h int) {
	s.width = w
	s.height = h
}

func (s *Scope) SetFocused(f bool) {
	s.focused = f
}
