// Package border draws the rounded frames every panel sits in: a title in
// the top edge and, while focused, keybind hints in the bottom edge.
package border

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/scopesync/internal/ui/styles"
)

const (
	cornerTL = "╭"
	cornerTR = "╮"
	cornerBL = "╰"
	cornerBR = "╯"
	horizBar = "─"
	vertBar  = "│"
)

// Keybind is one hint in a bottom edge, drawn as [key]label.
type Keybind struct {
	Key   string
	Label string
}

func (kb Keybind) Render() string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(styles.KeybindLabel)
	return keyStyle.Render("["+kb.Key+"]") + labelStyle.Render(kb.Label)
}

// Width is the display width of the rendered hint.
func (kb Keybind) Width() int {
	return lipgloss.Width("[" + kb.Key + "]" + kb.Label)
}

// Frame describes one bordered panel.
type Frame struct {
	Title    string
	Keybinds []Keybind
	Width    int
	Height   int
	Focused  bool
}

// RenderPanel frames content in a width x height box. Content is cropped or
// padded to fill the inside exactly.
func RenderPanel(title, content string, keybinds []Keybind, width, height int, focused bool) string {
	return Frame{Title: title, Keybinds: keybinds, Width: width, Height: height, Focused: focused}.Render(content)
}

func (f Frame) Render(content string) string {
	if f.Width < 2 || f.Height < 2 {
		return ""
	}
	inner := f.Width - 2
	rows := f.Height - 2

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}

	edge := f.edgeStyle()
	crop := lipgloss.NewStyle().MaxWidth(inner)
	out := make([]string, 0, f.Height)
	out = append(out, f.top())
	for _, line := range lines {
		if lipgloss.Width(line) > inner {
			line = crop.Render(line)
		}
		if w := lipgloss.Width(line); w < inner {
			line += strings.Repeat(" ", inner-w)
		}
		out = append(out, edge.Render(vertBar)+line+edge.Render(vertBar))
	}
	out = append(out, f.bottom())
	return strings.Join(out, "\n")
}

func (f Frame) edgeStyle() lipgloss.Style {
	if f.Focused {
		return lipgloss.NewStyle().Foreground(styles.BorderFocused)
	}
	return lipgloss.NewStyle().Foreground(styles.BorderUnfocused)
}

// top renders ╭─ Title ───╮
func (f Frame) top() string {
	edge := f.edgeStyle()
	inner := f.Width - 2
	if f.Title == "" {
		return edge.Render(cornerTL + strings.Repeat(horizBar, inner) + cornerTR)
	}

	titleStyle := styles.TextSecondaryStyle.Bold(true)
	if f.Focused {
		titleStyle = styles.TitleStyle
	}
	title := titleStyle.Render(f.Title)
	// "─ " before the title and " " after it
	if room := inner - 3; lipgloss.Width(title) > room {
		title = titleStyle.Render(truncate(f.Title, room))
	}
	fill := max(inner-3-lipgloss.Width(title), 0)
	return edge.Render(cornerTL+horizBar+" ") + title + edge.Render(" "+strings.Repeat(horizBar, fill)+cornerTR)
}

// bottom renders ╰─ [k]ey  [l]abel ──╯ when focused. Hints that do not fit
// are dropped from the right.
func (f Frame) bottom() string {
	edge := f.edgeStyle()
	inner := f.Width - 2
	if !f.Focused || len(f.Keybinds) == 0 {
		return edge.Render(cornerBL + strings.Repeat(horizBar, inner) + cornerBR)
	}

	room := max(inner-3, 0)
	var hints []string
	used := 0
	for _, kb := range f.Keybinds {
		w := kb.Width()
		if len(hints) > 0 {
			w += 2
		}
		if used+w > room {
			break
		}
		hints = append(hints, kb.Render())
		used += w
	}
	return edge.Render(cornerBL+horizBar+" ") + strings.Join(hints, "  ") +
		edge.Render(" "+strings.Repeat(horizBar, room-used)+cornerBR)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
