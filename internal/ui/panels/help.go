package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/scopesync/internal/ui/border"
	"github.com/justinpbarnett/scopesync/internal/ui/styles"
)

type HelpOverlay struct {
	width  int
	height int
}

func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		width:  46,
		height: 24,
	}
}

func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "?", "q":
			return h, func() tea.Msg { return CloseModalMsg{} }
		}
	}
	return h, nil
}

func (h HelpOverlay) View() string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	descStyle := styles.TextPrimaryStyle
	sectionStyle := styles.TitleStyle

	kv := func(key, desc string) string {
		return "  " + keyStyle.Render(key) + "  " + descStyle.Render(desc)
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Runs") + "\n")
	b.WriteString(kv("1-9", "Show run tab") + "\n")
	b.WriteString(kv("h/l", "Previous/next tab (tab bar)") + "\n")
	b.WriteString(kv("gg/G", "First/last tab (tab bar)") + "\n")
	b.WriteString(kv("+", "New run tab") + "\n")
	b.WriteString(kv("Tab", "Cycle panel focus") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Generator") + "\n")
	b.WriteString(kv("j/k", "Select control") + "\n")
	b.WriteString(kv("h/l", "Adjust by one step") + "\n")
	b.WriteString(kv("H/L", "Adjust by ten steps") + "\n")
	b.WriteString(kv("Enter", "Toggle power") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Global") + "\n")
	b.WriteString(kv("y", "Copy run metadata") + "\n")
	b.WriteString(kv("e", "Export run as HTML") + "\n")
	b.WriteString(kv("a", "Toggle plot axis (scope)") + "\n")
	b.WriteString(kv("?", "Toggle this help") + "\n")
	b.WriteString(kv("q", "Quit") + "\n")
	b.WriteString(kv("Esc", "Close modal"))

	bottomKb := []border.Keybind{{Key: "?", Label: " close"}, {Key: "Esc", Label: " close"}}
	return border.RenderPanel("Keybinds", b.String(), bottomKb, h.width, h.height, true)
}
