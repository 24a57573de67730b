package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/scopesync/internal/run"
	"github.com/justinpbarnett/scopesync/internal/ui/border"
	"github.com/justinpbarnett/scopesync/internal/ui/styles"
)

const addTabLabel = "+"

// TabBar lists the run tabs and the add action. It never talks to the
// session directly; selections and adds are returned as messages.
type TabBar struct {
	tabs     []run.Tab
	selected run.ID
	clicks   int
	width    int
	height   int
	focused  bool
	gg       doubleTap
}

func NewTabBar(tabs []run.Tab, selected run.ID) TabBar {
	return TabBar{tabs: tabs, selected: selected}
}

func (t TabBar) Update(msg tea.Msg) (TabBar, tea.Cmd) {
	switch msg := msg.(type) {
	case DoubleTapExpiredMsg:
		t.gg.expire(msg)
		return t, nil
	case tea.KeyMsg:
		return t.handleKey(msg)
	}
	return t, nil
}

func (t TabBar) handleKey(key tea.KeyMsg) (TabBar, tea.Cmd) {
	s := key.String()
	if s == "g" {
		fired, cmd := t.gg.tap()
		if fired && len(t.tabs) > 0 {
			return t, selectTab(t.tabs[0].ID)
		}
		return t, cmd
	}
	t.gg.reset()

	switch s {
	case "G":
		if len(t.tabs) > 0 {
			return t, selectTab(t.tabs[len(t.tabs)-1].ID)
		}
	case "h", "left":
		if i := t.index(); i > 0 {
			return t, selectTab(t.tabs[i-1].ID)
		}
	case "l", "right":
		if i := t.index(); i >= 0 && i < len(t.tabs)-1 {
			return t, selectTab(t.tabs[i+1].ID)
		}
	case "+", "n":
		t.clicks++
		clicks := t.clicks
		return t, func() tea.Msg { return AddTabMsg{Clicks: clicks} }
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n := int(s[0] - '0')
		if n <= len(t.tabs) {
			return t, selectTab(t.tabs[n-1].ID)
		}
	}
	return t, nil
}

func selectTab(id run.ID) tea.Cmd {
	return func() tea.Msg { return SelectTabMsg{ID: id} }
}

func (t TabBar) View() string {
	inner := t.width - 2
	if inner < 1 {
		return ""
	}

	parts := make([]string, 0, len(t.tabs)+1)
	for _, tab := range t.tabs {
		if tab.ID == t.selected {
			parts = append(parts, styles.ActiveTabStyle.Render(tab.Label))
		} else {
			parts = append(parts, styles.TabStyle.Render(tab.Label))
		}
	}
	add := styles.AccentStyle.Render("[" + addTabLabel + "]")

	// Drop tabs from the left until the selected one and the add action fit.
	fits := func(start int) bool {
		w := lipgloss.Width(strings.Join(parts[start:], " ") + " " + add)
		if start > 0 {
			w++ // overflow marker
		}
		return w <= inner
	}
	start := 0
	for sel := t.index(); start < sel && !fits(start); {
		start++
	}
	line := strings.Join(parts[start:], " ") + " " + add
	if start > 0 {
		line = styles.TextDimStyle.Render("…") + line
	}

	keybinds := []border.Keybind{
		{Key: "h/l", Label: " switch"},
		{Key: "+", Label: " new run"},
	}
	return border.RenderPanel("Runs", line, keybinds, t.width, t.height, t.focused)
}

// index returns the position of the selected tab, or -1.
func (t TabBar) index() int {
	for i, tab := range t.tabs {
		if tab.ID == t.selected {
			return i
		}
	}
	return -1
}

func (t *TabBar) SetTabs(tabs []run.Tab) {
	t.tabs = tabs
}

func (t *TabBar) SetSelected(id run.ID) {
	t.selected = id
}

func (t TabBar) Selected() run.ID {
	return t.selected
}

func (t TabBar) Tabs() []run.Tab {
	return t.tabs
}

func (t *TabBar) SetSize(w, h int) {
	t.width = w
	t.height = h
}

func (t *TabBar) SetFocused(f bool) {
	t.focused = f
}
