package panels

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

// panelAdapter wraps panel types that use typed Update signatures into
// a proper tea.Model so they can be used with teatest.
type panelAdapter struct {
	view     func() string
	updateFn func(tea.Msg) tea.Cmd
}

func (a panelAdapter) Init() tea.Cmd                           { return nil }
func (a panelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return a, a.updateFn(msg) }
func (a panelAdapter) View() string                            { return a.view() }

func wrapTabBar(tb *TabBar, sink func(tea.Msg)) tea.Model {
	return panelAdapter{
		view: func() string { return tb.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			switch m := msg.(type) {
			case SelectTabMsg:
				sink(m)
				tb.SetSelected(m.ID)
				return nil
			case AddTabMsg:
				sink(m)
				tb.SetTabs(testTabs(len(tb.Tabs()) + 1))
				return nil
			}
			newTB, cmd := tb.Update(msg)
			*tb = newTB
			return cmd
		},
	}
}

func wrapControls(c *Controls, sink func(tea.Msg)) tea.Model {
	return panelAdapter{
		view: func() string { return c.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			switch m := msg.(type) {
			case SetParamMsg:
				sink(m)
				c.SetEcho(m.Param, m.Value)
				return nil
			case TogglePowerMsg:
				sink(m)
				return nil
			}
			newC, cmd := c.Update(msg)
			*c = newC
			return cmd
		},
	}
}

func wrapScope(s *Scope) tea.Model {
	return panelAdapter{
		view: func() string { return s.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newS, cmd := s.Update(msg)
			*s = newS
			return cmd
		},
	}
}

// wrapStatusBar creates a tea.Model adapter around a StatusBar for teatest use.
// StatusBar has no Update method, so the adapter uses a no-op.
func wrapStatusBar(sb *StatusBar) tea.Model {
	return panelAdapter{
		view:     func() string { return sb.View() },
		updateFn: func(tea.Msg) tea.Cmd { return nil },
	}
}

// wrapHelpOverlay creates a tea.Model adapter around a HelpOverlay for teatest use.
func wrapHelpOverlay(h *HelpOverlay) tea.Model {
	return panelAdapter{
		view: func() string { return h.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newH, cmd := h.Update(msg)
			*h = newH
			return cmd
		},
	}
}

// waitDuration is the standard timeout for WaitFor calls in tests.
const waitDuration = 3 * time.Second

// waitForContains waits until the output contains the given substring.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes cmd and returns its message, or nil.
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
