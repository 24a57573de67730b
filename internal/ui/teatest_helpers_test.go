package ui

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/justinpbarnett/scopesync/internal/config"
	"github.com/justinpbarnett/scopesync/internal/engine"
	"github.com/justinpbarnett/scopesync/internal/instrument"
	"github.com/justinpbarnett/scopesync/internal/instrument/sim"
)

const waitDuration = 3 * time.Second

// appAdapter wraps the App (value receiver model) into a model that
// suppresses Init() side effects (store listener, tick timer) so tests
// drive ticks explicitly.
type appAdapter struct {
	app App
}

func newTestApp(tb testing.TB) App {
	tb.Helper()
	cfg := config.DefaultConfig()
	cfg.UI.ExportDir = tb.TempDir()
	cfg.Engine.TickIntervalMS = 60000

	bench := sim.New(sim.Config{Initial: instrument.Params{
		Waveform:  instrument.Sine,
		Frequency: 1000000,
		Amplitude: 5,
	}})
	opts := engine.DefaultOptions()
	opts.Settle = 0
	return NewApp(context.Background(), &cfg, engine.NewSession(bench, opts))
}

func newTestAppAdapter(tb testing.TB) *appAdapter {
	tb.Helper()
	return &appAdapter{app: newTestApp(tb)}
}

func (a *appAdapter) Init() tea.Cmd {
	// Skip the real Init() which blocks on store.Changes() channel.
	return nil
}

func (a *appAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.app.Update(msg)
	a.app = m.(App)
	// keep the periodic tick out of tests; they send TickMsg themselves
	if _, ok := msg.(RenderMsg); ok {
		return a, nil
	}
	return a, cmd
}

func (a *appAdapter) View() string {
	return a.app.View()
}

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

// update feeds msg to a and runs the returned command chain to completion,
// skipping timers.
func update(a App, msg tea.Msg) App {
	m, cmd := a.Update(msg)
	a = m.(App)
	for _, next := range drain(cmd) {
		a = update(a, next)
	}
	return a
}

// drain runs cmd and any batch it returns, dropping tick and flash timers
// which would otherwise block.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(300 * time.Millisecond):
		return nil // timer
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
