package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/scopesync/internal/config"
	"github.com/justinpbarnett/scopesync/internal/engine"
	"github.com/justinpbarnett/scopesync/internal/figure"
	"github.com/justinpbarnett/scopesync/internal/instrument"
	"github.com/justinpbarnett/scopesync/internal/run"
	"github.com/justinpbarnett/scopesync/internal/ui/clipboard"
	"github.com/justinpbarnett/scopesync/internal/ui/layout"
	"github.com/justinpbarnett/scopesync/internal/ui/panels"
	"github.com/justinpbarnett/scopesync/internal/ui/styles"
)

const (
	panelTabs     = 0
	panelScope    = 1
	panelControls = 2
	numPanels     = 3
)

// TickMsg fires the periodic capture.
type TickMsg time.Time

// RenderMsg carries the result of an evaluation run off the update loop.
type RenderMsg struct {
	Render engine.Render
	Err    error
	At     time.Time
	// Tick is set for the periodic capture, which re-arms the timer.
	Tick bool
}

// ParamEchoMsg carries the value the session echoed after a write.
type ParamEchoMsg struct {
	Param engine.Param
	Echo  string
	Err   error
}

// ParamsLoadedMsg carries the generator settings read at startup.
type ParamsLoadedMsg struct {
	Params instrument.Params
	Err    error
}

// ExportedMsg reports where a run figure was written.
type ExportedMsg struct {
	Path string
	Err  error
}

type App struct {
	ctx          context.Context
	config       *config.Config
	session      *engine.Session
	interval     time.Duration
	width        int
	height       int
	layout       layout.Layout
	focusedPanel int
	tabBar       panels.TabBar
	scope        panels.Scope
	controls     panels.Controls
	statusBar    panels.StatusBar
	helpOverlay  *panels.HelpOverlay
	keys         KeyMap
	ready        bool
	// a live capture is in flight; ticks arriving meanwhile are skipped
	capturing bool
	scopeOn   bool
	genOn     bool
}

func NewApp(ctx context.Context, cfg *config.Config, session *engine.Session) App {
	styles.SetAccent(cfg.UI.AccentColor)

	showAxis := cfg.Display.ShowAxis == nil || *cfg.Display.ShowAxis
	tb := panels.NewTabBar(session.Tabs(), session.Selected())
	tb.SetFocused(true)

	return App{
		ctx:       ctx,
		config:    cfg,
		session:   session,
		interval:  cfg.Engine.TickInterval(),
		tabBar:    tb,
		scope:     panels.NewScope(showAxis),
		controls:  panels.NewControls(knobsFrom(cfg.Controls)),
		statusBar: panels.NewStatusBar(session.Store(), session.ID(), cfg.Instrument.Driver, cfg.Engine.TickInterval()),
		keys:      DefaultKeyMap(),
		scopeOn:   true,
		genOn:     true,
	}
}

func knobsFrom(c config.ControlsConfig) []panels.Knob {
	knob := func(p engine.Param, label, unit string, k config.KnobConfig) panels.Knob {
		return panels.Knob{Param: p, Label: label, Unit: unit, Min: k.Min, Max: k.Max, Step: k.Step, Value: k.Min}
	}
	return []panels.Knob{
		knob(engine.ParamFrequency, "Frequency", "Hz", c.Frequency),
		knob(engine.ParamAmplitude, "Amplitude", "mV", c.Amplitude),
		knob(engine.ParamOffset, "Offset", "mV", c.Offset),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		listenForChanges(a.session.Store().Changes()),
		a.loadParams(),
		scheduleTick(a.interval),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout = layout.Calculate(msg.Width, msg.Height)
		a.propagateSizes()
		return a, nil

	case CloseModalMsg:
		a.helpOverlay = nil
		return a, nil

	case RunStoreUpdatedMsg:
		return a, listenForChanges(a.session.Store().Changes())

	case TickMsg:
		a.statusBar.Tick()
		if a.capturing || !a.scopeOn {
			return a, scheduleTick(a.interval)
		}
		a.capturing = true
		a.statusBar.SetCapturing(true)
		return a, a.capture()

	case RenderMsg:
		var next tea.Cmd
		if msg.Tick {
			a.capturing = false
			a.statusBar.SetCapturing(false)
			next = scheduleTick(a.interval)
		}
		if msg.Err != nil {
			return a, tea.Batch(next, a.flash(fmt.Sprintf("capture failed: %v", msg.Err), panels.FlashError))
		}
		// the user may have switched tabs while the capture ran
		if msg.Render.RunID == a.session.Selected() {
			a.scope.SetRender(msg.Render)
		}
		if msg.Render.Live {
			a.statusBar.SetLastCapture(msg.At)
		}
		return a, next

	case SelectTabMsg:
		if msg.ID == a.session.Selected() {
			return a, nil
		}
		a.tabBar.SetSelected(msg.ID)
		// Already active means OnTabSelected captures; keep that off the
		// update loop like a tick.
		if msg.ID == a.session.LastActive() {
			return a, a.selectLive(msg.ID)
		}
		r, err := a.session.OnTabSelected(a.ctx, msg.ID)
		if err != nil {
			return a, a.flash(err.Error(), panels.FlashError)
		}
		a.scope.SetRender(r)
		return a, nil

	case AddTabMsg:
		tabs := a.session.AddTab(msg.Clicks)
		a.tabBar.SetTabs(tabs)
		return a, a.flash(tabs[len(tabs)-1].Label+" added", panels.FlashInfo)

	case SetParamMsg:
		if !a.genOn {
			return a, a.flash("generator is off", panels.FlashWarning)
		}
		return a, a.writeParam(msg.Param, msg.Value)

	case ParamEchoMsg:
		if msg.Err != nil {
			return a, a.flash(msg.Err.Error(), panels.FlashError)
		}
		a.controls.SetEcho(msg.Param, msg.Echo)
		return a, nil

	case ParamsLoadedMsg:
		if msg.Err != nil {
			return a, a.flash(fmt.Sprintf("read generator: %v", msg.Err), panels.FlashWarning)
		}
		a.controls.SetParams(msg.Params)
		return a, nil

	case TogglePowerMsg:
		switch msg.Instrument {
		case panels.InstrumentScope:
			a.scopeOn = !a.scopeOn
			a.controls.SetPower(msg.Instrument, a.scopeOn)
			a.scope.SetPowered(a.scopeOn)
		case panels.InstrumentGenerator:
			a.genOn = !a.genOn
			a.controls.SetPower(msg.Instrument, a.genOn)
		}
		return a, nil

	case ExportedMsg:
		if msg.Err != nil {
			return a, a.flash(fmt.Sprintf("export failed: %v", msg.Err), panels.FlashError)
		}
		return a, a.flash("exported "+msg.Path, panels.FlashSuccess)

	case ClearFlashMsg:
		a.statusBar.ClearFlash()
		return a, nil

	case panels.DoubleTapExpiredMsg:
		var cmd tea.Cmd
		a.tabBar, cmd = a.tabBar.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if a.helpOverlay != nil {
			var cmd tea.Cmd
			*a.helpOverlay, cmd = a.helpOverlay.Update(msg)
			return a, cmd
		}

		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.helpOverlay = panels.NewHelpOverlay()
			return a, nil
		case key.Matches(msg, a.keys.FocusNext):
			a.focusedPanel = (a.focusedPanel + 1) % numPanels
			a.updateFocusState()
			return a, nil
		case key.Matches(msg, a.keys.SelectTab), key.Matches(msg, a.keys.AddTab):
			var cmd tea.Cmd
			a.tabBar, cmd = a.tabBar.Update(msg)
			return a, cmd
		case key.Matches(msg, a.keys.Yank):
			return a, a.yank()
		case key.Matches(msg, a.keys.Export):
			return a, a.export()
		}

		return a.routeKey(msg)
	}
	return a, nil
}

func (a App) View() string {
	if !a.ready {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, "Loading...")
	}

	if a.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%d×%d)\nMinimum: %d×%d",
			a.width, a.height, layout.MinWidth, layout.MinHeight)
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, msg)
	}

	middle := lipgloss.JoinHorizontal(lipgloss.Top, a.scope.View(), a.controls.View())
	full := lipgloss.JoinVertical(lipgloss.Left, a.tabBar.View(), middle, a.statusBar.View())

	if a.helpOverlay != nil {
		full = lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, a.helpOverlay.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(styles.TextDim),
		)
	}
	return full
}

func (a App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.focusedPanel {
	case panelTabs:
		a.tabBar, cmd = a.tabBar.Update(msg)
	case panelScope:
		a.scope, cmd = a.scope.Update(msg)
	case panelControls:
		a.controls, cmd = a.controls.Update(msg)
	}
	return a, cmd
}

func (a *App) propagateSizes() {
	l := a.layout
	a.tabBar.SetSize(l.TabBarWidth, l.TabBarHeight)
	a.scope.SetSize(l.ScopeWidth, l.ScopeHeight)
	a.controls.SetSize(l.ControlsWidth, l.ControlsHeight)
	a.statusBar.SetSize(l.StatusBarWidth)
}

func (a *App) updateFocusState() {
	a.tabBar.SetFocused(a.focusedPanel == panelTabs)
	a.scope.SetFocused(a.focusedPanel == panelScope)
	a.controls.SetFocused(a.focusedPanel == panelControls)
}

func (a *App) flash(text string, level panels.FlashLevel) tea.Cmd {
	a.statusBar.SetFlashWithLevel(text, level)
	return tea.Tick(panels.FlashDuration(), func(time.Time) tea.Msg {
		return ClearFlashMsg{}
	})
}

// capture runs the tick evaluation off the update loop.
func (a App) capture() tea.Cmd {
	ctx, session := a.ctx, a.session
	return func() tea.Msg {
		r, err := session.OnTick(ctx)
		return RenderMsg{Render: r, Err: err, At: time.Now(), Tick: true}
	}
}

func (a App) selectLive(id run.ID) tea.Cmd {
	ctx, session := a.ctx, a.session
	return func() tea.Msg {
		r, err := session.OnTabSelected(ctx, id)
		return RenderMsg{Render: r, Err: err, At: time.Now()}
	}
}

func (a App) writeParam(p engine.Param, value string) tea.Cmd {
	ctx, session := a.ctx, a.session
	return func() tea.Msg {
		echo, err := session.OnParameterChanged(ctx, p, value)
		return ParamEchoMsg{Param: p, Echo: echo, Err: err}
	}
}

func (a App) loadParams() tea.Cmd {
	ctx, session := a.ctx, a.session
	return func() tea.Msg {
		p, err := session.Parameters(ctx)
		return ParamsLoadedMsg{Params: p, Err: err}
	}
}

func (a *App) yank() tea.Cmd {
	id := a.session.Selected()
	label := a.session.Metadata(id)
	method, err := clipboard.Write(label)
	if err != nil {
		return a.flash(err.Error(), panels.FlashError)
	}
	return a.flash(fmt.Sprintf("copied run #%d metadata (%s)", id, method), panels.FlashSuccess)
}

func (a *App) export() tea.Cmd {
	r, ok := a.scope.Render()
	if !ok {
		return a.flash("nothing to export yet", panels.FlashWarning)
	}
	dir := a.config.UI.ExportDir
	return func() tea.Msg {
		path, err := figure.ExportFile(dir, fmt.Sprintf("run-%d", r.RunID), r.Figure,
			fmt.Sprintf("Run #%d", r.RunID), r.Label)
		return ExportedMsg{Path: path, Err: err}
	}
}

func scheduleTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func listenForChanges(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return RunStoreUpdatedMsg{}
	}
}
