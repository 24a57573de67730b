package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/justinpbarnett/scopesync/internal/figure"
	"github.com/justinpbarnett/scopesync/internal/instrument"
	"github.com/justinpbarnett/scopesync/internal/run"
)

// NoData is the metadata shown for a run that has never been captured.
const NoData = "-"

const (
	DefaultSettle       = 100 * time.Millisecond
	DefaultVoltageRange = 10.0
)

type Options struct {
	// Settle is how long a live capture waits after reading the generator
	// before it returns.
	Settle time.Duration
	// VoltageRange pins live figures to +/-VoltageRange volts.
	VoltageRange float64
	// TimeBase is the placeholder's x axis until the first live capture
	// provides a real one.
	TimeBase []float64
	// MaxRuns caps cached runs; zero keeps every run.
	MaxRuns int
}

func DefaultOptions() Options {
	return Options{
		Settle:       DefaultSettle,
		VoltageRange: DefaultVoltageRange,
		TimeBase:     figure.TimeBase(500, 10e-6),
	}
}

// Render is what the display draws after a trigger.
type Render struct {
	RunID  run.ID
	Figure figure.Figure
	Label  string
	// Live is true when the figure was captured by this evaluation rather
	// than replayed from the store.
	Live bool
}

// Session owns the run cache for one dashboard. Only the tab that was
// already active on the previous evaluation is captured from the
// instruments; every other tab replays its last capture.
type Session struct {
	id    string
	inst  instrument.Facade
	opts  Options
	store *run.Store
	tabs  *run.Tabs

	mu         sync.Mutex
	lastActive run.ID
	selected   run.ID
	timeBase   []float64

	// held for a whole live capture including the settle delay, so two
	// captures never overlap
	captureMu sync.Mutex
	now       func() time.Time
}

func NewSession(inst instrument.Facade, opts Options) *Session {
	if opts.VoltageRange <= 0 {
		opts.VoltageRange = DefaultVoltageRange
	}
	if len(opts.TimeBase) == 0 {
		opts.TimeBase = DefaultOptions().TimeBase
	}
	store := run.NewStore()
	store.SetLimit(opts.MaxRuns)
	tabs := run.NewTabs()
	first := tabs.First().ID

	return &Session{
		id:         uuid.NewString(),
		inst:       inst,
		opts:       opts,
		store:      store,
		tabs:       tabs,
		lastActive: first,
		selected:   first,
		timeBase:   append([]float64(nil), opts.TimeBase...),
		now:        time.Now,
	}
}

// ID is a random identifier used to correlate log lines.
func (s *Session) ID() string { return s.id }

// Store exposes change notifications for display refreshes.
func (s *Session) Store() *run.Store { return s.store }

func (s *Session) Tabs() []run.Tab { return s.tabs.List() }

func (s *Session) Selected() run.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *Session) LastActive() run.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// OnTick re-evaluates the currently selected tab. The selection is read in
// the same critical section that decides between replay and capture, so a
// concurrent OnTabSelected is never undone by a tick that read the old tab.
func (s *Session) OnTick(ctx context.Context) (Render, error) {
	s.mu.Lock()
	id := s.selected
	valid, live := s.advanceLocked(id)
	s.mu.Unlock()
	return s.finish(ctx, id, valid, live)
}

// OnTabSelected records the user's selection and evaluates it. Switching to
// a different tab never touches the instruments.
func (s *Session) OnTabSelected(ctx context.Context, id run.ID) (Render, error) {
	s.mu.Lock()
	s.selected = id
	valid, live := s.advanceLocked(id)
	s.mu.Unlock()
	return s.finish(ctx, id, valid, live)
}

// AddTab appends a run slot when clicks is positive. See run.Tabs.Add.
func (s *Session) AddTab(clicks int) []run.Tab {
	return s.tabs.Add(clicks)
}

// Metadata returns the stored label for id, or NoData.
func (s *Session) Metadata(id run.ID) string {
	if label, ok := s.store.Label(id); ok {
		return label
	}
	return NoData
}

// Evaluate decides between replay and capture for id.
//
// An id that differs from the previously active one is a tab switch: the
// cached run (or a flat placeholder) is returned and id becomes active. An
// id equal to the active one is captured live and overwrites its cache entry.
// Unknown ids render the placeholder and leave the session untouched.
func (s *Session) Evaluate(ctx context.Context, id run.ID) (Render, error) {
	s.mu.Lock()
	valid, live := s.advanceLocked(id)
	s.mu.Unlock()
	return s.finish(ctx, id, valid, live)
}

// advanceLocked moves lastActive to id on a tab switch and reports whether
// id must be captured live. Callers hold s.mu.
func (s *Session) advanceLocked(id run.ID) (valid, live bool) {
	if !s.tabs.Contains(id) {
		return false, false
	}
	if id != s.lastActive {
		s.lastActive = id
		return true, false
	}
	return true, true
}

func (s *Session) finish(ctx context.Context, id run.ID, valid, live bool) (Render, error) {
	switch {
	case !valid:
		return s.placeholder(id), nil
	case !live:
		return s.replay(id), nil
	}
	return s.capture(ctx, id)
}

func (s *Session) replay(id run.ID) Render {
	s.store.Touch(id)
	r, ok := s.store.Get(id)
	if !ok {
		return s.placeholder(id)
	}
	return Render{
		RunID:  id,
		Figure: figure.Live(r.Capture, s.opts.VoltageRange),
		Label:  r.Label,
	}
}

func (s *Session) placeholder(id run.ID) Render {
	s.mu.Lock()
	tb := s.timeBase
	s.mu.Unlock()
	return Render{RunID: id, Figure: figure.Zero(tb), Label: NoData}
}

// capture reads the scope and the generator settings, and stores both as
// one run. Nothing is stored if any read fails.
func (s *Session) capture(ctx context.Context, id run.ID) (Render, error) {
	s.captureMu.Lock()
	defer s.captureMu.Unlock()

	samples, err := s.inst.Capture(ctx)
	if err != nil {
		log.Printf("warning: session %s: capture run %d: %v", s.id, id, err)
		return Render{}, fmt.Errorf("capture run %d: %w", id, err)
	}
	fig := figure.Live(samples, s.opts.VoltageRange)

	params, err := instrument.ReadParams(ctx, s.inst)
	if err != nil {
		log.Printf("warning: session %s: read settings for run %d: %v", s.id, id, err)
		return Render{}, fmt.Errorf("run %d: %w", id, err)
	}
	label := Label(params)

	s.store.Put(run.Run{ID: id, Capture: samples, Label: label, CapturedAt: s.now()})
	if len(fig.Trace.X) > 1 {
		s.mu.Lock()
		s.timeBase = append(s.timeBase[:0:0], fig.Trace.X...)
		s.mu.Unlock()
	}

	settle(ctx, s.opts.Settle)
	return Render{RunID: id, Figure: fig, Label: label, Live: true}, nil
}

// settle blocks for d or until ctx is done.
func settle(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
