package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/justinpbarnett/scopesync/internal/config"
	"github.com/justinpbarnett/scopesync/internal/engine"
	"github.com/justinpbarnett/scopesync/internal/run"
)

// paramSet is a repeatable --set name=value flag.
type paramSet []paramWrite

type paramWrite struct {
	Param engine.Param
	Value string
}

func (p *paramSet) String() string {
	parts := make([]string, len(*p))
	for i, w := range *p {
		parts[i] = string(w.Param) + "=" + w.Value
	}
	return strings.Join(parts, ",")
}

func (p *paramSet) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(value) == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	param, err := engine.ParseParam(name)
	if err != nil {
		return err
	}
	*p = append(*p, paramWrite{Param: param, Value: strings.TrimSpace(value)})
	return nil
}

// runWatch drives the selected run from the scheduler without a terminal
// UI. It stops after --count ticks, or when ctx is done.
func runWatch(ctx context.Context, cfg *config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	var sets paramSet
	fs.Var(&sets, "set", "write a generator setting before the first tick, e.g. amplitude=5 (repeatable)")
	count := fs.Int("count", 0, "stop after this many ticks (0 runs until interrupted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bench, closeBench, err := openBench(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBench()

	session := engine.NewSession(bench, sessionOptions(cfg))
	for _, s := range sets {
		echo, err := session.OnParameterChanged(ctx, s.Param, s.Value)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "set %s = %s\n", s.Param, echo)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticks := 0
	sched := engine.Scheduler{Interval: cfg.Engine.TickInterval(), Immediate: true}
	err = sched.Run(runCtx,
		session.OnTick,
		func(r engine.Render, err error) {
			ticks++
			printTick(w, time.Now(), session.Selected(), r, err)
			if *count > 0 && ticks >= *count {
				cancel()
			}
		})
	if !errors.Is(err, context.Canceled) {
		return err
	}

	for _, r := range session.Store().List() {
		fmt.Fprintf(w, "cached Run #%d %s\n", r.ID, r.Label)
	}
	return nil
}

func printTick(w io.Writer, at time.Time, selected run.ID, r engine.Render, err error) {
	stamp := at.Format("15:04:05")
	if err != nil {
		fmt.Fprintf(w, "%s Run #%d error: %v\n", stamp, selected, err)
		return
	}
	state := "replay"
	if r.Live {
		state = "live"
	}
	fmt.Fprintf(w, "%s Run #%d %-6s %s\n", stamp, selected, state, r.Label)
}
