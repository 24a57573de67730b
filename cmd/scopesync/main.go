package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinpbarnett/scopesync/internal/config"
	"github.com/justinpbarnett/scopesync/internal/engine"
	"github.com/justinpbarnett/scopesync/internal/ui"
	"github.com/justinpbarnett/scopesync/internal/ui/panels"
	"github.com/justinpbarnett/scopesync/internal/update"
)

const usage = `usage: scopesync [--config path] [command]

commands:
  (none)    open the dashboard
  watch     capture headless and print one line per tick
  init      write an example scopesync.yaml
  version   print the version and check for updates
  update    install the latest release
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runCLI(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runCLI(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("scopesync", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	configPath := fs.String("config", "", "config file (default: discovered)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd, rest := "", fs.Args()
	if len(rest) > 0 {
		cmd, rest = rest[0], rest[1:]
	}

	switch cmd {
	case "version":
		runVersion(ctx, stdout)
		return nil
	case "update":
		return runUpdate(ctx, stdout)
	case "init":
		return runInit(rest, stdout)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	switch cmd {
	case "":
		return runTUI(ctx, cfg)
	case "watch":
		return runWatch(ctx, cfg, rest, stdout)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func runTUI(ctx context.Context, cfg *config.Config) error {
	// The alternate screen owns stdout; log lines go to a file instead.
	logFile, err := tea.LogToFile(cfg.UI.LogFile, "scopesync")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	bench, closeBench, err := openBench(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBench()

	session := engine.NewSession(bench, sessionOptions(cfg))
	log.Printf("session %s started (driver %s)", session.ID(), cfg.Instrument.Driver)

	p := tea.NewProgram(ui.NewApp(ctx, cfg, session), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func runUpdate(ctx context.Context, stdout io.Writer) error {
	fmt.Fprintf(stdout, "scopesync %s, checking for updates...\n", panels.Version)
	rel, err := update.Apply(ctx, panels.Version, update.Repo)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Updated to v%s.\n", rel.Version)
	return nil
}
