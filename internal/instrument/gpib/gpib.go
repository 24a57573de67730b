// Package gpib drives a Tektronix AFG3021 function generator and a TDS350
// oscilloscope through Prologix GPIB-USB controllers.
package gpib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/gotmc/prologix"
	"github.com/gotmc/prologix/driver/vcp"
	"github.com/justinpbarnett/scopesync/internal/instrument"
)

// conn is the subset of *prologix.Controller the instruments use.
type conn interface {
	Command(cmd string) error
	Query(q string) (string, error)
}

// Endpoint names one instrument on the bus.
type Endpoint struct {
	Port    string
	Address int
}

type Config struct {
	Generator Endpoint
	Scope     Endpoint
	// Channel is the scope input that carries the generator output, e.g. "CH1".
	Channel string
}

// ErrSharedPort is returned when both instruments are configured on one
// serial port. Each Bench side owns its port and transaction lock.
var ErrSharedPort = errors.New("generator and scope must use separate ports")

func (c Config) check() error {
	if c.Generator.Port == c.Scope.Port {
		return fmt.Errorf("%w: %s", ErrSharedPort, c.Scope.Port)
	}
	return nil
}

// Bench is a generator and scope opened together. Each sits behind its own
// Prologix adapter.
type Bench struct {
	*Generator
	*Scope
	closers []io.Closer
}

// Open connects to both instruments and configures the scope for ASCII
// waveform transfer.
func Open(ctx context.Context, cfg Config) (*Bench, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	b := &Bench{}

	gen, err := b.dial(cfg.Generator)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("open generator: %w", err)
	}
	b.Generator = NewGenerator(gen)

	scope, err := b.dial(cfg.Scope)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("open scope: %w", err)
	}
	b.Scope = NewScope(scope, cfg.Channel)

	if err := b.Scope.Configure(ctx); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

func (b *Bench) dial(ep Endpoint) (conn, error) {
	port, err := vcp.NewVCP(ep.Port)
	if err != nil {
		return nil, &instrument.CommError{Op: "open " + ep.Port, Err: err}
	}
	b.closers = append(b.closers, port)

	ctrl, err := prologix.NewController(port, ep.Address, false)
	if err != nil {
		return nil, &instrument.CommError{Op: fmt.Sprintf("controller %s@%d", ep.Port, ep.Address), Err: err}
	}
	return ctrl, nil
}

// Close releases both serial ports.
func (b *Bench) Close() error {
	var first error
	for _, c := range b.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	b.closers = nil
	return first
}

// bus serializes transactions on one controller; a query's reply must not be
// interleaved with another command.
type bus struct {
	mu sync.Mutex
	c  conn
}

func (b *bus) command(ctx context.Context, cmd string) error {
	if err := ctx.Err(); err != nil {
		return &instrument.CommError{Op: cmd, Err: err}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.c.Command(cmd); err != nil {
		return &instrument.CommError{Op: cmd, Err: err}
	}
	return nil
}

func (b *bus) query(ctx context.Context, q string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &instrument.CommError{Op: q, Err: err}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	reply, err := b.c.Query(q)
	if err != nil && err != io.EOF {
		return "", &instrument.CommError{Op: q, Err: err}
	}
	return strings.TrimSpace(reply), nil
}

func (b *bus) queryFloat(ctx context.Context, q string) (float64, error) {
	reply, err := b.query(ctx, q)
	if err != nil {
		return 0, err
	}
	return parseNumber(q, reply)
}

// parseNumber accepts bare numbers and replies that still carry a header,
// e.g. ":WFMPRE:XINCR 4.0E-6".
func parseNumber(q, reply string) (float64, error) {
	fields := strings.Fields(reply)
	if len(fields) == 0 {
		return 0, &instrument.CommError{Op: q, Err: fmt.Errorf("empty reply")}
	}
	v, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return 0, &instrument.CommError{Op: q, Err: fmt.Errorf("parse %q: %w", reply, err)}
	}
	return v, nil
}
