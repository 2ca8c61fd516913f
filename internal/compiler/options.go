package compiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Aman-CERP/codeunify/internal/ui"
)

// Observer receives progress and per-file problems. ui.Renderer
// satisfies it.
type Observer interface {
	UpdateProgress(event ui.ProgressEvent)
	AddError(event ui.ErrorEvent)
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger for compilation events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the time source for the "Generated on" header line.
func WithClock(now func() time.Time) Option {
	return func(c *Compiler) {
		if now != nil {
			c.now = now
		}
	}
}

// WithObserver sets the progress receiver.
func WithObserver(o Observer) Option {
	return func(c *Compiler) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithWorkers bounds parallel classification. n <= 0 means NumCPU.
func WithWorkers(n int) Option {
	return func(c *Compiler) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		c.workers = n
	}
}

// WithDiskCheck toggles the free-space check that runs before the output
// file is created. It is on by default.
func WithDiskCheck(enabled bool) Option {
	return func(c *Compiler) {
		c.diskCheck = enabled
	}
}

type nopObserver struct{}

func (nopObserver) UpdateProgress(ui.ProgressEvent) {}
func (nopObserver) AddError(ui.ErrorEvent)          {}
