// Package ui renders compilation progress: a bubbletea view for
// interactive terminals and plain lines for pipes and CI.
package ui

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// Stage is a step of one compilation.
type Stage int

const (
	// StageDiscover collects the extensions present in the tree.
	StageDiscover Stage = iota
	// StagePlan walks and classifies every file.
	StagePlan
	// StageWrite writes the selected files into the document.
	StageWrite
	// StageComplete indicates the document is done.
	StageComplete
)

// String returns the human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageDiscover:
		return "Discover"
	case StagePlan:
		return "Plan"
	case StageWrite:
		return "Write"
	case StageComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// Icon returns the short stage tag for plain text output.
func (s Stage) Icon() string {
	switch s {
	case StageDiscover:
		return "SCAN"
	case StagePlan:
		return "PLAN"
	case StageWrite:
		return "WRITE"
	case StageComplete:
		return "DONE"
	default:
		return "???"
	}
}

// ProgressEvent represents a progress update.
type ProgressEvent struct {
	Stage       Stage
	Current     int
	Total       int
	CurrentFile string
	Message     string
}

// ErrorEvent represents a problem with one file.
type ErrorEvent struct {
	File   string
	Err    error
	IsWarn bool
}

// CompletionStats contains the final counters of a run.
type CompletionStats struct {
	Output    string
	Processed int
	Skipped   int
	Errors    int
	Duration  time.Duration
}

// Renderer defines the interface for progress display.
type Renderer interface {
	// Start initializes the renderer.
	Start(ctx context.Context) error

	// UpdateProgress updates progress display.
	UpdateProgress(event ProgressEvent)

	// AddError adds an error to display.
	AddError(event ErrorEvent)

	// Complete marks rendering as complete with summary.
	Complete(stats CompletionStats)

	// Stop stops the renderer and cleans up.
	Stop() error
}

// Config configures the UI renderer.
type Config struct {
	Output     io.Writer
	ForcePlain bool
	NoColor    bool
	SourceDir  string // Shown in the TUI title
	// OnInterrupt is called when the user quits the TUI (q or ctrl+c),
	// which swallows SIGINT while it owns the terminal.
	OnInterrupt func()
}

// ConfigOption is a function that modifies Config.
type ConfigOption func(*Config)

// WithForcePlain forces plain text output.
func WithForcePlain(force bool) ConfigOption {
	return func(c *Config) {
		c.ForcePlain = force
	}
}

// WithNoColor disables color output.
func WithNoColor(noColor bool) ConfigOption {
	return func(c *Config) {
		c.NoColor = noColor
	}
}

// WithSourceDir sets the directory shown in the TUI title.
func WithSourceDir(dir string) ConfigOption {
	return func(c *Config) {
		c.SourceDir = dir
	}
}

// WithOnInterrupt sets the TUI quit hook.
func WithOnInterrupt(fn func()) ConfigOption {
	return func(c *Config) {
		c.OnInterrupt = fn
	}
}

// NewConfig creates a new Config with the given output and options.
func NewConfig(output io.Writer, opts ...ConfigOption) Config {
	cfg := Config{Output: output}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NewRenderer returns the TUI renderer for interactive terminals and the
// plain renderer for CI, pipes, or when plain output is forced.
func NewRenderer(cfg Config) Renderer {
	if cfg.ForcePlain || !IsTTY(cfg.Output) || DetectCI() {
		return NewPlainRenderer(cfg)
	}

	tui, err := NewTUIRenderer(cfg)
	if err != nil {
		return NewPlainRenderer(cfg)
	}
	return tui
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}

	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return false
}

// DetectNoColor checks if NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// DetectCI checks if running in a CI environment.
func DetectCI() bool {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "TRAVIS"}
	for _, v := range ciVars {
		if _, exists := os.LookupEnv(v); exists {
			return true
		}
	}
	return false
}

// Nop is a Renderer that displays nothing.
type Nop struct{}

func (Nop) Start(context.Context) error  { return nil }
func (Nop) UpdateProgress(ProgressEvent) {}
func (Nop) AddError(ErrorEvent)          {}
func (Nop) Complete(CompletionStats)     {}
func (Nop) Stop() error                  { return nil }
