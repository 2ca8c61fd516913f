package ui

import (
	"sync"
	"time"
)

// ProgressTracker holds the progress state shown by the TUI. It is safe
// for concurrent use.
type ProgressTracker struct {
	mu          sync.RWMutex
	now         func() time.Time
	stage       Stage
	current     int
	total       int
	currentFile string
	message     string
	stageStart  time.Time
	errors      []ErrorEvent
	warnings    []ErrorEvent
	lastETA     time.Duration
}

// ProgressStats is a snapshot of the tracker.
type ProgressStats struct {
	Stage       Stage
	Current     int
	Total       int
	Progress    float64
	Rate        float64 // Items per second in the current stage
	ETA         time.Duration
	CurrentFile string
	Message     string
	ErrorCount  int
	WarnCount   int
}

// NewProgressTracker creates a tracker at StageDiscover.
func NewProgressTracker() *ProgressTracker {
	return newProgressTracker(time.Now)
}

func newProgressTracker(now func() time.Time) *ProgressTracker {
	return &ProgressTracker{
		now:        now,
		stage:      StageDiscover,
		stageStart: now(),
	}
}

// SetStage transitions to a new stage and resets the counters.
func (p *ProgressTracker) SetStage(stage Stage, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setStage(stage, total)
}

func (p *ProgressTracker) setStage(stage Stage, total int) {
	p.stage = stage
	p.total = total
	p.current = 0
	p.currentFile = ""
	p.message = ""
	p.stageStart = p.now()
	p.lastETA = 0
}

// Apply records a progress event, switching stage when it changes.
func (p *ProgressTracker) Apply(event ProgressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if event.Stage != p.stage {
		p.setStage(event.Stage, event.Total)
	}

	p.total = event.Total
	p.current = event.Current
	if event.CurrentFile != "" {
		p.currentFile = event.CurrentFile
	}
	if event.Message != "" {
		p.message = event.Message
	}
}

// AddError records an error or warning.
func (p *ProgressTracker) AddError(event ErrorEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if event.IsWarn {
		p.warnings = append(p.warnings, event)
	} else {
		p.errors = append(p.errors, event)
	}
}

// Stats returns a snapshot. It takes the write lock because the ETA is
// smoothed across calls.
func (p *ProgressTracker) Stats() ProgressStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	progress := 0.0
	if p.total > 0 {
		progress = min(float64(p.current)/float64(p.total), 1.0)
	}

	rate := 0.0
	if elapsed := p.now().Sub(p.stageStart); elapsed > 0 && p.current > 0 {
		rate = float64(p.current) / elapsed.Seconds()
	}

	return ProgressStats{
		Stage:       p.stage,
		Current:     p.current,
		Total:       p.total,
		Progress:    progress,
		Rate:        rate,
		ETA:         p.eta(progress),
		CurrentFile: p.currentFile,
		Message:     p.message,
		ErrorCount:  len(p.errors),
		WarnCount:   len(p.warnings),
	}
}

// Errors returns the recorded errors.
func (p *ProgressTracker) Errors() []ErrorEvent {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]ErrorEvent(nil), p.errors...)
}

// Warnings returns the recorded warnings.
func (p *ProgressTracker) Warnings() []ErrorEvent {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]ErrorEvent(nil), p.warnings...)
}

// etaSmoothingFactor is the weight of the newest estimate.
const etaSmoothingFactor = 0.3

// eta must be called with the lock held.
func (p *ProgressTracker) eta(progress float64) time.Duration {
	if progress <= 0 || progress >= 1.0 {
		return 0
	}

	elapsed := p.now().Sub(p.stageStart)
	raw := time.Duration(float64(elapsed)/progress) - elapsed
	if raw < 0 {
		return 0
	}

	if p.lastETA == 0 {
		p.lastETA = raw
		return raw
	}
	p.lastETA = time.Duration(etaSmoothingFactor*float64(raw) + (1-etaSmoothingFactor)*float64(p.lastETA))
	return p.lastETA
}
