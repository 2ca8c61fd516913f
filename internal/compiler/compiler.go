// Package compiler turns a source tree into one text document: pass 1
// classifies every file of the pruned tree into a Plan, pass 2 writes the
// selected files in walk order between a header and a summary footer.
package compiler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/Aman-CERP/codeunify/internal/config"
	uerrors "github.com/Aman-CERP/codeunify/internal/errors"
	"github.com/Aman-CERP/codeunify/internal/preflight"
	"github.com/Aman-CERP/codeunify/internal/ui"
)

// ErrNothingToCompile is returned by callers that treat a run with zero
// qualifying files as a failure. It matches by code under errors.Is.
var ErrNothingToCompile = uerrors.New(uerrors.ErrCodeNothingToDo,
	"no files found to process", nil).
	WithSuggestion("Check your extensions, ignore file and excluded directories")

// Result summarises one compilation.
type Result struct {
	// Success is true when the document was written completely.
	Success bool
	// NothingToDo is true when no file qualified; no document was written.
	NothingToDo bool

	OutputPath string
	// Extensions is the active filter, sorted.
	Extensions []string

	Processed int
	// Skipped is Ignored + Filtered.
	Skipped  int
	Ignored  int
	Filtered int
	Errored  int
	// Total is the number of files the walker reported.
	Total int

	// Records holds every walked file with its final outcome.
	Records  []FileRecord
	Duration time.Duration
}

// Compiler runs one configuration. It is not safe for concurrent Compile
// calls on the same output path; the output lock reports the second one.
type Compiler struct {
	cfg      config.ScanConfig
	logger   *slog.Logger
	observer Observer
	now      func() time.Time
	workers  int
	// diskCheck verifies free space before the document is created.
	diskCheck bool
}

// New normalizes and validates cfg.
func New(cfg config.ScanConfig, opts ...Option) (*Compiler, error) {
	norm, err := cfg.Normalize()
	if err != nil {
		return nil, uerrors.New(uerrors.ErrCodeInvalidInput, err.Error(), err)
	}
	if err := norm.Validate(); err != nil {
		return nil, uerrors.New(uerrors.ErrCodeInvalidDirectory, err.Error(), err).
			WithDetail("directory", norm.SourceDir).
			WithSuggestion("Pass an existing directory with --directory")
	}

	c := &Compiler{
		cfg:       norm,
		logger:    slog.Default(),
		observer:  nopObserver{},
		now:       time.Now,
		workers:   runtime.NumCPU(),
		diskCheck: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the normalized configuration.
func (c *Compiler) Config() config.ScanConfig {
	return c.cfg
}

// Compile plans the run and writes the document. Per-file read failures are
// counted and replaced by a placeholder. Output failures, a held output
// lock and cancellation are returned as errors. Zero qualifying files
// yields a Result with NothingToDo set and no document.
func (c *Compiler) Compile(ctx context.Context) (*Result, error) {
	start := time.Now()

	plan, err := c.Plan(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, canceled(ctx.Err())
		}
		return nil, err
	}

	res := &Result{
		OutputPath: c.cfg.OutputPath,
		Extensions: plan.Extensions.Sorted(),
		Ignored:    plan.Count(OutcomeIgnored),
		Filtered:   plan.Count(OutcomeFiltered),
		Total:      len(plan.Records),
		Records:    append([]FileRecord(nil), plan.Records...),
	}
	res.Skipped = res.Ignored + res.Filtered

	selected := plan.Count(OutcomeSelected)
	if selected == 0 {
		c.logger.Warn("no files found to process; check your filters and exclusions")
		res.NothingToDo = true
		res.Duration = time.Since(start)
		return res, nil
	}

	if c.diskCheck {
		check := preflight.New().CheckDiskSpace(filepath.Dir(c.cfg.OutputPath), plan.EstimatedBytes())
		if check.IsCritical() {
			return nil, uerrors.New(uerrors.ErrCodeDiskFull,
				fmt.Sprintf("not enough space for %s: %s", c.cfg.OutputPath, check.Message), nil).
				WithSuggestion("Free disk space or choose a different --output")
		}
		if check.Status == preflight.StatusWarn {
			c.logger.Warn("disk space check skipped", slog.String("reason", check.Message))
		}
	}

	lock := newOutputLock(c.cfg.OutputPath)
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, uerrors.OutputError(err.Error(), err).
			WithDetail("output", c.cfg.OutputPath)
	}
	if !acquired {
		return nil, uerrors.New(uerrors.ErrCodeOutputLocked,
			fmt.Sprintf("output %s is being written by another run", c.cfg.OutputPath), nil).
			WithSuggestion("Wait for the other run to finish or choose a different --output")
	}
	defer func() { _ = lock.Unlock() }()

	if err := c.write(ctx, res, selected); err != nil {
		if ctx.Err() != nil {
			return nil, canceled(ctx.Err())
		}
		c.logger.Error("failed to write output",
			slog.String("path", c.cfg.OutputPath),
			slog.String("error", err.Error()))
		if errors.Is(err, syscall.ENOSPC) {
			return nil, uerrors.New(uerrors.ErrCodeDiskFull,
				fmt.Sprintf("no space left writing %s", c.cfg.OutputPath), err).
				WithSuggestion("Free disk space or choose a different --output")
		}
		return nil, uerrors.OutputError(
			fmt.Sprintf("error writing to %s: %v", c.cfg.OutputPath, err), err).
			WithDetail("output", c.cfg.OutputPath)
	}

	res.Success = true
	res.Duration = time.Since(start)

	c.logger.Info("code has been compiled",
		slog.String("output", c.cfg.OutputPath),
		slog.Int("processed", res.Processed),
		slog.Int("skipped", res.Skipped))
	if res.Errored > 0 {
		c.logger.Warn("encountered errors in files", slog.Int("count", res.Errored))
	}
	return res, nil
}

// write performs pass 2 over res.Records, updating outcomes and counters.
func (c *Compiler) write(ctx context.Context, res *Result, total int) error {
	f, err := os.Create(c.cfg.OutputPath)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)

	err = c.writeDocument(ctx, bw, res, total)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func (c *Compiler) writeDocument(ctx context.Context, w *bufio.Writer, res *Result, total int) error {
	err := writeHeader(w, header{
		Generated:  c.now(),
		SourceDir:  c.cfg.SourceDir,
		Extensions: res.Extensions,
	})
	if err != nil {
		return err
	}

	done := 0
	for i := range res.Records {
		rec := &res.Records[i]
		if rec.Outcome != OutcomeSelected {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		done++
		c.observer.UpdateProgress(ui.ProgressEvent{
			Stage:       ui.StageWrite,
			Current:     done,
			Total:       total,
			CurrentFile: rec.Path,
		})

		if err := writeFileHeader(w, rec.Path); err != nil {
			return err
		}

		content, enc, rerr := readContent(rec.AbsPath)
		if rerr != nil {
			rec.Outcome = OutcomeError
			rec.Err = rerr
			res.Errored++
			c.logger.Warn("error reading file",
				slog.String("path", rec.Path),
				slog.String("error", rerr.Error()))
			c.observer.AddError(ui.ErrorEvent{File: rec.Path, Err: rerr, IsWarn: true})
			if _, err := w.WriteString(placeholder(rec.Path, rerr)); err != nil {
				return err
			}
			continue
		}

		if _, err := w.Write(content); err != nil {
			return err
		}
		rec.Outcome = OutcomeProcessed
		rec.Encoding = enc
		res.Processed++
		c.logger.Debug("processed",
			slog.String("path", rec.Path),
			slog.String("encoding", enc))
	}

	return writeFooter(w, summary{
		Processed: res.Processed,
		Skipped:   res.Skipped,
		Errored:   res.Errored,
	})
}

func canceled(err error) error {
	return uerrors.New(uerrors.ErrCodeCanceled, "compilation canceled", err)
}
