package compiler

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/codeunify/internal/ignore"
	"github.com/Aman-CERP/codeunify/internal/scanner"
	"github.com/Aman-CERP/codeunify/internal/ui"
)

// Outcome is what happened, or will happen, to one walked file.
type Outcome int

const (
	// OutcomeSelected files qualify and are written by Compile.
	OutcomeSelected Outcome = iota
	// OutcomeIgnored files matched an ignore rule.
	OutcomeIgnored
	// OutcomeFiltered files have an extension outside the active set.
	OutcomeFiltered
	// OutcomeProcessed files had their content written.
	OutcomeProcessed
	// OutcomeError files got a placeholder instead of content.
	OutcomeError
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSelected:
		return "selected"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeFiltered:
		return "filtered"
	case OutcomeProcessed:
		return "processed"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// FileRecord is the decision for one walked file.
type FileRecord struct {
	Path      string // Relative to the source directory, slash-separated
	AbsPath   string
	Extension string
	Size      int64
	Outcome   Outcome
	// Verdict is the ignore decision; Reincluded files were saved by a
	// negated .gitignore pattern.
	Verdict ignore.Verdict
	// Encoding is "utf-8" or "latin-1" once processed.
	Encoding string
	// Err is set for OutcomeError.
	Err error
}

// Plan is the classified result of pass 1. Compile writes from it without
// walking the tree again.
type Plan struct {
	SourceDir string
	// Extensions is the active filter.
	Extensions scanner.ExtensionSet
	// Discovered is true when Extensions came from the tree.
	Discovered bool
	// Records holds every walked file in walk order.
	Records []FileRecord
}

// Selected returns the records to write, in walk order.
func (p *Plan) Selected() []FileRecord {
	var out []FileRecord
	for _, r := range p.Records {
		if r.Outcome == OutcomeSelected {
			out = append(out, r)
		}
	}
	return out
}

// Count returns how many records have outcome o.
func (p *Plan) Count(o Outcome) int {
	n := 0
	for _, r := range p.Records {
		if r.Outcome == o {
			n++
		}
	}
	return n
}

// EstimatedBytes approximates the document size: selected file contents
// plus the per-file and document framing.
func (p *Plan) EstimatedBytes() uint64 {
	const framing = 512
	need := uint64(framing)
	for _, r := range p.Records {
		if r.Outcome != OutcomeSelected {
			continue
		}
		need += uint64(max(r.Size, 0)) + uint64(len(r.Path)) + framing
	}
	return need
}

// Plan builds the rule set, resolves the extension filter and classifies
// every file of the pruned tree.
func (c *Compiler) Plan(ctx context.Context) (*Plan, error) {
	rs, err := ignore.Build(ignore.Options{
		SourceDir:    c.cfg.SourceDir,
		IgnoreFile:   c.cfg.IgnoreFile,
		UseGitignore: c.cfg.UseGitignore,
		ExcludeDirs:  c.cfg.ExcludeDirs,
		Logger:       c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build ignore rules: %w", err)
	}

	sc := scanner.New(scanner.WithLogger(c.logger))
	opts := &scanner.ScanOptions{
		RootDir:   c.cfg.SourceDir,
		Exclude:   rs,
		SkipPaths: []string{c.cfg.OutputPath, lockPath(c.cfg.OutputPath)},
	}

	plan := &Plan{SourceDir: c.cfg.SourceDir}

	if len(c.cfg.Extensions) > 0 {
		plan.Extensions = scanner.NormalizeExtensions(c.cfg.Extensions)
	} else {
		c.observer.UpdateProgress(ui.ProgressEvent{
			Stage:   ui.StageDiscover,
			Message: "Scanning directory for file extensions...",
		})
		plan.Extensions, err = scanner.Discover(ctx, sc, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to discover extensions: %w", err)
		}
		plan.Discovered = true
		c.logger.Info("found extensions", slog.String("extensions", plan.Extensions.String()))
	}

	c.observer.UpdateProgress(ui.ProgressEvent{
		Stage:   ui.StagePlan,
		Message: "Counting files to process...",
	})

	files, err := c.walk(ctx, sc, opts)
	if err != nil {
		return nil, err
	}

	plan.Records = make([]FileRecord, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			plan.Records[i] = classify(f, rs, plan.Extensions)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range plan.Records {
		switch r.Outcome {
		case OutcomeIgnored:
			c.logger.Debug("ignoring file",
				slog.String("path", r.Path),
				slog.String("reason", r.Verdict.String()))
		case OutcomeFiltered:
			c.logger.Debug("skipping file with extension",
				slog.String("path", r.Path),
				slog.String("ext", r.Extension))
		}
	}

	selected := plan.Count(OutcomeSelected)
	c.observer.UpdateProgress(ui.ProgressEvent{
		Stage:   ui.StagePlan,
		Current: selected,
		Total:   len(plan.Records),
		Message: fmt.Sprintf("Found %d files to process", selected),
	})
	c.logger.Info("found files to process", slog.Int("count", selected))

	return plan, nil
}

func (c *Compiler) walk(ctx context.Context, sc *scanner.Scanner, opts *scanner.ScanOptions) ([]*scanner.FileInfo, error) {
	results, err := sc.Scan(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start scanning: %w", err)
	}

	var files []*scanner.FileInfo
	var walkErr error
	for r := range results {
		if r.Error != nil {
			walkErr = r.Error
			continue
		}
		files = append(files, r.File)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", opts.RootDir, walkErr)
	}
	return files, nil
}

// classify applies the ignore rules, then the extension filter.
func classify(f *scanner.FileInfo, rs *ignore.RuleSet, exts scanner.ExtensionSet) FileRecord {
	rec := FileRecord{
		Path:      f.Path,
		AbsPath:   f.AbsPath,
		Extension: f.Extension,
		Size:      f.Size,
		Verdict:   rs.Match(f.Path),
	}
	switch {
	case rec.Verdict.Ignored():
		rec.Outcome = OutcomeIgnored
	case exts.Contains(f.Extension):
		rec.Outcome = OutcomeSelected
	default:
		rec.Outcome = OutcomeFiltered
	}
	return rec
}
