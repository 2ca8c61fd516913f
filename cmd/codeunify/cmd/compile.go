package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/codeunify/internal/compiler"
	"github.com/Aman-CERP/codeunify/internal/config"
	uerrors "github.com/Aman-CERP/codeunify/internal/errors"
	"github.com/Aman-CERP/codeunify/internal/logging"
	"github.com/Aman-CERP/codeunify/internal/profiling"
	"github.com/Aman-CERP/codeunify/internal/ui"
)

// runCompile resolves the settings, compiles the source directory and prints
// the summary. Zero qualifying files is reported as ErrNothingToCompile.
func runCompile(cmd *cobra.Command, opts *rootOptions) error {
	sourceDir := opts.directory
	if sourceDir == "" {
		sourceDir = "."
	}

	cfg, err := config.LoadWithFile(sourceDir, opts.configFile)
	if err != nil {
		return uerrors.ConfigError(err.Error(), err).
			WithSuggestion("Fix the settings file or check 'codeunify config show'")
	}
	applyFlags(cmd, opts, cfg)

	level := cfg.LogLevel
	if opts.verbose {
		level = "debug"
	}
	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	logCfg.Stderr = cmd.ErrOrStderr()
	if opts.logFile != "" {
		if logCfg.FilePath, err = logging.ResolveLogPath(opts.logFile); err != nil {
			return uerrors.ValidationError(fmt.Sprintf("invalid log file %s: %v", opts.logFile, err), err)
		}
	}
	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return uerrors.OutputError(fmt.Sprintf("failed to open log file: %v", err), err).
			WithDetail("path", logCfg.FilePath)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scanCfg := cfg.ScanConfig(sourceDir)
	renderer := newRenderer(cmd, opts, scanCfg.SourceDir, stop)

	c, err := compiler.New(scanCfg,
		compiler.WithLogger(logger),
		compiler.WithObserver(renderer),
		compiler.WithWorkers(cfg.Workers),
	)
	if err != nil {
		return err
	}

	if err := renderer.Start(ctx); err != nil {
		logger.Debug("progress display unavailable", slog.String("error", err.Error()))
		renderer = ui.Nop{}
	}

	res, err := c.Compile(ctx)
	if err != nil {
		_ = renderer.Stop()
		logger.Error("compilation failed", uerrors.FormatForLog(err)...)
		return err
	}

	if !res.NothingToDo {
		renderer.Complete(ui.CompletionStats{
			Output:    res.OutputPath,
			Processed: res.Processed,
			Skipped:   res.Skipped,
			Errors:    res.Errored,
			Duration:  res.Duration,
		})
	}
	_ = renderer.Stop()

	if err := printSummary(cmd, opts, summaryFor(c.Config(), res)); err != nil {
		return err
	}
	if res.NothingToDo {
		return compiler.ErrNothingToCompile
	}
	return nil
}

// applyFlags overrides settings with the flags the user set explicitly.
func applyFlags(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("output") {
		cfg.Output = opts.output
	}
	if f.Changed("ignore") {
		cfg.IgnoreFile = opts.ignoreFile
	}
	if f.Changed("extensions") {
		cfg.Extensions = opts.extensions
	}
	if f.Changed("exclude-dirs") {
		cfg.ExcludeDirs = append(cfg.ExcludeDirs, opts.excludeDirs...)
	}
	if opts.noGitignore {
		off := false
		cfg.Gitignore = &off
	}
}

// newRenderer picks the progress display. The summary goes to stdout, so
// progress is drawn on stderr.
func newRenderer(cmd *cobra.Command, opts *rootOptions, sourceDir string, interrupt func()) ui.Renderer {
	if opts.noProgress || opts.jsonOutput {
		return ui.Nop{}
	}
	if abs, err := filepath.Abs(sourceDir); err == nil {
		sourceDir = abs
	}
	return ui.NewRenderer(ui.NewConfig(cmd.ErrOrStderr(),
		ui.WithForcePlain(opts.plain),
		ui.WithNoColor(ui.DetectNoColor()),
		ui.WithSourceDir(sourceDir),
		ui.WithOnInterrupt(interrupt),
	))
}

func summaryFor(cfg config.ScanConfig, res *compiler.Result) ui.Summary {
	s := ui.Summary{
		Success:     res.Success,
		NothingToDo: res.NothingToDo,
		SourceDir:   cfg.SourceDir,
		Output:      res.OutputPath,
		Extensions:  res.Extensions,
		Processed:   res.Processed,
		Skipped:     res.Skipped,
		Ignored:     res.Ignored,
		Filtered:    res.Filtered,
		Errors:      res.Errored,
		Duration:    res.Duration,
	}
	for _, r := range res.Records {
		if r.Outcome == compiler.OutcomeError {
			s.ErrorFiles = append(s.ErrorFiles, r.Path)
		}
	}
	if info, err := os.Stat(res.OutputPath); err == nil && res.Success {
		s.OutputSize = info.Size()
	}
	return s
}

func printSummary(cmd *cobra.Command, opts *rootOptions, s ui.Summary) error {
	r := ui.NewSummaryRenderer(cmd.OutOrStdout(), ui.DetectNoColor() || !ui.IsTTY(cmd.OutOrStdout()))
	if opts.jsonOutput {
		return r.RenderJSON(s)
	}
	if s.NothingToDo {
		// The returned error carries the hint.
		return nil
	}
	return r.Render(s)
}

// withProfiling runs fn inside a profiling session when one was requested.
func withProfiling(opts profiling.Options, fn func() error) (err error) {
	if !opts.Enabled() {
		return fn()
	}

	session, err := profiling.Start(opts)
	if err != nil {
		return uerrors.OutputError(err.Error(), err)
	}
	defer func() {
		if serr := session.Stop(); serr != nil && err == nil {
			err = uerrors.OutputError(serr.Error(), serr)
		}
	}()
	return fn()
}
