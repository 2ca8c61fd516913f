package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/codeunify/internal/compiler"
	"github.com/Aman-CERP/codeunify/internal/config"
	uerrors "github.com/Aman-CERP/codeunify/internal/errors"
	"github.com/Aman-CERP/codeunify/internal/preflight"
)

type doctorOptions struct {
	directory  string
	output     string
	configFile string
	verbose    bool
	jsonOutput bool
}

func newDoctorCmd() *cobra.Command {
	opts := &doctorOptions{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that a compilation can run",
		Long: `Run the checks a compilation depends on without writing anything.

Checks:
  - Source directory exists and can be listed
  - Output directory is writable (or can be created)
  - Enough free disk space for the estimated document

The estimate comes from a dry run of the ignore rules and extension
filter, so it reflects the same settings a real run would use.`,
		Example: `  # Check the current directory
  codeunify doctor

  # Check a different tree and output, with details
  codeunify doctor -d src -o /tmp/src.txt --verbose

  # JSON output for scripting
  codeunify doctor --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.directory, "directory", "d", ".", "Source directory to check")
	f.StringVarP(&opts.output, "output", "o", "", "Output file to check (default: from settings)")
	f.StringVar(&opts.configFile, "config", "", "Settings file to use instead of .codeunify.yaml")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Show detailed diagnostic info")
	f.BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runDoctor(cmd *cobra.Command, opts *doctorOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWithFile(opts.directory, opts.configFile)
	if err != nil {
		return uerrors.ConfigError(err.Error(), err)
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}
	scanCfg := cfg.ScanConfig(opts.directory)

	checker := preflight.New(
		preflight.WithVerbose(opts.verbose),
		preflight.WithOutput(cmd.OutOrStdout()),
	)

	target := preflight.Target{SourceDir: scanCfg.SourceDir, OutputPath: scanCfg.OutputPath}
	if c, err := compiler.New(scanCfg, compiler.WithWorkers(cfg.Workers)); err == nil {
		target.OutputPath = c.Config().OutputPath
		plan, err := c.Plan(ctx)
		if err != nil {
			return err
		}
		target.NeedBytes = plan.EstimatedBytes()
	}

	results := checker.RunAll(ctx, target)

	if opts.jsonOutput {
		if err := outputDoctorJSON(cmd, checker, results); err != nil {
			return err
		}
	} else {
		checker.PrintResults(results)
	}

	if checker.HasCriticalFailures(results) {
		return uerrors.New(uerrors.ErrCodePreflight, "system check failed", nil).
			WithSuggestion("Fix the failed checks above and run 'codeunify doctor' again")
	}
	return nil
}

// doctorReport is the JSON form of a doctor run.
type doctorReport struct {
	Status string                  `json:"status"`
	Checks []preflight.CheckResult `json:"checks"`
	Errors []string                `json:"errors,omitempty"`
}

func outputDoctorJSON(cmd *cobra.Command, checker *preflight.Checker, results []preflight.CheckResult) error {
	report := doctorReport{
		Status: checker.SummaryStatus(results),
		Checks: results,
	}
	for _, r := range results {
		if r.IsCritical() {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", r.Name, r.Message))
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
