// Package cmd provides the CLI commands for codeunify.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	uerrors "github.com/Aman-CERP/codeunify/internal/errors"
	"github.com/Aman-CERP/codeunify/internal/profiling"
	"github.com/Aman-CERP/codeunify/pkg/version"
)

// rootOptions holds the flags of a compilation run.
type rootOptions struct {
	directory      string
	output         string
	ignoreFile     string
	extensions     []string
	noGitignore    bool
	excludeDirs    []string
	listExclusions bool
	verbose        bool
	logFile        string
	noProgress     bool
	plain          bool
	jsonOutput     bool
	configFile     string
	profile        profiling.Options
}

// NewRootCmd creates the root command for the codeunify CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "codeunify",
		Short: "Compile code from multiple files into a single document",
		Long: `codeunify walks a source directory, skips what .gitignore, the custom
ignore file and the built-in directory exclusions rule out, keeps the files
with the requested extensions and writes them into one text document.

Settings come from, lowest to highest precedence: built-in defaults, the
user settings file, .codeunify.yaml in the source directory, CODEUNIFY_*
environment variables and flags.`,
		Example: `  # Compile the current directory
  codeunify

  # Only Python and Markdown files from ./src into src.txt
  codeunify -d src -e py,md -o src.txt

  # See which directories are always skipped
  codeunify --list-exclusions`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.listExclusions {
				return runExclusions(cmd, false)
			}
			return withProfiling(opts.profile, func() error {
				return runCompile(cmd, opts)
			})
		},
	}

	cmd.SetVersionTemplate("codeunify version {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return uerrors.ValidationError(err.Error(), err).
			WithSuggestion("Run 'codeunify --help' for usage")
	})

	f := cmd.Flags()
	f.StringVarP(&opts.directory, "directory", "d", "", "The directory containing the code files (default: current directory)")
	f.StringVarP(&opts.output, "output", "o", "code_compilation.txt", "The output file name")
	f.StringVarP(&opts.ignoreFile, "ignore", "i", ".codeignore", "The ignore file name")
	f.StringSliceVarP(&opts.extensions, "extensions", "e", nil, "File extensions to include (default: all found)")
	f.BoolVar(&opts.noGitignore, "no-gitignore", false, "Ignore the .gitignore file")
	f.StringSliceVar(&opts.excludeDirs, "exclude-dirs", nil, "Additional directories to exclude")
	f.BoolVar(&opts.listExclusions, "list-exclusions", false, "List default excluded directories and exit")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	f.StringVar(&opts.logFile, "log-file", "", "Also write JSON logs to this file (rotated)")
	f.BoolVar(&opts.noProgress, "no-progress", false, "Disable the progress display")
	f.BoolVar(&opts.plain, "plain", false, "Force plain text progress (no TUI)")
	f.BoolVar(&opts.jsonOutput, "json", false, "Print the run summary as JSON")
	f.StringVar(&opts.configFile, "config", "", "Settings file to use instead of .codeunify.yaml")
	f.StringVar(&opts.profile.CPU, "profile-cpu", "", "Write CPU profile to file")
	f.StringVar(&opts.profile.Heap, "profile-mem", "", "Write memory profile to file")
	f.StringVar(&opts.profile.Trace, "profile-trace", "", "Write execution trace to file")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newExclusionsCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

// Execute runs the root command and prints a failure to stderr.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		printError(root, err)
	}
	return err
}

func printError(cmd *cobra.Command, err error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), uerrors.FormatForCLI(err))
}
