package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/codeunify/internal/ignore"
	"github.com/Aman-CERP/codeunify/internal/output"
)

func newExclusionsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "exclusions",
		Short: "List default excluded directories",
		Long: `List the directory names that are always skipped. Names may be glob
patterns (*.egg-info) or slash-separated paths (docs/_build). Use
--exclude-dirs or exclude_dirs in a settings file to add more.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExclusions(cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as a JSON array")

	return cmd
}

func runExclusions(cmd *cobra.Command, jsonOutput bool) error {
	dirs := ignore.DefaultExcludeDirs()
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(dirs)
	}

	output.New(cmd.OutOrStdout()).List("Default excluded directories:", dirs)
	return nil
}
