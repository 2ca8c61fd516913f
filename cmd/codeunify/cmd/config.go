package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/codeunify/configs"
	"github.com/Aman-CERP/codeunify/internal/config"
	uerrors "github.com/Aman-CERP/codeunify/internal/errors"
	"github.com/Aman-CERP/codeunify/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage settings files",
		Long: `Manage codeunify settings files.

Configuration precedence (lowest to highest):
  1. Built-in defaults
  2. User settings (~/.config/codeunify/config.yaml)
  3. Project settings (.codeunify.yaml in the source directory)
  4. Environment variables (CODEUNIFY_*)
  5. Command-line flags`,
		Example: `  # Create .codeunify.yaml in the current directory
  codeunify config init

  # Show effective settings for ./src
  codeunify config show -d src

  # Print the user settings file path
  codeunify config path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force     bool
		user      bool
		directory string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a settings file from a template",
		Long: `Create .codeunify.yaml in the source directory, or the user settings
file with --user. An existing file is only replaced with --force; the old
one is kept as a timestamped .bak next to it.`,
		Example: `  # Project settings
  codeunify config init

  # User settings, replacing the current file
  codeunify config init --user --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := filepath.Join(directory, config.ProjectConfigFile)
			template := configs.ProjectConfigTemplate
			if user {
				path = config.GetUserConfigPath()
				template = configs.UserConfigTemplate
			}
			return runConfigInit(cmd, path, template, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file (a backup is kept)")
	cmd.Flags().BoolVar(&user, "user", false, "Create the user settings file instead")
	cmd.Flags().StringVarP(&directory, "directory", "d", ".", "Source directory for the project file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, path, template string, force bool) error {
	out := output.New(cmd.OutOrStdout())

	var backupPath string
	if _, err := os.Stat(path); err == nil {
		if !force {
			return uerrors.New(uerrors.ErrCodeConfigExists,
				fmt.Sprintf("settings file already exists: %s", path), nil).
				WithSuggestion("Use --force to replace it (a backup is kept)")
		}
		if backupPath, err = config.BackupFile(path); err != nil {
			return uerrors.IOError(fmt.Sprintf("failed to back up %s: %v", path, err), err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return uerrors.OutputError(fmt.Sprintf("failed to create directory for %s: %v", path, err), err)
	}
	if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
		return uerrors.OutputError(fmt.Sprintf("failed to write %s: %v", path, err), err)
	}

	out.Successf("Created %s", path)
	if backupPath != "" {
		out.Statusf(">", "Backup: %s", backupPath)
	}
	out.Status("", "Edit the file, then run 'codeunify config show' to verify")
	return nil
}

func newConfigShowCmd() *cobra.Command {
	var (
		jsonOutput bool
		directory  string
		configFile string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective settings",
		Long: `Show the settings a run in the source directory would use, after
merging defaults, the user file, the project file and the environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadWithFile(directory, configFile)
			if err != nil {
				return uerrors.ConfigError(err.Error(), err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return uerrors.InternalError("failed to render settings", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVarP(&directory, "directory", "d", ".", "Source directory")
	cmd.Flags().StringVar(&configFile, "config", "", "Settings file to use instead of .codeunify.yaml")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	var directory string
	var project bool

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Long: `Print the user settings file path, or with --project the settings
file found in the source directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.GetUserConfigPath()
			if project {
				if path = config.ProjectConfigPath(directory); path == "" {
					return uerrors.New(uerrors.ErrCodeConfigNotFound,
						fmt.Sprintf("no %s in %s", config.ProjectConfigFile, directory), nil).
						WithSuggestion("Run 'codeunify config init' to create one")
				}
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.Flags().BoolVar(&project, "project", false, "Print the project settings file instead")
	cmd.Flags().StringVarP(&directory, "directory", "d", ".", "Source directory")

	return cmd
}
