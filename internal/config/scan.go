package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Aman-CERP/codeunify/internal/scanner"
)

// Defaults for a compilation run.
const (
	DefaultOutput     = "code_compilation.txt"
	DefaultIgnoreFile = ".codeignore"
)

// ScanConfig is everything the compiler needs for one run.
type ScanConfig struct {
	// SourceDir is the directory to compile. Empty means the working directory.
	SourceDir string
	// OutputPath is the document to write, relative to the working directory
	// unless absolute.
	OutputPath string
	// IgnoreFile holds custom fnmatch-style patterns, relative to SourceDir
	// unless absolute.
	IgnoreFile string
	// UseGitignore enables SourceDir/.gitignore.
	UseGitignore bool
	// Extensions is the explicit filter. Nil means discover from the tree.
	Extensions []string
	// ExcludeDirs are added to the built-in directory exclusions.
	ExcludeDirs []string
}

// DefaultScanConfig returns the configuration used when nothing is set.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		OutputPath:   DefaultOutput,
		IgnoreFile:   DefaultIgnoreFile,
		UseGitignore: true,
	}
}

// Normalize resolves SourceDir and OutputPath to absolute paths and
// normalizes Extensions to lower-case with a leading dot, sorted. An
// extension list that normalizes to nothing becomes nil.
func (c ScanConfig) Normalize() (ScanConfig, error) {
	out := c

	src := c.SourceDir
	if src == "" {
		wd, err := os.Getwd()
		if err != nil {
			return c, fmt.Errorf("failed to get working directory: %w", err)
		}
		src = wd
	}
	abs, err := filepath.Abs(src)
	if err != nil {
		return c, fmt.Errorf("failed to resolve source directory: %w", err)
	}
	out.SourceDir = abs

	output := c.OutputPath
	if output == "" {
		output = DefaultOutput
	}
	if out.OutputPath, err = filepath.Abs(output); err != nil {
		return c, fmt.Errorf("failed to resolve output path: %w", err)
	}

	if out.IgnoreFile == "" {
		out.IgnoreFile = DefaultIgnoreFile
	}

	out.Extensions = nil
	if set := scanner.NormalizeExtensions(c.Extensions); set != nil {
		out.Extensions = set.Sorted()
	}
	return out, nil
}

// Validate checks that SourceDir names an existing directory.
func (c ScanConfig) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source directory is not set")
	}
	info, err := os.Stat(c.SourceDir)
	if err != nil {
		return fmt.Errorf("invalid directory: %s: %w", c.SourceDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid directory: %s is not a directory", c.SourceDir)
	}
	return nil
}

// IgnoreFilePath returns the absolute path of the custom ignore file.
func (c ScanConfig) IgnoreFilePath() string {
	if filepath.IsAbs(c.IgnoreFile) {
		return c.IgnoreFile
	}
	return filepath.Join(c.SourceDir, c.IgnoreFile)
}
