package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Aman-CERP/codeunify/internal/gitignore"
)

// GitignoreFile is the file name consulted at the scan root.
const GitignoreFile = ".gitignore"

// Options configures Build.
type Options struct {
	// SourceDir is the absolute scan root.
	SourceDir string
	// IgnoreFile is the custom ignore file, relative to SourceDir unless absolute.
	IgnoreFile string
	// UseGitignore enables SourceDir/.gitignore.
	UseGitignore bool
	// ExcludeDirs are merged after DefaultExcludeDirs.
	ExcludeDirs []string
	// Logger receives load events. Nil means slog.Default().
	Logger *slog.Logger
}

// Build loads the custom ignore file and .gitignore, merges the directory
// exclusions and compiles everything into a RuleSet. Load failures are
// logged and leave that source without patterns; Build itself only fails
// if the RuleSet cannot be allocated.
func Build(opts Options) (*RuleSet, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rules := Rules{
		ExcludeDirs: MergeNames(DefaultExcludeDirs(), opts.ExcludeDirs),
	}

	if opts.IgnoreFile != "" {
		p := resolve(opts.SourceDir, opts.IgnoreFile)
		custom, err := LoadCustomPatterns(p)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Debug("no custom ignore file", slog.String("path", p))
		case err != nil:
			logger.Warn("failed to load ignore file",
				slog.String("path", p),
				slog.String("error", err.Error()))
		default:
			rules.Custom = custom
			logger.Debug("loaded ignore patterns",
				slog.String("path", p),
				slog.Int("count", len(custom)))
		}
	}

	if opts.UseGitignore {
		p := filepath.Join(opts.SourceDir, GitignoreFile)
		positive, negated, err := loadGitignoreLines(p)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Debug("no .gitignore", slog.String("path", p))
		case err != nil:
			logger.Warn("failed to load .gitignore",
				slog.String("path", p),
				slog.String("error", err.Error()))
		default:
			rules.Gitignore = positive
			rules.GitignoreNegated = negated
			logger.Debug("loaded .gitignore patterns",
				slog.String("path", p),
				slog.Int("patterns", len(positive)),
				slog.Int("negated", len(negated)))
		}
	}

	rs, err := NewRuleSet(rules)
	var invalid *InvalidPatternsError
	if errors.As(err, &invalid) {
		for _, p := range invalid.Patterns {
			logger.Warn("skipping malformed pattern", slog.String("pattern", p))
		}
		return rs, nil
	}
	return rs, err
}

// LoadCustomPatterns reads a custom ignore file: one fnmatch-style pattern
// per line, blank and "#" lines skipped, surrounding whitespace trimmed.
// A leading "!" has no special meaning here.
func LoadCustomPatterns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var patterns []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return patterns, nil
}

func loadGitignoreLines(path string) (positive, negated []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()
	return gitignore.Parse(f)
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
