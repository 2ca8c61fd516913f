package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// resultBuffer is the capacity of the result channel.
const resultBuffer = 64

// Scanner streams the files of a directory tree.
//
// Within a directory, files are reported in lexicographic order before any
// subdirectory is entered; subdirectories are then visited in lexicographic
// order. Symlinks and non-regular files are skipped. Directories that cannot
// be read contribute no files and do not stop the walk.
type Scanner struct {
	logger *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger for traversal events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Scanner.
func New(opts ...Option) *Scanner {
	s := &Scanner{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan validates the root and starts the traversal in the background. The
// channel is closed when the walk ends or ctx is cancelled.
func (s *Scanner) Scan(ctx context.Context, opts *ScanOptions) (<-chan ScanResult, error) {
	if opts == nil {
		opts = &ScanOptions{}
	}

	rootDir := opts.RootDir
	if rootDir == "" {
		rootDir = "."
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path is not a directory: %s", absRoot)
	}

	skip := make(map[string]struct{}, len(opts.SkipPaths))
	for _, p := range opts.SkipPaths {
		if abs, err := filepath.Abs(p); err == nil {
			skip[abs] = struct{}{}
		}
	}

	results := make(chan ScanResult, resultBuffer)
	w := &walk{
		Scanner: s,
		root:    absRoot,
		exclude: opts.Exclude,
		skip:    skip,
		results: results,
	}

	go func() {
		defer close(results)
		if err := w.dir(ctx, absRoot, ""); err != nil && ctx.Err() == nil {
			select {
			case results <- ScanResult{Error: err}:
			case <-ctx.Done():
			}
		}
	}()

	return results, nil
}

// walk carries the state of one traversal.
type walk struct {
	*Scanner
	root    string
	exclude DirFilter
	skip    map[string]struct{}
	results chan<- ScanResult
}

func (w *walk) dir(ctx context.Context, absDir, relDir string) error {
	entries, err := os.ReadDir(absDir)
	if err != nil {
		w.logger.Warn("failed to read directory",
			slog.String("path", displayPath(relDir)),
			slog.String("error", err.Error()))
		// ReadDir may still return the entries read before the failure.
		if len(entries) == 0 {
			return nil
		}
	}

	var subdirs []fs.DirEntry
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := e.Name()
		rel := joinRel(relDir, name)

		switch {
		case e.Type()&fs.ModeSymlink != 0:
			w.logger.Debug("skipping symlink", slog.String("path", rel))
			continue
		case e.IsDir():
			subdirs = append(subdirs, e)
			continue
		case !e.Type().IsRegular():
			w.logger.Debug("skipping non-regular file", slog.String("path", rel))
			continue
		}

		abs := filepath.Join(absDir, name)
		if _, ok := w.skip[abs]; ok {
			continue
		}

		info, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			w.logger.Debug("skipping vanished file",
				slog.String("path", rel),
				slog.String("error", err.Error()))
			continue
		}

		fi := &FileInfo{
			Path:      rel,
			AbsPath:   abs,
			Size:      info.Size(),
			ModTime:   info.ModTime(),
			Extension: Extension(name),
		}

		select {
		case w.results <- ScanResult{File: fi}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for _, d := range subdirs {
		rel := joinRel(relDir, d.Name())
		if w.exclude != nil && w.exclude.ExcludesDir(rel) {
			w.logger.Debug("pruning excluded directory", slog.String("path", rel))
			continue
		}
		if err := w.dir(ctx, filepath.Join(absDir, d.Name()), rel); err != nil {
			return err
		}
	}
	return nil
}

func joinRel(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

func displayPath(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
