package scanner

import (
	"context"
	"path"
	"sort"
	"strings"
)

// Extension returns the lower-cased extension of a file name including the
// dot. Leading dots do not start an extension: ".gitignore" has none,
// "archive.tar.gz" has ".gz".
func Extension(name string) string {
	base := path.Base(name)
	trimmed := strings.TrimLeft(base, ".")
	i := strings.LastIndexByte(trimmed, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(trimmed[i:])
}

// ExtensionSet is a set of normalized extensions (".py", ".md").
type ExtensionSet map[string]struct{}

// NormalizeExtensions lower-cases each entry and enforces one leading dot.
// Blank entries are dropped. The result is nil when nothing remains, which
// callers treat as "discover".
func NormalizeExtensions(exts []string) ExtensionSet {
	var set ExtensionSet
	for _, e := range exts {
		e = strings.TrimLeft(strings.ToLower(strings.TrimSpace(e)), ".")
		if e == "" {
			continue
		}
		if set == nil {
			set = make(ExtensionSet)
		}
		set["."+e] = struct{}{}
	}
	return set
}

// Contains reports whether ext (already lower-cased) is in the set.
func (s ExtensionSet) Contains(ext string) bool {
	if ext == "" {
		return false
	}
	_, ok := s[ext]
	return ok
}

// Add inserts ext if it is non-empty.
func (s ExtensionSet) Add(ext string) {
	if ext != "" {
		s[ext] = struct{}{}
	}
}

// Sorted returns the extensions in lexicographic order.
func (s ExtensionSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// String renders the sorted extensions joined by ", ".
func (s ExtensionSet) String() string {
	return strings.Join(s.Sorted(), ", ")
}

// Discover walks the pruned tree and collects the extension of every file.
// Files without an extension contribute nothing.
func Discover(ctx context.Context, sc *Scanner, opts *ScanOptions) (ExtensionSet, error) {
	results, err := sc.Scan(ctx, opts)
	if err != nil {
		return nil, err
	}

	set := make(ExtensionSet)
	var walkErr error
	for r := range results {
		if r.Error != nil {
			walkErr = r.Error
			continue
		}
		set.Add(r.File.Extension)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if walkErr != nil {
		return nil, walkErr
	}
	return set, nil
}
