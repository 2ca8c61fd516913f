package gitignore

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Separator is the path separator used when matching translated patterns.
const Separator = '/'

// Pattern is a compiled, immutable glob produced by Translate.
type Pattern struct {
	source string
	full   glob.Glob
	// zero holds the remainder of a leading "**/" so the pattern also
	// matches at depth zero ("**/foo" matches "foo").
	zero glob.Glob
}

// Compile compiles a translated glob. Braces and backslashes are literal.
func Compile(translated string) (Pattern, error) {
	full, err := glob.Compile(QuoteMeta(translated), Separator)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid pattern %q: %w", translated, err)
	}

	p := Pattern{source: translated, full: full}
	if rest, ok := strings.CutPrefix(translated, "**/"); ok && rest != "" {
		zero, err := glob.Compile(QuoteMeta(rest), Separator)
		if err != nil {
			return Pattern{}, fmt.Errorf("invalid pattern %q: %w", translated, err)
		}
		p.zero = zero
	}
	return p, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package-level tables.
func MustCompile(translated string) Pattern {
	p, err := Compile(translated)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether the slash-separated relative path matches.
func (p Pattern) Match(relPath string) bool {
	if p.full == nil {
		return false
	}
	if p.full.Match(relPath) {
		return true
	}
	return p.zero != nil && p.zero.Match(relPath)
}

// String returns the translated glob the pattern was compiled from.
func (p Pattern) String() string {
	return p.source
}

// QuoteMeta escapes the characters the glob engine treats specially but
// fnmatch-style patterns treat literally.
func QuoteMeta(pattern string) string {
	if !strings.ContainsAny(pattern, `\{}`) {
		return pattern
	}
	var sb strings.Builder
	sb.Grow(len(pattern) + 4)
	for _, r := range pattern {
		switch r {
		case '\\', '{', '}':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
