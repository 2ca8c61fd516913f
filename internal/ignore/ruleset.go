// Package ignore decides whether a path relative to the scan root is
// excluded from a compilation.
//
// Three rule categories are evaluated in order: custom ignore-file patterns
// (fnmatch-style, "*" crosses "/"), directory-name exclusions tested against
// every path segment, and .gitignore patterns. Only the last category honours
// negation.
package ignore

import (
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Aman-CERP/codeunify/internal/gitignore"
)

// segmentCacheSize bounds the memo of per-segment exclusion decisions.
const segmentCacheSize = 4096

// Verdict is the outcome of matching one path against a RuleSet.
type Verdict int

const (
	// Included means no rule excluded the path.
	Included Verdict = iota
	// IgnoredByCustom means a custom ignore-file pattern matched.
	IgnoredByCustom
	// IgnoredByDirName means a path segment matched an excluded directory name.
	IgnoredByDirName
	// IgnoredByGitignore means a .gitignore pattern matched and no negation did.
	IgnoredByGitignore
	// Reincluded means a .gitignore pattern matched but a negated one overrode it.
	Reincluded
)

// Ignored reports whether the verdict excludes the path.
func (v Verdict) Ignored() bool {
	switch v {
	case IgnoredByCustom, IgnoredByDirName, IgnoredByGitignore:
		return true
	default:
		return false
	}
}

// String returns a short reason used in logs.
func (v Verdict) String() string {
	switch v {
	case Included:
		return "included"
	case IgnoredByCustom:
		return "custom-pattern"
	case IgnoredByDirName:
		return "excluded-dir"
	case IgnoredByGitignore:
		return "gitignore"
	case Reincluded:
		return "gitignore-negated"
	default:
		return "unknown"
	}
}

// namePattern is an fnmatch-style glob compiled without separators.
type namePattern struct {
	raw  string
	g    glob.Glob
	path bool // contains "/", matched against a relative directory path
}

// RuleSet is built once per run and is read-only afterwards. It is safe for
// concurrent use.
type RuleSet struct {
	custom   []namePattern
	dirNames []namePattern
	patterns []gitignore.Pattern
	negated  []gitignore.Pattern

	// segments memoizes dirNames decisions per basename.
	segments *lru.Cache[string, bool]
}

// Rules holds raw rule lines for NewRuleSet.
type Rules struct {
	// Custom are fnmatch-style patterns from the custom ignore file.
	Custom []string
	// ExcludeDirs are directory basenames or globs ("node_modules", "*.egg-info").
	// Entries containing "/" match a relative directory path instead.
	ExcludeDirs []string
	// Gitignore and GitignoreNegated are untranslated .gitignore lines; the
	// negated ones have their "!" already removed.
	Gitignore        []string
	GitignoreNegated []string
}

// NewRuleSet compiles raw rules. Any line that fails to compile is reported
// in the returned error together with the other failures; the RuleSet is
// still usable and simply lacks those lines.
func NewRuleSet(rules Rules) (*RuleSet, error) {
	cache, err := lru.New[string, bool](segmentCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create segment cache: %w", err)
	}

	rs := &RuleSet{segments: cache}
	var bad []string

	for _, raw := range rules.Custom {
		np, err := compileName(raw)
		if err != nil {
			bad = append(bad, raw)
			continue
		}
		rs.custom = append(rs.custom, np)
	}
	for _, raw := range rules.ExcludeDirs {
		np, err := compileName(raw)
		if err != nil {
			bad = append(bad, raw)
			continue
		}
		rs.dirNames = append(rs.dirNames, np)
	}

	var invalid []gitignore.InvalidLine
	rs.patterns, invalid = gitignore.CompileLines(rules.Gitignore)
	for _, l := range invalid {
		bad = append(bad, l.Line)
	}
	rs.negated, invalid = gitignore.CompileLines(rules.GitignoreNegated)
	for _, l := range invalid {
		bad = append(bad, "!"+l.Line)
	}

	if len(bad) > 0 {
		return rs, &InvalidPatternsError{Patterns: bad}
	}
	return rs, nil
}

// InvalidPatternsError lists rule lines that could not be compiled.
type InvalidPatternsError struct {
	Patterns []string
}

func (e *InvalidPatternsError) Error() string {
	return fmt.Sprintf("invalid patterns skipped: %s", strings.Join(e.Patterns, ", "))
}

func compileName(raw string) (namePattern, error) {
	g, err := glob.Compile(gitignore.QuoteMeta(raw))
	if err != nil {
		return namePattern{}, err
	}
	return namePattern{raw: raw, g: g, path: strings.Contains(raw, "/")}, nil
}

// IsIgnored reports whether relPath is excluded by rs.
func IsIgnored(relPath string, rs *RuleSet) bool {
	return rs.Match(relPath).Ignored()
}

// Match evaluates relPath, a slash-separated path relative to the scan root.
func (rs *RuleSet) Match(relPath string) Verdict {
	if rs == nil {
		return Included
	}

	for _, p := range rs.custom {
		if p.g.Match(relPath) {
			return IgnoredByCustom
		}
	}

	if rs.excludedBySegment(relPath) {
		return IgnoredByDirName
	}

	matched := false
	for _, p := range rs.patterns {
		if p.Match(relPath) {
			matched = true
			break
		}
	}
	if !matched {
		return Included
	}
	for _, p := range rs.negated {
		if p.Match(relPath) {
			return Reincluded
		}
	}
	return IgnoredByGitignore
}

// ExcludesDir reports whether the directory at relDir must be pruned.
func (rs *RuleSet) ExcludesDir(relDir string) bool {
	if rs == nil || relDir == "" || relDir == "." {
		return false
	}
	if rs.segmentExcluded(path.Base(relDir)) {
		return true
	}
	return rs.pathExcluded(relDir)
}

func (rs *RuleSet) excludedBySegment(relPath string) bool {
	rest := relPath
	for {
		seg, tail, more := strings.Cut(rest, "/")
		if rs.segmentExcluded(seg) {
			return true
		}
		if !more {
			break
		}
		rest = tail
	}

	// Path-shaped exclusions apply to every ancestor directory.
	for i := 0; i < len(relPath); i++ {
		if relPath[i] == '/' && rs.pathExcluded(relPath[:i]) {
			return true
		}
	}
	return false
}

func (rs *RuleSet) segmentExcluded(seg string) bool {
	if seg == "" {
		return false
	}
	if v, ok := rs.segments.Get(seg); ok {
		return v
	}
	excluded := false
	for _, p := range rs.dirNames {
		if !p.path && p.g.Match(seg) {
			excluded = true
			break
		}
	}
	rs.segments.Add(seg, excluded)
	return excluded
}

func (rs *RuleSet) pathExcluded(relDir string) bool {
	for _, p := range rs.dirNames {
		if p.path && p.g.Match(relDir) {
			return true
		}
	}
	return false
}

// ExcludeDirNames returns the directory exclusions in evaluation order.
func (rs *RuleSet) ExcludeDirNames() []string {
	out := make([]string, len(rs.dirNames))
	for i, p := range rs.dirNames {
		out[i] = p.raw
	}
	return out
}

// Stats summarizes how many rules of each category are active.
type Stats struct {
	Custom           int
	ExcludeDirs      int
	Gitignore        int
	GitignoreNegated int
}

// Stats returns rule counts per category.
func (rs *RuleSet) Stats() Stats {
	return Stats{
		Custom:           len(rs.custom),
		ExcludeDirs:      len(rs.dirNames),
		Gitignore:        len(rs.patterns),
		GitignoreNegated: len(rs.negated),
	}
}
