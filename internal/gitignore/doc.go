// Package gitignore translates gitignore-style lines into glob patterns and
// matches them against slash-separated paths relative to a scan root.
//
// Translation rules, applied in order:
//   - a trailing "/" gets "**" appended, so a directory pattern covers
//     everything beneath it
//   - every "**/" collapses to "**"
//   - an unanchored pattern gets a "**/" prefix; an anchored one ("/build")
//     loses its leading slash
//
// In a compiled Pattern "*" stays within one path segment and "**" spans
// zero or more segments.
//
// Usage:
//
//	f, err := gitignore.Load("/path/to/project/.gitignore")
//	if err != nil {
//	    // unreadable file, no patterns
//	}
//	for _, p := range f.Patterns {
//	    if p.Match("build/out.o") {
//	        // candidate for ignoring, unless a negated pattern matches
//	    }
//	}
package gitignore
