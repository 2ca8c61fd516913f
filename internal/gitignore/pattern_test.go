package gitignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPattern_Match(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		path  string
		match bool
	}{
		// Unanchored names match at any depth, including the root.
		{name: "name at root", line: "foo", path: "foo", match: true},
		{name: "name nested", line: "foo", path: "a/b/foo", match: true},
		{name: "name is not a substring match", line: "foo", path: "a/foobar", match: false},

		// Star stays within one segment.
		{name: "star at root", line: "*.log", path: "debug.log", match: true},
		{name: "star nested", line: "*.log", path: "var/debug.log", match: true},
		{name: "anchored star does not cross slash", line: "/src/*.go", path: "src/pkg/main.go", match: false},
		{name: "anchored star same segment", line: "/src/*.go", path: "src/main.go", match: true},

		// Directory patterns cover everything beneath.
		{name: "dir pattern file below", line: "build/", path: "build/out/app", match: true},
		{name: "dir pattern nested dir", line: "build/", path: "x/build/app", match: true},
		{name: "dir pattern does not match sibling", line: "build/", path: "builder/app", match: false},

		// Anchoring.
		{name: "anchored at root", line: "/vendor", path: "vendor", match: true},
		{name: "anchored not nested", line: "/vendor", path: "lib/vendor", match: false},

		// Double star spans zero or more segments.
		{name: "double star zero segments", line: "**/tmp", path: "tmp", match: true},
		{name: "double star many segments", line: "**/tmp", path: "a/b/tmp", match: true},
		{name: "inner double star zero", line: "a/**/b", path: "a/b", match: true},
		{name: "inner double star many", line: "a/**/b", path: "a/x/y/b", match: true},
		{name: "inner double star wrong root", line: "a/**/b", path: "c/x/b", match: false},

		// Brackets and question marks.
		{name: "character class", line: "file[0-9].txt", path: "docs/file7.txt", match: true},
		{name: "negated class", line: "file[!0-9].txt", path: "file7.txt", match: false},
		{name: "question mark", line: "?.c", path: "src/a.c", match: true},
		{name: "question mark not slash", line: "/a?b", path: "a/b", match: false},

		// Braces are literal, as in fnmatch.
		{name: "literal braces", line: "{a,b}.txt", path: "{a,b}.txt", match: true},
		{name: "braces do not alternate", line: "{a,b}.txt", path: "a.txt", match: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(Translate(tt.line))
			require.NoError(t, err)
			assert.Equal(t, tt.match, p.Match(tt.path), "pattern %q vs %q", p.String(), tt.path)
		})
	}
}

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile("**/[abc")
	assert.Error(t, err)
}

func TestPattern_ZeroValueMatchesNothing(t *testing.T) {
	var p Pattern
	assert.False(t, p.Match("anything"))
}

func TestQuoteMeta(t *testing.T) {
	assert.Equal(t, "plain/*.go", QuoteMeta("plain/*.go"))
	assert.Equal(t, `\{a,b\}`, QuoteMeta("{a,b}"))
	assert.Equal(t, `a\\b`, QuoteMeta(`a\b`))
}
