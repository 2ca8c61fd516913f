package gitignore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// File holds the compiled patterns of one .gitignore file.
type File struct {
	Path     string
	Patterns []Pattern // positive, exclude on match
	Negated  []Pattern // "!" lines, re-include on match
	Invalid  []InvalidLine
}

// InvalidLine records a line that could not be compiled.
type InvalidLine struct {
	Line string
	Err  error
}

// Parse splits gitignore content into positive and negated lines.
// Blank lines and lines starting with "#" are dropped; the "!" prefix is
// removed from negated lines.
func Parse(r io.Reader) (positive, negated []string, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "!"); ok {
			if rest = strings.TrimSpace(rest); rest != "" {
				negated = append(negated, rest)
			}
			continue
		}
		positive = append(positive, line)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read patterns: %w", err)
	}
	return positive, negated, nil
}

// Load reads and compiles a .gitignore file. Lines that fail to compile are
// collected in File.Invalid; only an unreadable file is an error.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	positive, negated, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := &File{Path: path}
	out.Patterns = compileLines(positive, &out.Invalid)
	out.Negated = compileLines(negated, &out.Invalid)
	return out, nil
}

// CompileLines translates and compiles raw lines, skipping invalid ones.
func CompileLines(lines []string) ([]Pattern, []InvalidLine) {
	var invalid []InvalidLine
	return compileLines(lines, &invalid), invalid
}

func compileLines(lines []string, invalid *[]InvalidLine) []Pattern {
	patterns := make([]Pattern, 0, len(lines))
	for _, line := range lines {
		p, err := Compile(Translate(line))
		if err != nil {
			*invalid = append(*invalid, InvalidLine{Line: line, Err: err})
			continue
		}
		patterns = append(patterns, p)
	}
	return patterns
}
