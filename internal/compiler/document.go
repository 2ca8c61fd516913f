package compiler

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	ruleWidth       = 80
	timestampLayout = "2006-01-02 15:04:05"
)

var (
	heavyRule = strings.Repeat("=", ruleWidth)
	lightRule = strings.Repeat("-", ruleWidth)
)

// header holds the values of the document preamble.
type header struct {
	Generated  time.Time
	SourceDir  string
	Extensions []string
}

func writeHeader(w io.Writer, h header) error {
	var sb strings.Builder
	sb.WriteString(heavyRule + "\n")
	sb.WriteString("Project Code Compilation\n")
	fmt.Fprintf(&sb, "Generated on: %s\n", h.Generated.Format(timestampLayout))
	fmt.Fprintf(&sb, "Source Directory: %s\n", h.SourceDir)
	if len(h.Extensions) > 0 {
		fmt.Fprintf(&sb, "File Extensions: %s\n", strings.Join(h.Extensions, ", "))
	}
	sb.WriteString(heavyRule + "\n\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// writeFileHeader writes the delimiter that precedes one file's content.
func writeFileHeader(w io.Writer, relPath string) error {
	_, err := fmt.Fprintf(w, "\n%s\nFile: %s\n%s\n\n", heavyRule, relPath, lightRule)
	return err
}

// placeholder is written instead of the content of an unreadable file.
func placeholder(relPath string, err error) string {
	if errors.Is(err, errEncoding) {
		return fmt.Sprintf("Unable to read file: %s (encoding issue)\n", relPath)
	}
	return fmt.Sprintf("Error reading file: %s (%s)\n", relPath, err)
}

// summary holds the footer counters.
type summary struct {
	Processed int
	Skipped   int
	Errored   int
}

func writeFooter(w io.Writer, s summary) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n\n%s\n", heavyRule)
	sb.WriteString("Summary:\n")
	fmt.Fprintf(&sb, "Files processed: %d\n", s.Processed)
	fmt.Fprintf(&sb, "Files skipped: %d\n", s.Skipped)
	if s.Errored > 0 {
		fmt.Fprintf(&sb, "Files with errors: %d\n", s.Errored)
	}
	sb.WriteString(heavyRule + "\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
