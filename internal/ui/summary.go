package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Summary is the outcome of one run as reported by the CLI.
type Summary struct {
	Success     bool          `json:"success"`
	NothingToDo bool          `json:"nothing_to_do,omitempty"`
	SourceDir   string        `json:"source_dir"`
	Output      string        `json:"output"`
	OutputSize  int64         `json:"output_size"`
	Extensions  []string      `json:"extensions"`
	Processed   int           `json:"processed"`
	Skipped     int           `json:"skipped"`
	Ignored     int           `json:"ignored"`
	Filtered    int           `json:"filtered"`
	Errors      int           `json:"errors"`
	ErrorFiles  []string      `json:"error_files,omitempty"`
	Duration    time.Duration `json:"duration_ns"`
}

// SummaryRenderer prints a Summary.
type SummaryRenderer struct {
	out    io.Writer
	styles Styles
}

// NewSummaryRenderer creates a summary renderer.
func NewSummaryRenderer(out io.Writer, noColor bool) *SummaryRenderer {
	return &SummaryRenderer{
		out:    out,
		styles: GetStyles(noColor),
	}
}

// Render prints the summary for a terminal.
func (r *SummaryRenderer) Render(s Summary) error {
	if s.NothingToDo {
		_, err := fmt.Fprintf(r.out, "%s\n", r.styles.Warning.Render(
			"No files found to process. Check your filters and exclusions."))
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", r.styles.Header.Render("Compiled: "+s.Output))
	fmt.Fprintf(&sb, "  Source:     %s\n", s.SourceDir)
	if len(s.Extensions) > 0 {
		fmt.Fprintf(&sb, "  Extensions: %s\n", strings.Join(s.Extensions, ", "))
	}
	fmt.Fprintf(&sb, "  Processed:  %s\n", r.styles.Success.Render(fmt.Sprintf("%d", s.Processed)))
	fmt.Fprintf(&sb, "  Skipped:    %d (%d ignored, %d other extensions)\n", s.Skipped, s.Ignored, s.Filtered)
	if s.Errors > 0 {
		fmt.Fprintf(&sb, "  Errors:     %s\n", r.styles.Error.Render(fmt.Sprintf("%d", s.Errors)))
		for _, f := range s.ErrorFiles {
			fmt.Fprintf(&sb, "    - %s\n", f)
		}
	}
	fmt.Fprintf(&sb, "  Size:       %s\n", FormatBytes(s.OutputSize))
	fmt.Fprintf(&sb, "  Duration:   %s\n", formatDuration(s.Duration))

	_, err := io.WriteString(r.out, sb.String())
	return err
}

// RenderJSON outputs the summary as indented JSON.
func (r *SummaryRenderer) RenderJSON(s Summary) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s)
}

// FormatBytes formats bytes to human-readable format.
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
