// Package output prints the CLI's status lines for commands that do not
// compile: settings management and the exclusion listing.
package output

import (
	"fmt"
	"io"

	"github.com/Aman-CERP/codeunify/internal/ui"
)

// Writer provides formatted output for CLI.
type Writer struct {
	out    io.Writer
	styles ui.Styles
}

// Option configures a Writer.
type Option func(*Writer)

// WithColor enables lipgloss styling of the icons.
func WithColor(enabled bool) Option {
	return func(w *Writer) {
		w.styles = ui.GetStyles(!enabled)
	}
}

// New creates a Writer without color.
func New(out io.Writer, opts ...Option) *Writer {
	w := &Writer{
		out:    out,
		styles: ui.NoColorStyles(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Status prints a message after an icon, or indented when icon is empty.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success message with a checkmark.
func (w *Writer) Success(msg string) {
	w.Status(w.styles.Success.Render("✓"), msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status(w.styles.Warning.Render("!"), msg)
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status(w.styles.Error.Render("✗"), msg)
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// List prints a title line followed by one "  - item" line per item.
func (w *Writer) List(title string, items []string) {
	_, _ = fmt.Fprintf(w.out, "%s\n", title)
	for _, item := range items {
		_, _ = fmt.Fprintf(w.out, "  - %s\n", item)
	}
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}
