package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatForCLI formats an error for terminal output:
//
//	Error: <message>
//	  Hint: <suggestion>
//	  Code: <code>
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	ue, ok := As(err)
	if !ok {
		ue = Wrap(ErrCodeInternal, err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Error: %s\n", ue.Message)
	if ue.Suggestion != "" {
		fmt.Fprintf(&sb, "  Hint: %s\n", ue.Suggestion)
	}
	fmt.Fprintf(&sb, "  Code: %s\n", ue.Code)

	return sb.String()
}

type jsonError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Category   string            `json:"category"`
	Severity   string            `json:"severity"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	Cause      string            `json:"cause,omitempty"`
}

// FormatJSON returns a JSON representation of the error.
func FormatJSON(err error) ([]byte, error) {
	if err == nil {
		return json.Marshal(nil)
	}

	ue, ok := As(err)
	if !ok {
		ue = Wrap(ErrCodeInternal, err)
	}

	je := jsonError{
		Code:       ue.Code,
		Message:    ue.Message,
		Category:   string(ue.Category),
		Severity:   string(ue.Severity),
		Details:    ue.Details,
		Suggestion: ue.Suggestion,
	}
	if ue.Cause != nil {
		je.Cause = ue.Cause.Error()
	}

	return json.Marshal(je)
}

// FormatForLog returns slog attributes as alternating key-value pairs.
func FormatForLog(err error) []any {
	if err == nil {
		return nil
	}

	ue, ok := As(err)
	if !ok {
		return []any{"error", err.Error()}
	}

	attrs := []any{
		"error_code", ue.Code,
		"message", ue.Message,
		"category", string(ue.Category),
		"severity", string(ue.Severity),
	}
	if ue.Cause != nil {
		attrs = append(attrs, "cause", ue.Cause.Error())
	}
	if ue.Suggestion != "" {
		attrs = append(attrs, "suggestion", ue.Suggestion)
	}
	for k, v := range ue.Details {
		attrs = append(attrs, "detail_"+k, v)
	}
	return attrs
}
