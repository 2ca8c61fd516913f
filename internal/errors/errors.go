package errors

import (
	"errors"
	"fmt"
)

// UnifyError is the structured error type for codeunify. The CLI prints it
// with FormatForCLI and the logger records it with FormatForLog.
type UnifyError struct {
	// Code is the unique error code (e.g., "ERR_205_OUTPUT_LOCKED").
	Code string

	// Message is the human-readable error message.
	Message string

	Category Category
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable hint for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *UnifyError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *UnifyError) Unwrap() error {
	return e.Cause
}

// Is matches by code so errors.Is(err, New(code, "", nil)) works.
func (e *UnifyError) Is(target error) bool {
	if t, ok := target.(*UnifyError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
func (e *UnifyError) WithDetail(key, value string) *UnifyError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *UnifyError) WithSuggestion(suggestion string) *UnifyError {
	e.Suggestion = suggestion
	return e
}

// New creates a UnifyError. Category and severity are derived from the code.
func New(code string, message string, cause error) *UnifyError {
	return &UnifyError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a UnifyError whose message is err's message.
func Wrap(code string, err error) *UnifyError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *UnifyError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOError creates a source-side I/O error.
func IOError(message string, cause error) *UnifyError {
	return New(ErrCodeFileUnreadable, message, cause)
}

// OutputError creates a fatal error about the output document.
func OutputError(message string, cause error) *UnifyError {
	return New(ErrCodeOutputWrite, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *UnifyError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *UnifyError {
	return New(ErrCodeInternal, message, cause)
}

// As returns the first UnifyError in err's chain.
func As(err error) (*UnifyError, bool) {
	var ue *UnifyError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// IsFatal checks if an error has fatal severity.
func IsFatal(err error) bool {
	ue, ok := As(err)
	return ok && ue.Severity == SeverityFatal
}

// GetCode extracts the error code, or "" if err carries none.
func GetCode(err error) string {
	if ue, ok := As(err); ok {
		return ue.Code
	}
	return ""
}

// GetCategory extracts the category, or "" if err carries none.
func GetCategory(err error) Category {
	if ue, ok := As(err); ok {
		return ue.Category
	}
	return ""
}
