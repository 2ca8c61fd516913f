// Package errors provides structured errors for codeunify.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (source tree, output document)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates settings or ignore-file errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryValidation indicates invalid user input.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal aborts the run without a document.
	SeverityFatal Severity = "FATAL"
	// SeverityError fails the operation.
	SeverityError Severity = "ERROR"
	// SeverityWarning is reported and the run continues.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound    = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid     = "ERR_102_CONFIG_INVALID"
	ErrCodeConfigExists      = "ERR_103_CONFIG_EXISTS"
	ErrCodeIgnoreFileInvalid = "ERR_104_IGNORE_FILE_INVALID"

	// IO errors (200-299)
	ErrCodeFileNotFound   = "ERR_201_FILE_NOT_FOUND"
	ErrCodeFilePermission = "ERR_202_FILE_PERMISSION"
	ErrCodeDiskFull       = "ERR_203_DISK_FULL"
	ErrCodeOutputWrite    = "ERR_204_OUTPUT_WRITE"
	ErrCodeOutputLocked   = "ERR_205_OUTPUT_LOCKED"
	ErrCodeFileUnreadable = "ERR_206_FILE_UNREADABLE"
	ErrCodePreflight      = "ERR_207_PREFLIGHT_FAILED"

	// Validation errors (400-499)
	ErrCodeInvalidInput     = "ERR_401_INVALID_INPUT"
	ErrCodeInvalidDirectory = "ERR_402_INVALID_DIRECTORY"
	ErrCodeInvalidPattern   = "ERR_403_INVALID_PATTERN"
	ErrCodeNothingToDo      = "ERR_404_NOTHING_TO_COMPILE"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
	ErrCodeCanceled = "ERR_502_CANCELED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// "101" from "ERR_101_CONFIG_NOT_FOUND"
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeDiskFull, ErrCodeOutputWrite, ErrCodeOutputLocked:
		return SeverityFatal
	case ErrCodeInvalidPattern, ErrCodeFileUnreadable, ErrCodeNothingToDo:
		return SeverityWarning
	default:
		return SeverityError
	}
}
