package errors

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForCLI(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil",
			err:  nil,
			want: "",
		},
		{
			name: "with suggestion",
			err: New(ErrCodeOutputLocked, "output is being written by another process", nil).
				WithSuggestion("Wait for the other run to finish"),
			want: "Error: output is being written by another process\n" +
				"  Hint: Wait for the other run to finish\n" +
				"  Code: ERR_205_OUTPUT_LOCKED\n",
		},
		{
			name: "without suggestion",
			err:  New(ErrCodeInvalidDirectory, "invalid directory: /nope", nil),
			want: "Error: invalid directory: /nope\n  Code: ERR_402_INVALID_DIRECTORY\n",
		},
		{
			name: "standard error",
			err:  errors.New("something went wrong"),
			want: "Error: something went wrong\n  Code: ERR_501_INTERNAL\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatForCLI(tt.err))
		})
	}
}

func TestFormatJSON_BasicError(t *testing.T) {
	// Given: a UnifyError with details
	err := New(ErrCodeFileNotFound, "file not found", errors.New("underlying")).
		WithDetail("path", "/foo/bar.txt").
		WithSuggestion("Check the file path")

	// When: formatting as JSON
	data, jsonErr := FormatJSON(err)

	// Then: all fields are present
	require.NoError(t, jsonErr)

	var result map[string]any
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Equal(t, ErrCodeFileNotFound, result["code"])
	assert.Equal(t, "file not found", result["message"])
	assert.Equal(t, string(CategoryIO), result["category"])
	assert.Equal(t, string(SeverityError), result["severity"])
	assert.Equal(t, "Check the file path", result["suggestion"])
	assert.Equal(t, "underlying", result["cause"])

	details, ok := result["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/foo/bar.txt", details["path"])
}

func TestFormatJSON_StandardAndNil(t *testing.T) {
	data, err := FormatJSON(errors.New("generic error"))
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, ErrCodeInternal, result["code"])

	data, err = FormatJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", strings.TrimSpace(string(data)))
}

func TestFormatForLog(t *testing.T) {
	assert.Nil(t, FormatForLog(nil))
	assert.Equal(t, []any{"error", "plain"}, FormatForLog(errors.New("plain")))

	err := New(ErrCodeInvalidPattern, "bad pattern", errors.New("unexpected end")).
		WithDetail("pattern", "[abc").
		WithSuggestion("Escape the bracket")

	attrs := FormatForLog(err)

	require.Len(t, attrs, 14)
	kv := make(map[string]any)
	for i := 0; i < len(attrs); i += 2 {
		kv[attrs[i].(string)] = attrs[i+1]
	}
	assert.Equal(t, ErrCodeInvalidPattern, kv["error_code"])
	assert.Equal(t, "WARNING", kv["severity"])
	assert.Equal(t, "unexpected end", kv["cause"])
	assert.Equal(t, "Escape the bracket", kv["suggestion"])
	assert.Equal(t, "[abc", kv["detail_pattern"])
}
