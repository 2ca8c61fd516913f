package logging

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default log directory (~/.codeunify/logs/).
// Falls back to the temp directory if the home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".codeunify", "logs")
	}
	return filepath.Join(home, ".codeunify", "logs")
}

// DefaultLogPath returns the path used when --log-file is given without
// a value.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "codeunify.log")
}

// ResolveLogPath expands a leading "~/" and makes path absolute.
func ResolveLogPath(path string) (string, error) {
	if path == "" {
		return DefaultLogPath(), nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(path)
}
