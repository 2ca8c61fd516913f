package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolate points the user settings at an empty directory and clears the
// environment overrides.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, v := range []string{
		"CODEUNIFY_OUTPUT", "CODEUNIFY_IGNORE_FILE", "CODEUNIFY_GITIGNORE",
		"CODEUNIFY_EXTENSIONS", "CODEUNIFY_EXCLUDE_DIRS", "CODEUNIFY_LOG_LEVEL",
		"CODEUNIFY_WORKERS", "CI",
	} {
		t.Setenv(v, "")
		require.NoError(t, os.Unsetenv(v))
	}
}

// writeTree creates files (slash-separated paths) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// exampleTree is a tree with one ignored file, one file in an excluded
// directory and one file with another extension.
func exampleTree(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		".codeignore":           "a.py\n",
		"a.py":                  "print('a')\n",
		"src/b.py":              "print('b')\n",
		"src/node_modules/c.py": "print('c')\n",
		"README.md":             "# readme\n",
	})
	return src
}
