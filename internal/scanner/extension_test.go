package scanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "main.go", want: ".go"},
		{name: "README.MD", want: ".md"},
		{name: "archive.tar.gz", want: ".gz"},
		{name: "Makefile", want: ""},
		{name: ".gitignore", want: ""},
		{name: "..hidden", want: ""},
		{name: ".env.local", want: ".local"},
		{name: "trailing.", want: "."},
		{name: "dir.d/file", want: ""},
		{name: "src/app.Test.TSX", want: ".tsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.name))
		})
	}
}

func TestNormalizeExtensions(t *testing.T) {
	set := NormalizeExtensions([]string{"py", ".MD", "..txt", " Go ", "", "."})
	assert.Equal(t, []string{".go", ".md", ".py", ".txt"}, set.Sorted())

	assert.Nil(t, NormalizeExtensions(nil))
	assert.Nil(t, NormalizeExtensions([]string{"", "."}))
}

func TestExtensionSet(t *testing.T) {
	set := NormalizeExtensions([]string{"py", "md"})

	assert.True(t, set.Contains(".py"))
	assert.False(t, set.Contains(".go"))
	assert.False(t, set.Contains(""))
	assert.Equal(t, ".md, .py", set.String())

	set.Add("")
	set.Add(".go")
	assert.Equal(t, ".go, .md, .py", set.String())
}

func TestDiscover(t *testing.T) {
	// Given: a tree with .py and .md files, an extensionless file and a
	// pruned directory holding another extension
	dir := t.TempDir()
	createTestFiles(t, dir, map[string]string{
		"app.py":              "",
		"docs/guide.MD":       "",
		"LICENSE":             "",
		"node_modules/lib.js": "",
		"src/pkg/__init__.py": "",
	})

	// When: discovering extensions over the pruned tree
	set, err := Discover(context.Background(), New(), &ScanOptions{
		RootDir: dir,
		Exclude: nameFilter{"node_modules": true},
	})

	// Then: exactly the present, lower-cased extensions are found
	require.NoError(t, err)
	assert.Equal(t, []string{".md", ".py"}, set.Sorted())
}

func TestDiscover_Cancelled(t *testing.T) {
	dir := t.TempDir()
	createTestFiles(t, dir, map[string]string{"a.go": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Discover(ctx, New(), &ScanOptions{RootDir: dir})
	assert.ErrorIs(t, err, context.Canceled)
}
