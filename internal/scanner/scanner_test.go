package scanner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nameFilter prunes directories whose basename is listed.
type nameFilter map[string]bool

func (f nameFilter) ExcludesDir(relDir string) bool {
	return f[filepath.Base(relDir)]
}

func createTestFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func collect(t *testing.T, s *Scanner, opts *ScanOptions) []string {
	t.Helper()
	results, err := s.Scan(context.Background(), opts)
	require.NoError(t, err)

	var paths []string
	for r := range results {
		require.NoError(t, r.Error)
		paths = append(paths, r.File.Path)
	}
	return paths
}

// =============================================================================
// Ordering
// =============================================================================

func TestScan_FilesBeforeSubdirectoriesInLexicalOrder(t *testing.T) {
	// Given: a tree with files and directories interleaved by name
	dir := t.TempDir()
	createTestFiles(t, dir, map[string]string{
		"b.txt":       "",
		"a.txt":       "",
		"a/z.go":      "",
		"a/b/c.go":    "",
		"a/a.go":      "",
		"c/readme.md": "",
		"Z.txt":       "",
	})

	// When: scanning
	paths := collect(t, New(), &ScanOptions{RootDir: dir})

	// Then: each directory's files come first, sorted, then its subdirectories
	assert.Equal(t, []string{
		"Z.txt", "a.txt", "b.txt",
		"a/a.go", "a/z.go",
		"a/b/c.go",
		"c/readme.md",
	}, paths)
}

func TestScan_Deterministic(t *testing.T) {
	dir := t.TempDir()
	createTestFiles(t, dir, map[string]string{
		"x/1.go": "", "x/2.go": "", "y/3.go": "", "4.go": "", "x/z/5.go": "",
	})

	first := collect(t, New(), &ScanOptions{RootDir: dir})
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, collect(t, New(), &ScanOptions{RootDir: dir}))
	}
}

// =============================================================================
// Pruning
// =============================================================================

func TestScan_PrunesExcludedDirectories(t *testing.T) {
	dir := t.TempDir()
	createTestFiles(t, dir, map[string]string{
		"main.py":                     "",
		"node_modules/x.py":           "",
		"src/node_modules/deep/y.py":  "",
		"src/app.py":                  "",
		"src/node_modules_extra/z.py": "",
	})

	paths := collect(t, New(), &ScanOptions{
		RootDir: dir,
		Exclude: nameFilter{"node_modules": true},
	})

	assert.Equal(t, []string{"main.py", "src/app.py", "src/node_modules_extra/z.py"}, paths)
}

// recordingFilter records every directory it was asked about.
type recordingFilter struct {
	exclude string
	asked   []string
}

func (f *recordingFilter) ExcludesDir(relDir string) bool {
	f.asked = append(f.asked, relDir)
	return filepath.Base(relDir) == f.exclude
}

func TestScan_PrunedDirectoryIsNeverEntered(t *testing.T) {
	dir := t.TempDir()
	createTestFiles(t, dir, map[string]string{
		"vendor/a/b/c.go": "",
		"pkg/d.go":        "",
	})

	f := &recordingFilter{exclude: "vendor"}
	collect(t, New(), &ScanOptions{RootDir: dir, Exclude: f})

	assert.ElementsMatch(t, []string{"pkg", "vendor"}, f.asked)
}

func TestScan_SkipPaths(t *testing.T) {
	dir := t.TempDir()
	createTestFiles(t, dir, map[string]string{"out.txt": "", "keep.txt": ""})

	paths := collect(t, New(), &ScanOptions{
		RootDir:   dir,
		SkipPaths: []string{filepath.Join(dir, "out.txt")},
	})
	assert.Equal(t, []string{"keep.txt"}, paths)
}

// =============================================================================
// Robustness
// =============================================================================

func TestScan_SkipsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	dir := t.TempDir()
	createTestFiles(t, dir, map[string]string{"real/file.go": "package x"})
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "linkdir")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "real", "file.go"), filepath.Join(dir, "link.go")))

	paths := collect(t, New(), &ScanOptions{RootDir: dir})
	assert.Equal(t, []string{"real/file.go"}, paths)
}

func TestScan_UnreadableDirectoryDoesNotAbort(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	dir := t.TempDir()
	createTestFiles(t, dir, map[string]string{"locked/secret.go": "", "open/ok.go": ""})
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	paths := collect(t, New(), &ScanOptions{RootDir: dir})
	assert.Equal(t, []string{"open/ok.go"}, paths)
}

func TestScan_FileInfo(t *testing.T) {
	dir := t.TempDir()
	createTestFiles(t, dir, map[string]string{"pkg/Main.GO": "package main\n"})

	results, err := New().Scan(context.Background(), &ScanOptions{RootDir: dir})
	require.NoError(t, err)

	var files []*FileInfo
	for r := range results {
		files = append(files, r.File)
	}
	require.Len(t, files, 1)
	assert.Equal(t, "pkg/Main.GO", files[0].Path)
	assert.Equal(t, filepath.Join(dir, "pkg", "Main.GO"), files[0].AbsPath)
	assert.Equal(t, int64(13), files[0].Size)
	assert.Equal(t, ".go", files[0].Extension)
}

func TestScan_InvalidRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := New().Scan(context.Background(), &ScanOptions{RootDir: filepath.Join(dir, "missing")})
	assert.Error(t, err)

	_, err = New().Scan(context.Background(), &ScanOptions{RootDir: file})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not a directory"))
}

func TestScan_ContextCancellation(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{}
	for i := 0; i < 500; i++ {
		files[filepath.Join("d", strings.Repeat("x", i%7+1), "f"+string(rune('a'+i%26))+".go")] = ""
	}
	createTestFiles(t, dir, files)

	ctx, cancel := context.WithCancel(context.Background())
	results, err := New().Scan(ctx, &ScanOptions{RootDir: dir})
	require.NoError(t, err)

	cancel()
	// The channel must close after cancellation.
	for range results {
	}
}
