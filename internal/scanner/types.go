// Package scanner walks a source tree in a deterministic order, pruning
// excluded directories before descending, and discovers the file extensions
// present in it.
package scanner

import "time"

// FileInfo describes one regular file found under the scan root.
type FileInfo struct {
	Path      string    // Relative to the scan root, slash-separated
	AbsPath   string    // Absolute path
	Size      int64     // Size in bytes
	ModTime   time.Time // Last modification time
	Extension string    // Lower-cased extension including the dot, or ""
}

// DirFilter decides which directories are pruned. relDir is slash-separated
// and relative to the scan root.
type DirFilter interface {
	ExcludesDir(relDir string) bool
}

// ScanOptions configures one traversal.
type ScanOptions struct {
	// RootDir is the directory to scan. Empty means the working directory.
	RootDir string

	// Exclude prunes directories. Nil prunes nothing.
	Exclude DirFilter

	// SkipPaths are absolute file paths never reported, such as the output
	// document when it lives inside the tree.
	SkipPaths []string
}

// ScanResult is sent on the channel returned by Scan.
type ScanResult struct {
	File  *FileInfo
	Error error
}
