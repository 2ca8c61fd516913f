package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// MaxBackups is the number of settings backups kept per file.
	MaxBackups = 3

	// BackupSuffix separates the file name from the backup timestamp.
	BackupSuffix = ".bak"
)

// BackupFile copies path to path.bak.<timestamp> and prunes older backups
// beyond MaxBackups. A missing file is not an error and yields "".
func BackupFile(path string) (string, error) {
	if !fileExists(path) {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read config for backup: %w", err)
	}

	stamp := time.Now().Format("20060102-150405.000")
	backupPath := fmt.Sprintf("%s%s.%s", path, BackupSuffix, stamp)
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	// Best effort: a failed cleanup leaves extra backups behind.
	_ = pruneBackups(path)

	return backupPath, nil
}

// ListBackups returns the backups of path, newest first.
func ListBackups(path string) ([]string, error) {
	dir := filepath.Dir(path)
	prefix := filepath.Base(path) + BackupSuffix + "."

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list config directory: %w", err)
	}

	var backups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			backups = append(backups, e.Name())
		}
	}

	// Timestamps sort lexically; reverse for newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	for i, name := range backups {
		backups[i] = filepath.Join(dir, name)
	}
	return backups, nil
}

func pruneBackups(path string) error {
	backups, err := ListBackups(path)
	if err != nil {
		return err
	}
	if len(backups) <= MaxBackups {
		return nil
	}
	for _, b := range backups[MaxBackups:] {
		_ = os.Remove(b)
	}
	return nil
}
