package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupFile_MissingFile(t *testing.T) {
	path, err := BackupFile(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestBackupFile_CopiesContent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, ".codeunify.yaml")
	writeFile(t, src, "output: a.txt\n")

	backup, err := BackupFile(src)
	require.NoError(t, err)

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "output: a.txt\n", string(data))
}

func TestBackupFile_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, ".codeunify.yaml")
	writeFile(t, src, "output: a.txt\n")

	var created []string
	for i := 0; i < MaxBackups+2; i++ {
		b, err := BackupFile(src)
		require.NoError(t, err)
		created = append(created, b)
		time.Sleep(5 * time.Millisecond)
	}

	backups, err := ListBackups(src)
	require.NoError(t, err)
	require.Len(t, backups, MaxBackups)
	assert.Equal(t, created[len(created)-1], backups[0])
}
