package compiler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockSuffix names the advisory lock next to the output document.
const lockSuffix = ".lock"

func lockPath(output string) string {
	return output + lockSuffix
}

// outputLock keeps two runs from writing the same document at once.
type outputLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

func newOutputLock(output string) *outputLock {
	p := lockPath(output)
	return &outputLock{path: p, flock: flock.New(p)}
}

// TryLock acquires the lock without blocking. It returns false if another
// holder has it.
func (l *outputLock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create lock directory: %w", err)
	}

	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	l.locked = acquired
	return acquired, nil
}

// Unlock releases the lock and removes the lock file. Safe to call when
// not locked.
func (l *outputLock) Unlock() error {
	if !l.locked {
		return nil
	}
	l.locked = false

	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	_ = os.Remove(l.path)
	return nil
}
