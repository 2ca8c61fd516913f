package profiling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func busyWork() int {
	sum := 0
	for i := 0; i < 1_000_000; i++ {
		sum += i % 7
	}
	return sum
}

func TestOptions_Enabled(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want bool
	}{
		{"none", Options{}, false},
		{"cpu", Options{CPU: "c"}, true},
		{"heap", Options{Heap: "h"}, true},
		{"trace", Options{Trace: "t"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.Enabled())
		})
	}
}

func TestSession_WritesAllProfiles(t *testing.T) {
	// Given: every profile requested
	dir := t.TempDir()
	opts := Options{
		CPU:   filepath.Join(dir, "cpu.prof"),
		Heap:  filepath.Join(dir, "heap.prof"),
		Trace: filepath.Join(dir, "trace.out"),
	}

	// When: running some work inside a session
	s, err := Start(opts)
	require.NoError(t, err)
	_ = busyWork()
	require.NoError(t, s.Stop())

	// Then: every file has content
	for _, p := range []string{opts.CPU, opts.Heap, opts.Trace} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Greater(t, info.Size(), int64(0), p)
	}
}

func TestSession_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s, err := Start(Options{CPU: filepath.Join(dir, "cpu.prof"), Heap: filepath.Join(dir, "heap.prof")})
	require.NoError(t, err)

	require.NoError(t, s.Stop())
	assert.NoError(t, s.Stop())

	var nilSession *Session
	assert.NoError(t, nilSession.Stop())
}

func TestStart_BadPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing", "cpu.prof")

	s, err := Start(Options{CPU: missing})

	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestStart_BadTraceStopsCPU(t *testing.T) {
	dir := t.TempDir()

	_, err := Start(Options{
		CPU:   filepath.Join(dir, "cpu.prof"),
		Trace: filepath.Join(dir, "missing", "trace.out"),
	})
	require.Error(t, err)

	// CPU profiling was stopped, so a new session can start it again.
	s, err := Start(Options{CPU: filepath.Join(dir, "cpu2.prof")})
	require.NoError(t, err)
	assert.NoError(t, s.Stop())
}

func TestWriteHeap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.prof")

	require.NoError(t, WriteHeap(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
