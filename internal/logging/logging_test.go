package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestDefaultLogDir(t *testing.T) {
	dir := DefaultLogDir()
	if dir == "" {
		t.Fatal("DefaultLogDir returned empty string")
	}
	if !strings.Contains(dir, ".codeunify") || filepath.Base(dir) != "logs" {
		t.Errorf("DefaultLogDir should end with .codeunify/logs, got: %s", dir)
	}
}

func TestDefaultLogPath(t *testing.T) {
	path := DefaultLogPath()
	if filepath.Base(path) != "codeunify.log" {
		t.Errorf("DefaultLogPath should end with codeunify.log, got: %s", path)
	}
}

func TestResolveLogPath(t *testing.T) {
	got, err := ResolveLogPath("")
	if err != nil || got != DefaultLogPath() {
		t.Errorf("ResolveLogPath(\"\") = %q, %v", got, err)
	}

	home, err := os.UserHomeDir()
	if err == nil {
		got, err := ResolveLogPath("~/x/run.log")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := filepath.Join(home, "x", "run.log"); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}

	got, err = ResolveLogPath("rel.log")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %s", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got: %s", cfg.Level)
	}
	if cfg.FilePath != "" {
		t.Errorf("expected no log file by default, got: %s", cfg.FilePath)
	}
	if cfg.MaxSizeMB != 10 || cfg.MaxFiles != 5 {
		t.Errorf("unexpected rotation defaults: %d MB, %d files", cfg.MaxSizeMB, cfg.MaxFiles)
	}
}

func TestSetup_StderrOnly(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Stderr = &buf

	logger, cleanup, err := Setup(cfg)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer cleanup()

	logger.Debug("hidden")
	logger.Info("files to process", "count", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record should be filtered at info level: %q", out)
	}
	if !strings.Contains(out, "msg=\"files to process\"") || !strings.Contains(out, "count=3") {
		t.Errorf("expected text record, got: %q", out)
	}
}

func TestSetup_WithFile(t *testing.T) {
	var buf bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "nested", "run.log")

	logger, cleanup, err := Setup(Config{
		Level:     "debug",
		FilePath:  logPath,
		MaxSizeMB: 1,
		MaxFiles:  3,
		Stderr:    &buf,
	})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	logger.With("run", "a").Debug("ignoring file", "path", "x.py")
	cleanup()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	if !strings.Contains(string(content), `"msg":"ignoring file"`) ||
		!strings.Contains(string(content), `"run":"a"`) {
		t.Errorf("expected JSON record in file, got: %s", content)
	}
	if !strings.Contains(buf.String(), "ignoring file") {
		t.Errorf("expected record on stderr too, got: %q", buf.String())
	}
}

func TestSetup_UnwritableFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, cleanup, err := Setup(Config{FilePath: filepath.Join(blocker, "run.log"), MaxSizeMB: 1})
	if err == nil {
		t.Fatal("expected error when log directory cannot be created")
	}
	if cleanup == nil {
		t.Error("cleanup must never be nil")
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger == nil {
		t.Fatal("Discard returned nil logger")
	}
	logger.Error("dropped")
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "DEBUG"},
		{"DEBUG", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"unknown", "INFO"},
	}

	for _, tc := range tests {
		level := LevelFromString(tc.input)
		if level.String() != tc.expected {
			t.Errorf("LevelFromString(%q) = %s, want %s", tc.input, level.String(), tc.expected)
		}
	}
}

// ============================================================================
// Writer Rotation Tests
// ============================================================================

func TestRotatingWriter_Write(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	w, err := NewRotatingWriter(logPath, 1, 3)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	defer w.Close()

	testData := []byte(`{"level":"INFO","msg":"test"}` + "\n")
	n, err := w.Write(testData)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if n != len(testData) {
		t.Errorf("expected %d bytes written, got %d", len(testData), n)
	}
	if err := w.Sync(); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if string(content) != string(testData) {
		t.Errorf("expected %q, got %q", string(testData), string(content))
	}
}

func TestRotatingWriter_Appends(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "append.log")
	if err := os.WriteFile(logPath, []byte("old\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewRotatingWriter(logPath, 1, 3)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	_, _ = w.Write([]byte("new\n"))
	_ = w.Close()

	content, _ := os.ReadFile(logPath)
	if string(content) != "old\nnew\n" {
		t.Errorf("expected appended content, got %q", content)
	}
}

func TestRotatingWriter_Rotation(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "rotate.log")

	// 0 MB rotates before every write to a non-empty file
	w, err := NewRotatingWriter(logPath, 0, 3)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	defer w.Close()

	for _, s := range []string{"first\n", "second\n", "third\n"} {
		if _, err := w.Write([]byte(s)); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	_ = w.Sync()

	expect := map[string]string{
		logPath:        "third\n",
		logPath + ".1": "second\n",
		logPath + ".2": "first\n",
	}
	for path, want := range expect {
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
		if string(got) != want {
			t.Errorf("%s: expected %q, got %q", filepath.Base(path), want, got)
		}
	}
}

func TestRotatingWriter_MaxFilesLimit(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "maxfiles.log")

	w, err := NewRotatingWriter(logPath, 0, 2)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	defer w.Close()

	for i := 0; i < 6; i++ {
		_, _ = w.Write([]byte(fmt.Sprintf("line %d\n", i)))
	}

	if _, err := os.Stat(logPath + ".2"); err != nil {
		t.Errorf("rotated file .2 should exist: %v", err)
	}
	if _, err := os.Stat(logPath + ".3"); !os.IsNotExist(err) {
		t.Error("rotated file .3 should not exist (beyond maxFiles)")
	}
}

func TestRotatingWriter_WriteAfterClose(t *testing.T) {
	w, err := NewRotatingWriter(filepath.Join(t.TempDir(), "closed.log"), 1, 3)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close should be a no-op: %v", err)
	}
	if _, err := w.Write([]byte("x")); err == nil {
		t.Error("expected error writing to closed writer")
	}
	if err := w.Sync(); err != nil {
		t.Errorf("sync after close should be a no-op: %v", err)
	}
}

func TestRotatingWriter_ConcurrentWrites(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "concurrent.log")

	w, err := NewRotatingWriter(logPath, 10, 3)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	defer w.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				msg := fmt.Sprintf(`{"id":%d,"iter":%d,"msg":"test"}`, id, j) + "\n"
				_, _ = w.Write([]byte(msg))
			}
		}(i)
	}
	wg.Wait()
	_ = w.Sync()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file should exist: %v", err)
	}
	if lines := strings.Count(string(content), "\n"); lines != 1000 {
		t.Errorf("expected 1000 lines, got %d", lines)
	}
}
