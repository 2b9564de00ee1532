package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveLogFilePath(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "nested", "logs")

	got, err := resolveLogFilePath(Options{Dir: tmpDir, Filename: "../escape.log"})
	if err != nil {
		t.Fatalf("resolve log path failed: %v", err)
	}
	if got != filepath.Join(tmpDir, "escape.log") {
		t.Fatalf("unexpected log path: %s", got)
	}
	if _, err := os.Stat(tmpDir); err != nil {
		t.Fatalf("expected log dir to be created: %v", err)
	}

	if _, err := resolveLogFilePath(Options{}); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

func TestResolveLogFilePathDefaultFilename(t *testing.T) {
	got, err := resolveLogFilePath(Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("resolve log path failed: %v", err)
	}
	if filepath.Base(got) != defaultLogFilename {
		t.Fatalf("unexpected log filename: %s", filepath.Base(got))
	}
}

func TestNewReleaseWritesToConfiguredFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "release.log"})
	log.Info("release_log_test")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "release.log"))
	if err != nil {
		t.Fatalf("read release log failed: %v", err)
	}
	if !strings.Contains(string(content), `"event":"release_log_test"`) {
		t.Fatalf("expected json event in log file, got=%s", string(content))
	}
}

func TestNewDebugDoesNotWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})
	log.Info("debug_log_test")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestZFallsBackWithoutInit(t *testing.T) {
	previous := L
	L = nil
	t.Cleanup(func() { L = previous })

	if Z() == nil {
		t.Fatalf("expected fallback logger")
	}
	SW("key", "value").Infow("fallback_log_test")
}
