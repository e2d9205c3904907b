package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesJSONToDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	cleanup, err := Setup(Config{Dir: dir, Debug: true})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	want := filepath.Join(dir, fileName)
	if Path() != want {
		t.Fatalf("expected path %s, got %s", want, Path())
	}

	L().Debug("batch.start", "total", 2)

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if Path() != "" {
		t.Fatalf("expected path reset after cleanup")
	}

	b, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"msg":"logger.initialized"`) || !strings.Contains(s, `"msg":"batch.start"`) {
		t.Fatalf("unexpected log contents: %s", s)
	}
}

func TestSetupFailureFallsBackToDiscard(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Setup(Config{Dir: filepath.Join(blocker, "logs")})
	if err == nil {
		t.Fatalf("expected error when dir is under a regular file")
	}
	if Path() != "" {
		t.Fatalf("expected no active path")
	}
	L().Info("still.safe")
}
