package logx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scoreview/internal/paths"
)

func TestNewWritesToLogsDir(t *testing.T) {
	pp, err := paths.Resolve(t.TempDir())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	logger, closer, err := New(pp, "debug")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Debug("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(pp.LogsDir, "*.log"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one log file, got %v (%v)", files, err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Fatalf("unexpected log contents: %s", data)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	pp, _ := paths.Resolve(t.TempDir())
	if _, _, err := New(pp, "shout"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
