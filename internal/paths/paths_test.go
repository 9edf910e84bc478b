package paths

import (
	"os"
	"path/filepath"
	"testing"

	"scoreview/internal/config"
)

func TestResolveFlag(t *testing.T) {
	root := t.TempDir()
	pp, err := Resolve(root)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if pp.ConfigFile != filepath.Join(root, "scoreview.yaml") {
		t.Fatalf("unexpected config file: %s", pp.ConfigFile)
	}
	if pp.StateFile != filepath.Join(root, ".scoreview", "state.db") {
		t.Fatalf("unexpected state file: %s", pp.StateFile)
	}
}

func TestApplyConfigRelative(t *testing.T) {
	root := t.TempDir()
	pp := newProjectPaths(root)

	cfg := config.Default()
	cfg.State.Path = "store/state.json"

	applied := ApplyConfig(pp, cfg)
	expected := filepath.Join(root, "store", "state.json")
	if applied.StateFile != expected {
		t.Fatalf("expected state path %s, got %s", expected, applied.StateFile)
	}
}

func TestApplyConfigAbsolute(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(t.TempDir(), "state.db")

	cfg := config.Default()
	cfg.State.Path = abs

	if applied := ApplyConfig(newProjectPaths(root), cfg); applied.StateFile != abs {
		t.Fatalf("expected absolute state path %s, got %s", abs, applied.StateFile)
	}
}

func TestEnsureMetaDirs(t *testing.T) {
	pp := newProjectPaths(filepath.Join(t.TempDir(), "ws"))
	if err := pp.EnsureRoot(); err != nil {
		t.Fatalf("ensure root: %v", err)
	}
	if err := pp.EnsureMetaDirs(); err != nil {
		t.Fatalf("ensure dirs: %v", err)
	}
	for _, dir := range []string{pp.MetaDir, pp.DataDir, pp.LogsDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s", dir)
		}
	}

	ok, err := FileExists(pp.ConfigFile)
	if err != nil || ok {
		t.Fatalf("FileExists on missing config = %v, %v", ok, err)
	}
}
