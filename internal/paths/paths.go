package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scoreview/internal/config"
)

// ProjectPaths captures canonical locations inside a scoreview workspace.
type ProjectPaths struct {
	Root       string
	ConfigFile string
	DataDir    string
	MetaDir    string
	StateFile  string
	LogsDir    string
}

// Resolve determines the workspace root using the optional --dir flag or the
// current working directory when the flag is empty.
func Resolve(dirFlag string) (ProjectPaths, error) {
	var (
		root string
		err  error
	)

	if dirFlag != "" {
		root, err = filepath.Abs(dirFlag)
	} else {
		root, err = os.Getwd()
	}
	if err != nil {
		return ProjectPaths{}, fmt.Errorf("resolve workspace root: %w", err)
	}

	return newProjectPaths(root), nil
}

func newProjectPaths(root string) ProjectPaths {
	metaDir := filepath.Join(root, ".scoreview")
	return ProjectPaths{
		Root:       root,
		ConfigFile: filepath.Join(root, "scoreview.yaml"),
		DataDir:    filepath.Join(root, "data"),
		MetaDir:    metaDir,
		StateFile:  filepath.Join(metaDir, "state.db"),
		LogsDir:    filepath.Join(root, "logs"),
	}
}

// ApplyConfig points the state file at the configured location.
func ApplyConfig(pp ProjectPaths, cfg config.Config) ProjectPaths {
	if p := strings.TrimSpace(cfg.State.Path); p != "" {
		pp.StateFile = resolveProjectPath(pp.Root, p)
	}
	return pp
}

func resolveProjectPath(root, value string) string {
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(root, value)
}

// EnsureRoot makes sure the workspace root exists on disk.
func (p ProjectPaths) EnsureRoot() error {
	if err := os.MkdirAll(p.Root, 0o755); err != nil {
		return fmt.Errorf("create workspace root: %w", err)
	}
	return nil
}

// EnsureMetaDirs creates the data and logs directories alongside the
// hidden .scoreview metadata directory.
func (p ProjectPaths) EnsureMetaDirs() error {
	dirs := []string{p.MetaDir, p.DataDir, p.LogsDir, filepath.Dir(p.StateFile)}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
