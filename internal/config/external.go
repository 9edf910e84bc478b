package config

import (
	"path/filepath"

	"scoreview/internal/catalog"
)

// resolveExternalPath returns path as-is if absolute, otherwise joins it with root.
func resolveExternalPath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// DataPaths resolves the reference data files against the workspace root.
func (c Config) DataPaths(root string) catalog.Paths {
	return catalog.Paths{
		DifficultyTable: resolveExternalPath(root, c.Data.DifficultyTable),
		MatchingTable:   resolveExternalPath(root, c.Data.MatchingTable),
		VersionOrder:    resolveExternalPath(root, c.Data.VersionOrder),
	}
}

// StatePath resolves the state store location against the workspace root.
func (c Config) StatePath(root string) string {
	return resolveExternalPath(root, c.State.Path)
}
