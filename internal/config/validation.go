package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"

	"scoreview/internal/chart"
	"scoreview/internal/state"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

// Validate rejects values no command can run with.
func (c Config) Validate() error {
	var errs []error
	for _, r := range c.validateValues() {
		errs = append(errs, errors.New(r.Message))
	}
	return errors.Join(errs...)
}

// ValidateStrict runs the value checks plus checks against the workspace
// on disk. Missing data files are warnings since loading degrades to empty.
func (c Config) ValidateStrict(root string) []ValidationResult {
	results := c.validateValues()
	results = append(results, c.validateDataFiles(root)...)
	return results
}

func (c Config) validateValues() []ValidationResult {
	var results []ValidationResult
	fail := func(format string, args ...any) {
		results = append(results, ValidationResult{Level: "error", Message: fmt.Sprintf(format, args...)})
	}

	if _, err := chart.ParseSortKey(c.View.SortKey); err != nil {
		fail("view.sort_key: %v", err)
	}
	if _, err := chart.ParseDirection(c.View.SortDirection); err != nil {
		fail("view.sort_direction: %v", err)
	}
	if c.View.ItemsPerPage < 1 {
		fail("view.items_per_page must be positive, got %d", c.View.ItemsPerPage)
	}
	if _, err := state.ParseBackend(c.State.Backend); err != nil {
		fail("state.backend: %v", err)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		fail("logging.level: %v", err)
	}
	if c.Alias.Threshold <= 0 || c.Alias.Threshold > 1 {
		fail("alias.threshold must be in (0, 1], got %g", c.Alias.Threshold)
	}
	return results
}

func (c Config) validateDataFiles(root string) []ValidationResult {
	var results []ValidationResult
	p := c.DataPaths(root)
	files := []struct{ key, path string }{
		{"data.difficulty_table", p.DifficultyTable},
		{"data.matching_table", p.MatchingTable},
		{"data.version_order", p.VersionOrder},
	}
	for _, f := range files {
		if _, err := os.Stat(f.path); err != nil {
			results = append(results, ValidationResult{
				Level:   "warning",
				Message: fmt.Sprintf("%s: file %q not found", f.key, f.path),
			})
		}
	}
	return results
}
