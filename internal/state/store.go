// Package state persists the last loaded score export and the preferred page
// size between runs.
package state

import (
	"fmt"
	"strings"
)

// DefaultItemsPerPage is the page size used when none has been stored.
const DefaultItemsPerPage = 10

// Snapshot is everything a Store remembers.
type Snapshot struct {
	CSVText      string `json:"csv_text,omitempty"`
	ItemsPerPage int    `json:"items_per_page,omitempty"`
}

// HasCSV reports whether a score export has been stored.
func (s Snapshot) HasCSV() bool {
	return s.CSVText != ""
}

// PageSize returns the stored page size, or DefaultItemsPerPage when unset.
func (s Snapshot) PageSize() int {
	if s.ItemsPerPage > 0 {
		return s.ItemsPerPage
	}
	return DefaultItemsPerPage
}

// Store is a small local key-value store. Callers treat every error as
// "no stored value" or "write had no effect".
type Store interface {
	Load() (Snapshot, error)
	SaveCSV(text string) error
	ClearCSV() error
	SavePageSize(n int) error
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	BackendBolt   Backend = "bolt"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// ParseBackend validates a backend name.
func ParseBackend(value string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(value))); b {
	case BackendBolt, BackendFile, BackendMemory:
		return b, nil
	case "":
		return BackendBolt, nil
	}
	return "", fmt.Errorf("unknown state backend %q", value)
}

// Open returns the store for backend at path.
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendBolt, "":
		return OpenBolt(path)
	case BackendFile:
		return NewFile(path), nil
	case BackendMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown state backend %q", backend)
}
