package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store backed by one JSON document, rewritten atomically on
// every change.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile returns a File store at path. The file is created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads the snapshot. A missing or corrupt file yields an empty
// snapshot without error.
func (f *File) Load() (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read(), nil
}

func (f *File) read() Snapshot {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return Snapshot{}
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}
	}
	if snap.ItemsPerPage < 0 {
		snap.ItemsPerPage = 0
	}
	return snap
}

// SaveCSV see Store
func (f *File) SaveCSV(text string) error {
	return f.update(func(s *Snapshot) { s.CSVText = text })
}

// ClearCSV see Store
func (f *File) ClearCSV() error {
	return f.update(func(s *Snapshot) { s.CSVText = "" })
}

// SavePageSize see Store
func (f *File) SavePageSize(n int) error {
	if n < 1 {
		return fmt.Errorf("invalid page size %d", n)
	}
	return f.update(func(s *Snapshot) { s.ItemsPerPage = n })
}

// Close is a no-op.
func (f *File) Close() error { return nil }

func (f *File) update(mutate func(*Snapshot)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := f.read()
	mutate(&snap)

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
