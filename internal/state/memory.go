package state

import (
	"fmt"
	"sync"
)

// Memory is a Store that lives only as long as the process.
type Memory struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap, nil
}

func (m *Memory) SaveCSV(text string) error {
	m.mu.Lock()
	m.snap.CSVText = text
	m.mu.Unlock()
	return nil
}

func (m *Memory) ClearCSV() error {
	m.mu.Lock()
	m.snap.CSVText = ""
	m.mu.Unlock()
	return nil
}

func (m *Memory) SavePageSize(n int) error {
	if n < 1 {
		return fmt.Errorf("invalid page size %d", n)
	}
	m.mu.Lock()
	m.snap.ItemsPerPage = n
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }
