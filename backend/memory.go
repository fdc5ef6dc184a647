package backend

import (
	"slices"
	"sync"
)

// Memory captures records for tests. It retains every accepted record
// alongside its formatted line and is safe for concurrent use.
type Memory struct {
	mu        sync.Mutex
	min       Level
	formatter *Formatter
	records   []*Record
	lines     []string
}

// NewMemory creates a capturing sink accepting records at or above
// min.
func NewMemory(min Level) *Memory {
	return &Memory{min: min, formatter: NewFormatter()}
}

// Name identifies the sink in error reports.
func (m *Memory) Name() string { return "memory" }

// Enabled reports whether the sink accepts records at level.
func (m *Memory) Enabled(level Level) bool { return level >= m.min }

// Log retains one record and its formatted line.
func (m *Memory) Log(r *Record) error {
	line := m.formatter.Format(r)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, r)
	m.lines = append(m.lines, line)

	return nil
}

// Len returns the number of captured records.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.records)
}

// All returns a snapshot of the captured records in arrival order.
func (m *Memory) All() []*Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.records)
}

// Lines returns a snapshot of the formatted lines in arrival order.
func (m *Memory) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.lines)
}

// Reset discards all captured records.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = nil
	m.lines = nil
}
