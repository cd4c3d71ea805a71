// internal/app/store/environments/memory.go
package environmentsstore

import (
	"context"
	"sort"
	"sync"

	"github.com/dalemusser/frontenv/internal/domain/environment"
)

// Memory is an in-process Store, used when no MongoDB URI is configured.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]Record)}
}

// Publish stores env under name, replacing any earlier descriptor.
func (m *Memory) Publish(ctx context.Context, name string, env environment.Environment) (Record, error) {
	rec, err := NewRecord(name, env)
	if err != nil {
		return Record{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.Name] = rec
	return rec, nil
}

// Get returns the descriptor published under name.
func (m *Memory) Get(ctx context.Context, name string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[NormalizeName(name)]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// List returns every record sorted by name.
func (m *Memory) List(ctx context.Context) ([]Record, error) {
	m.mu.RLock()
	out := make([]Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
