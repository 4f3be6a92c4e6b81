package notify

import (
	"sort"
	"sync"
)

// MemoryRegistry is an in-memory Registry, used in tests and as a fallback
// when no persistent registry is available.
type MemoryRegistry struct {
	mu      sync.RWMutex
	pending map[string]Descriptor
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{pending: make(map[string]Descriptor)}
}

// Schedule implements Registry.
func (r *MemoryRegistry) Schedule(d Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[d.ID] = d
	return nil
}

// Cancel implements Registry.
func (r *MemoryRegistry) Cancel(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, id)
	return nil
}

// CancelAll implements Registry.
func (r *MemoryRegistry) CancelAll(taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, d := range r.pending {
		if d.TaskID == taskID {
			delete(r.pending, id)
		}
	}
	return nil
}

// Pending returns the pending descriptors sorted by identifier. The error
// is always nil; the signature matches the persistent registry's.
func (r *MemoryRegistry) Pending() ([]Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(r.pending))
	for _, d := range r.pending {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
