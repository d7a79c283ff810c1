package coordinator

import "github.com/mj1618/focusd/internal/model"

// FocusMemory is a bounded mapping from display ID to the window most
// recently focused on that display. When an insert would exceed capacity,
// the oldest-inserted entry other than the one just written is evicted.
// The eviction rule is deliberately deterministic so tests and debugging
// stay reproducible.
//
// FocusMemory is not safe for concurrent use; the coordinator serializes
// access under its handler lock.
type FocusMemory struct {
	capacity int
	entries  map[int]model.Window
	order    []int // insertion order of keys, oldest first
}

// DefaultMemoryCapacity bounds FocusMemory when no capacity is configured.
const DefaultMemoryCapacity = 5

// NewFocusMemory creates a FocusMemory holding at most capacity entries.
func NewFocusMemory(capacity int) *FocusMemory {
	if capacity < 1 {
		capacity = DefaultMemoryCapacity
	}
	return &FocusMemory{
		capacity: capacity,
		entries:  make(map[int]model.Window),
	}
}

// Remember upserts the window for displayID. If the insert pushed the entry
// count over capacity, exactly one older entry is evicted and its display ID
// is returned with evicted = true.
func (m *FocusMemory) Remember(displayID int, w model.Window) (evictedID int, evicted bool) {
	if _, exists := m.entries[displayID]; !exists {
		m.order = append(m.order, displayID)
	}
	m.entries[displayID] = w

	if len(m.entries) <= m.capacity {
		return 0, false
	}

	// Evict the oldest-inserted key that is not the one just written.
	for i, key := range m.order {
		if key == displayID {
			continue
		}
		delete(m.entries, key)
		m.order = append(m.order[:i], m.order[i+1:]...)
		return key, true
	}
	return 0, false
}

// Get returns the remembered window for displayID.
func (m *FocusMemory) Get(displayID int) (model.Window, bool) {
	w, ok := m.entries[displayID]
	return w, ok
}

// Forget drops the entry for displayID, if any.
func (m *FocusMemory) Forget(displayID int) {
	if _, ok := m.entries[displayID]; !ok {
		return
	}
	delete(m.entries, displayID)
	for i, key := range m.order {
		if key == displayID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Clear removes every entry.
func (m *FocusMemory) Clear() {
	m.entries = make(map[int]model.Window)
	m.order = nil
}

// Len returns the current entry count.
func (m *FocusMemory) Len() int {
	return len(m.entries)
}

// SetCapacity re-bounds the memory, evicting oldest entries as needed.
func (m *FocusMemory) SetCapacity(capacity int) {
	if capacity < 1 {
		capacity = DefaultMemoryCapacity
	}
	m.capacity = capacity
	for len(m.entries) > m.capacity {
		key := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, key)
	}
}
