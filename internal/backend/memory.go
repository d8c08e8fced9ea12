package backend

import (
	"strconv"
	"sync"
)

// Memory is an in-process Backend. Used by tests and as the store for
// ephemeral sessions that should not touch disk.
type Memory struct {
	mu       sync.RWMutex
	values   map[string]string
	defaults map[string]string
}

// NewMemory creates a Memory backend seeded with the given recorded
// defaults. A nil map is allowed.
func NewMemory(defaults map[string]string) *Memory {
	d := make(map[string]string, len(defaults))
	for k, v := range defaults {
		d[k] = v
	}
	return &Memory{
		values:   make(map[string]string),
		defaults: d,
	}
}

func (m *Memory) GetString(key, fallback string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v
	}
	if v, ok := m.defaults[key]; ok {
		return v
	}
	return fallback
}

func (m *Memory) PutString(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *Memory) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

func (m *Memory) GetInt(key string, fallback int) int {
	raw := m.GetString(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func (m *Memory) PutInt(key string, value int) {
	m.PutString(key, strconv.Itoa(value))
}

func (m *Memory) DefaultString(key, fallback string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.defaults[key]; ok {
		return v
	}
	return fallback
}

// Has reports whether a live override exists for key. Test helper; not part
// of the Backend contract.
func (m *Memory) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.values[key]
	return ok
}
