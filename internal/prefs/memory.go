package prefs

import (
	"sort"
	"sync"
)

// Memory is a map-backed store. The zero value is not usable; call NewMemory.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Init() error  { return nil }
func (m *Memory) Load() error  { return nil }
func (m *Memory) Close() error { return nil }
func (m *Memory) Path() string { return "memory:" }

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	return m.Apply(NewBatch().Set(key, value))
}

func (m *Memory) Remove(keys ...string) error {
	return m.Apply(NewBatch().Remove(keys...))
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	return nil
}

func (m *Memory) Apply(b *Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return b.Each(func(key string, value []byte, remove bool) error {
		if remove {
			delete(m.data, key)
		} else {
			m.data[key] = value
		}
		return nil
	})
}

func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
