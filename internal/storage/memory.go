package storage

import (
	"context"
	"sync"
)

// Memory keeps everything in process. A positive quota bounds the total
// size of keys plus values, like the browser's per-origin limit.
type Memory struct {
	mu    sync.RWMutex
	data  map[string]string
	quota int
	used  int
}

func NewMemory(quota int) *Memory {
	return &Memory{data: make(map[string]string), quota: quota}
}

func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used
	if old, ok := m.data[key]; ok {
		used -= len(key) + len(old)
	}
	used += len(key) + len(value)
	if m.quota > 0 && used > m.quota {
		return &WriteError{Op: "set", Key: key, Err: ErrQuotaExceeded}
	}

	m.data[key] = value
	m.used = used
	return nil
}

func (m *Memory) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.data[key]; ok {
		m.used -= len(key) + len(old)
		delete(m.data, key)
	}
	return nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
