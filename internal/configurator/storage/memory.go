package storage

import (
	"bytes"
	"context"
	"sync"

	"github.com/autopeer-io/voltura/internal/configurator/core"
)

var _ core.KeyValueStore = (*Memory)(nil)

// Memory keeps values in the process. It is used by tests and by the
// "memory" backend; nothing survives a restart.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(v), true, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = bytes.Clone(value)
	return nil
}
