// Package cache implementaciones de repository.LocalCache: memoria, archivos JSON y Redis.
package cache

import (
	"context"
	"sync"

	"github.com/jhoicas/autoparts-ledger/internal/domain/repository"
)

var _ repository.LocalCache = (*MemoryCache)(nil)

// MemoryCache caché en proceso. Se pierde al reiniciar; pensada para tests y desarrollo.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryCache crea una caché vacía.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string][]byte)}
}

func (m *MemoryCache) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryCache) Save(_ context.Context, key string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	m.mu.Lock()
	m.data[key] = buf
	m.mu.Unlock()
	return nil
}
