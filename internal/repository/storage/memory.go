package storage

import (
	"context"
	"sync"
)

// MemoryStorage keeps values in process memory. Values are lost on exit.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		values: make(map[string][]byte),
	}
}

func (that *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	value, ok := that.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	return append([]byte(nil), value...), nil
}

func (that *MemoryStorage) Set(_ context.Context, key string, value []byte) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.values[key] = append([]byte(nil), value...)

	return nil
}

func (that *MemoryStorage) Close() error {
	return nil
}
