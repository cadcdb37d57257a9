package memory

import (
	"context"
	"sync"

	"memo-service/internal/storage"
)

var _ storage.Backend = (*Backend)(nil)

// Backend in-memory хранилище на основе map
type Backend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewBackend создает новый экземпляр in-memory хранилища
func NewBackend() *Backend {
	return &Backend{
		values: make(map[string][]byte),
	}
}

// Get возвращает копию значения по ключу
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, exists := b.values[key]
	if !exists {
		return nil, storage.ErrNotFound
	}

	return append([]byte(nil), value...), nil
}

// Set сохраняет копию значения, чтобы вызывающий мог переиспользовать буфер
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.values[key] = append([]byte(nil), value...)

	return nil
}

// Close ничего не делает
func (b *Backend) Close() error {
	return nil
}
