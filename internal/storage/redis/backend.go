package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"memo-service/internal/storage"
)

var _ storage.Backend = (*Backend)(nil)

// Options параметры подключения к Redis
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Backend хранит значения как строки Redis без TTL
type Backend struct {
	client redis.UniversalClient
}

// NewBackend подключается к Redis и проверяет соединение
func NewBackend(ctx context.Context, opts Options) (*Backend, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis storage: addr cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping error: %w", err)
	}

	return &Backend{client: client}, nil
}

// NewBackendWithClient оборачивает уже созданный клиент
func NewBackendWithClient(client redis.UniversalClient) *Backend {
	return &Backend{client: client}
}

// Get возвращает значение ключа
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := b.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}

	return value, nil
}

// Set перезаписывает значение ключа
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	if err := b.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Close закрывает клиент
func (b *Backend) Close() error {
	return b.client.Close()
}
