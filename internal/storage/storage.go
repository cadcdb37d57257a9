// Package storage описывает key-value хранилище, в котором Note Store держит
// сериализованную коллекцию заметок под одним ключом.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound возвращается, когда по ключу ничего не сохранено
var ErrNotFound = errors.New("storage: key not found")

// Backend key-value хранилище с записью целого значения по ключу
type Backend interface {
	// Get возвращает значение по ключу или ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set полностью перезаписывает значение по ключу
	Set(ctx context.Context, key string, value []byte) error

	// Close освобождает ресурсы хранилища
	Close() error
}

// Watcher реализуется хранилищами, которые умеют сообщать о внешних изменениях ключа.
// Канал закрывается при отмене ctx.
type Watcher interface {
	Watch(ctx context.Context, key string) (<-chan struct{}, error)
}
