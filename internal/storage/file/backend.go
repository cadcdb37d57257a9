// Package file хранит каждое значение в отдельном JSON-файле внутри каталога.
// Запись атомарна: данные пишутся во временный файл и переименовываются.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"memo-service/internal/storage"
)

const (
	// tempFilePrefix префикс временных файлов атомарной записи
	tempFilePrefix = "memo-tmp-"
	fileExt        = ".json"
)

var (
	_ storage.Backend = (*Backend)(nil)
	_ storage.Watcher = (*Backend)(nil)
)

// Backend файловое хранилище
type Backend struct {
	dir    string
	logger *zap.Logger
}

// NewBackend создает каталог (если его нет) и возвращает файловое хранилище
func NewBackend(dir string, logger *zap.Logger) (*Backend, error) {
	if dir == "" {
		return nil, errors.New("file storage: dir cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Backend{dir: dir, logger: logger}, nil
}

// Path возвращает путь к файлу, в котором хранится ключ
func (b *Backend) Path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("file storage: invalid key %q", key)
	}
	return filepath.Join(b.dir, key+fileExt), nil
}

// Get читает файл ключа целиком
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := b.Path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, nil
}

// Set атомарно перезаписывает файл ключа
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	path, err := b.Path(key)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, value, 0o644)
}

// Close ничего не делает
func (b *Backend) Close() error {
	return nil
}

// Watch следит за каталогом и сигнализирует, когда файл ключа меняется.
// Следим за каталогом, а не за файлом: атомарная запись заменяет файл через rename.
func (b *Backend) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	path, err := b.Path(key)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(b.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", b.dir, err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
					// уведомление уже ожидает получателя
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				b.logger.Warn("file watcher error", zap.String("dir", b.dir), zap.Error(err))
			}
		}
	}()

	return changes, nil
}

// writeFileAtomic пишет данные во временный файл в том же каталоге и переименовывает его
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}
