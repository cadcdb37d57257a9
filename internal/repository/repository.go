package repository

import (
	"context"
	"errors"

	"memo-service/internal/model"
)

var (
	// ErrNoteNotFound возвращается, когда заметка не найдена
	ErrNoteNotFound = errors.New("note not found")

	// ErrPersist оборачивает ошибку записи коллекции в хранилище.
	// Ошибка не фатальна: результат операции возвращается вместе с ней и отражает
	// состояние после изменения, даже если запись не прошла.
	ErrPersist = errors.New("failed to persist notes")
)

// NoteRepository хранилище заметок: вся коллекция читается, меняется в памяти
// и перезаписывается целиком
type NoteRepository interface {
	// List возвращает все заметки; при отсутствии или порче данных возвращает пустой список
	List(ctx context.Context) []model.Note

	// Create создает заметку с заголовком по умолчанию и добавляет её в начало списка
	Create(ctx context.Context) (model.Note, error)

	// Update заменяет title и content заметки с тем же ID и обновляет UpdatedAt.
	// Несуществующий ID не является ошибкой: коллекция сохраняется без изменений.
	Update(ctx context.Context, note model.Note) ([]model.Note, error)

	// Delete удаляет заметку по ID (несуществующий ID игнорируется)
	Delete(ctx context.Context, id string) ([]model.Note, error)
}

// Remover реализуется хранилищами, которые могут атомарно сообщить,
// была ли заметка действительно удалена
type Remover interface {
	// Remove работает как Delete; removed истинно, если заметка с ID существовала
	Remove(ctx context.Context, id string) (notes []model.Note, removed bool, err error)
}

// IsPersistWarning сообщает, что ошибка означает только неудачную запись,
// а возвращенный вместе с ней результат валиден
func IsPersistWarning(err error) bool {
	return errors.Is(err, ErrPersist)
}
