package service

import (
	"context"

	"memo-service/internal/model"
)

// NoteService интерфейс для бизнес-логики работы с заметками.
// Ошибка, для которой repository.IsPersistWarning возвращает true, не фатальна:
// возвращенный вместе с ней результат валиден.
type NoteService interface {
	// List возвращает список всех заметок (новые в начале)
	List(ctx context.Context) ([]model.Note, error)

	// Get возвращает заметку по её ID
	Get(ctx context.Context, id string) (model.Note, error)

	// Create создает новую заметку с заголовком по умолчанию
	Create(ctx context.Context) (model.Note, error)

	// Update обновляет title и content заметки и возвращает всю коллекцию
	Update(ctx context.Context, note model.Note) ([]model.Note, error)

	// Delete удаляет заметку по ID и возвращает оставшуюся коллекцию
	Delete(ctx context.Context, id string) ([]model.Note, error)
}
