// Package kv реализует хранилище заметок поверх key-value хранилища:
// вся коллекция сериализуется в JSON-массив и хранится под одним ключом.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"memo-service/internal/model"
	"memo-service/internal/repository"
	"memo-service/internal/storage"
)

var (
	_ repository.NoteRepository = (*repo)(nil)
	_ repository.Remover        = (*repo)(nil)
)

// Option настраивает хранилище заметок
type Option func(*repo)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(r *repo) {
		r.now = now
	}
}

// WithIDGenerator подменяет генератор идентификаторов
func WithIDGenerator(newID func() string) Option {
	return func(r *repo) {
		r.newID = newID
	}
}

// WithLogger задает логгер для проглоченных ошибок хранилища
func WithLogger(logger *zap.Logger) Option {
	return func(r *repo) {
		r.logger = logger
	}
}

type repo struct {
	// mu сериализует изменения: одна операция чтение-изменение-запись за раз
	mu      sync.Mutex
	backend storage.Backend
	key     string
	now     func() time.Time
	newID   func() string
	logger  *zap.Logger
}

// NewRepository создает хранилище заметок под ключом key
func NewRepository(backend storage.Backend, key string, opts ...Option) (repository.NoteRepository, error) {
	if backend == nil {
		return nil, errors.New("backend cannot be nil")
	}
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	r := &repo{
		backend: backend,
		key:     key,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// List возвращает все заметки. Ошибки чтения и разбора логируются,
// а коллекция считается пустой.
func (r *repo) List(ctx context.Context) []model.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

// Create создает заметку с заголовком по умолчанию и пустым содержимым
func (r *repo) Create(ctx context.Context) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.timestamp()
	note := model.Note{
		ID:        r.newID(),
		Title:     model.DefaultTitle,
		Content:   "",
		CreatedAt: now,
		UpdatedAt: now,
	}

	notes := append([]model.Note{note}, r.load(ctx)...)

	return note, r.save(ctx, notes)
}

// Update заменяет title и content заметки и выставляет UpdatedAt в текущее время.
// ID и CreatedAt берутся из сохраненной заметки, значения вызывающего игнорируются.
func (r *repo) Update(ctx context.Context, note model.Note) ([]model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes := r.load(ctx)
	for i := range notes {
		if notes[i].ID != note.ID {
			continue
		}

		updatedAt := r.timestamp()
		// часы могли уйти назад, CreatedAt <= UpdatedAt должно сохраняться
		if updatedAt.Before(notes[i].CreatedAt) {
			updatedAt = notes[i].CreatedAt
		}

		notes[i].Title = note.Title
		notes[i].Content = note.Content
		notes[i].UpdatedAt = updatedAt
		break
	}

	return notes, r.save(ctx, notes)
}

// Delete удаляет заметку по ID
func (r *repo) Delete(ctx context.Context, id string) ([]model.Note, error) {
	notes, _, err := r.Remove(ctx, id)
	return notes, err
}

// Remove удаляет заметку и сообщает, существовала ли она, в пределах одной блокировки
func (r *repo) Remove(ctx context.Context, id string) ([]model.Note, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.load(ctx)
	notes := make([]model.Note, 0, len(current))
	for _, n := range current {
		if n.ID != id {
			notes = append(notes, n)
		}
	}

	return notes, len(notes) < len(current), r.save(ctx, notes)
}

// timestamp текущее время с точностью до миллисекунд, как в хранилище
func (r *repo) timestamp() time.Time {
	return time.UnixMilli(r.now().UnixMilli())
}

func (r *repo) load(ctx context.Context) []model.Note {
	data, err := r.backend.Get(ctx, r.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []model.Note{}
	}
	if err != nil {
		r.logger.Warn("failed to read notes, treating collection as empty",
			zap.String("key", r.key), zap.Error(err))
		return []model.Note{}
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		r.logger.Warn("failed to decode notes, treating collection as empty",
			zap.String("key", r.key), zap.Error(err))
		return []model.Note{}
	}

	return fromRecords(records)
}

func (r *repo) save(ctx context.Context, notes []model.Note) error {
	data, err := json.Marshal(toRecords(notes))
	if err != nil {
		r.logger.Error("failed to encode notes", zap.String("key", r.key), zap.Error(err))
		return fmt.Errorf("%w: %w", repository.ErrPersist, err)
	}

	if err := r.backend.Set(ctx, r.key, data); err != nil {
		r.logger.Error("failed to save notes", zap.String("key", r.key), zap.Error(err))
		return fmt.Errorf("%w: %w", repository.ErrPersist, err)
	}

	return nil
}
