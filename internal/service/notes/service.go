package notes

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"memo-service/internal/model"
	"memo-service/internal/repository"
	svc "memo-service/internal/service"
)

var _ svc.NoteService = (*service)(nil)

type service struct {
	noteRepository repository.NoteRepository
	events         *EventService
	logger         *zap.Logger
}

// NewNoteService создает новый экземпляр сервиса для работы с заметками.
// events может быть nil, тогда события не публикуются.
func NewNoteService(noteRepository repository.NoteRepository, events *EventService, logger *zap.Logger) svc.NoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		noteRepository: noteRepository,
		events:         events,
		logger:         logger,
	}
}

// List возвращает список всех заметок
func (s *service) List(ctx context.Context) ([]model.Note, error) {
	return s.noteRepository.List(ctx), nil
}

// Get возвращает заметку по её ID
func (s *service) Get(ctx context.Context, id string) (model.Note, error) {
	if id == "" {
		return model.Note{}, errors.New("id cannot be empty")
	}

	note, ok := model.Find(s.noteRepository.List(ctx), id)
	if !ok {
		return model.Note{}, repository.ErrNoteNotFound
	}

	return note, nil
}

// Create создает новую заметку
func (s *service) Create(ctx context.Context) (model.Note, error) {
	note, err := s.noteRepository.Create(ctx)
	if err = s.checkPersist(err, "create", note.ID); err != nil && !repository.IsPersistWarning(err) {
		return model.Note{}, err
	}

	s.publish(EventCreated, note)

	return note, err
}

// Update обновляет title и content заметки
func (s *service) Update(ctx context.Context, note model.Note) ([]model.Note, error) {
	notes, err := s.noteRepository.Update(ctx, note)
	if err = s.checkPersist(err, "update", note.ID); err != nil && !repository.IsPersistWarning(err) {
		return nil, err
	}

	if updated, ok := model.Find(notes, note.ID); ok {
		s.publish(EventUpdated, updated)
	}

	return notes, err
}

// Delete удаляет заметку по ID
func (s *service) Delete(ctx context.Context, id string) ([]model.Note, error) {
	notes, existed, err := s.remove(ctx, id)
	if err = s.checkPersist(err, "delete", id); err != nil && !repository.IsPersistWarning(err) {
		return nil, err
	}

	if existed {
		s.publish(EventDeleted, model.Note{ID: id})
	}

	return notes, err
}

// remove удаляет заметку и сообщает, существовала ли она. Для хранилищ без
// Remover проверка делается отдельным чтением и не защищена от гонок.
func (s *service) remove(ctx context.Context, id string) ([]model.Note, bool, error) {
	if r, ok := s.noteRepository.(repository.Remover); ok {
		return r.Remove(ctx, id)
	}

	_, existed := model.Find(s.noteRepository.List(ctx), id)
	notes, err := s.noteRepository.Delete(ctx, id)
	return notes, existed, err
}

// checkPersist логирует предупреждение о неудачной записи и возвращает ошибку как есть
func (s *service) checkPersist(err error, op, id string) error {
	if repository.IsPersistWarning(err) {
		s.logger.Warn("note change was not persisted",
			zap.String("op", op), zap.String("id", id), zap.Error(err))
	}
	return err
}

func (s *service) publish(kind EventKind, note model.Note) {
	if s.events == nil {
		return
	}
	s.events.Publish(Event{Kind: kind, Note: note})
}
