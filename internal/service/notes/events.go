package notes

import (
	"sync"

	"memo-service/internal/model"
)

// EventKind тип изменения коллекции
type EventKind string

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
)

// Event событие изменения заметки. Для удаления заполнен только Note.ID.
type Event struct {
	Kind EventKind
	Note model.Note
}

// EventService управляет подписчиками на события изменения заметок
type EventService struct {
	subscribers map[chan Event]bool
	mu          sync.RWMutex
}

// NewEventService создает новый экземпляр EventService
func NewEventService() *EventService {
	return &EventService{
		subscribers: make(map[chan Event]bool),
	}
}

// Subscribe добавляет нового подписчика и возвращает канал для получения событий
func (s *EventService) Subscribe() chan Event {
	ch := make(chan Event, 10)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[ch] = true
	return ch
}

// Unsubscribe удаляет подписчика и закрывает его канал
func (s *EventService) Unsubscribe(ch chan Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[ch]; ok {
		close(ch)
		delete(s.subscribers, ch)
	}
}

// Publish отправляет событие всем подписчикам.
// Если канал подписчика переполнен, событие пропускается.
func (s *EventService) Publish(event Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribers возвращает количество активных подписчиков
func (s *EventService) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}
