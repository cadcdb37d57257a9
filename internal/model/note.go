package model

import (
	"time"
)

// DefaultTitle заголовок, который получает новая заметка
const DefaultTitle = "新しいメモ"

// Note представляет заметку (доменная модель)
type Note struct {
	ID        string    // UUID заметки, не меняется после создания
	Title     string    // Заголовок заметки, может быть пустым
	Content   string    // Содержание заметки, может быть пустым
	CreatedAt time.Time // Дата создания
	UpdatedAt time.Time // Дата последнего обновления
}

// Find возвращает заметку с указанным ID из списка
func Find(notes []Note, id string) (Note, bool) {
	for _, n := range notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}
