// Package memov1 описывает API memo.v1.MemoService: сообщения, дескриптор
// gRPC-сервиса и клиентскую заглушку. Сообщения передаются в JSON (см. codec.go),
// форма заметки совпадает с форматом хранения.
package memov1

import (
	"errors"
	"strings"
)

// MaxTitleLength и MaxContentLength ограничения на размер полей заметки
const (
	MaxTitleLength   = 1024
	MaxContentLength = 1 << 20
)

// Note заметка на проводе; временные метки в миллисекундах Unix
type Note struct {
	Id        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Content   string `json:"content" yaml:"content"`
	CreatedAt int64  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt int64  `json:"updatedAt" yaml:"updatedAt"`
}

type ListNotesRequest struct{}

type ListNotesResponse struct {
	Notes []*Note `json:"notes"`
}

type GetNoteRequest struct {
	Id string `json:"id"`
}

func (r *GetNoteRequest) Validate() error {
	return validateID(r.Id)
}

type GetNoteResponse struct {
	Note *Note `json:"note"`
}

type CreateNoteRequest struct{}

type CreateNoteResponse struct {
	Note *Note `json:"note"`
	// Warning непустой, если заметка создана, но не сохранилась в хранилище
	Warning string `json:"warning,omitempty"`
}

type UpdateNoteRequest struct {
	Id      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r *UpdateNoteRequest) Validate() error {
	if err := validateID(r.Id); err != nil {
		return err
	}
	if len(r.Title) > MaxTitleLength {
		return errors.New("title is too long")
	}
	if len(r.Content) > MaxContentLength {
		return errors.New("content is too long")
	}
	return nil
}

type UpdateNoteResponse struct {
	Notes   []*Note `json:"notes"`
	Warning string  `json:"warning,omitempty"`
}

type DeleteNoteRequest struct {
	Id string `json:"id"`
}

func (r *DeleteNoteRequest) Validate() error {
	return validateID(r.Id)
}

type DeleteNoteResponse struct {
	Notes   []*Note `json:"notes"`
	Warning string  `json:"warning,omitempty"`
}

type WatchNotesRequest struct{}

// NoteEvent событие изменения коллекции: created, updated или deleted
type NoteEvent struct {
	Kind string `json:"kind"`
	Note *Note  `json:"note"`
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("id cannot be empty")
	}
	return nil
}
