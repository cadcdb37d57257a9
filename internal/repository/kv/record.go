package kv

import (
	"time"

	"memo-service/internal/model"
)

// record формат заметки в хранилище: временные метки в миллисекундах Unix
type record struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

func toRecords(notes []model.Note) []record {
	records := make([]record, len(notes))
	for i, n := range notes {
		records[i] = record{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: n.CreatedAt.UnixMilli(),
			UpdatedAt: n.UpdatedAt.UnixMilli(),
		}
	}
	return records
}

func fromRecords(records []record) []model.Note {
	notes := make([]model.Note, len(records))
	for i, r := range records {
		notes[i] = model.Note{
			ID:        r.ID,
			Title:     r.Title,
			Content:   r.Content,
			CreatedAt: time.UnixMilli(r.CreatedAt),
			UpdatedAt: time.UnixMilli(r.UpdatedAt),
		}
	}
	return notes
}
