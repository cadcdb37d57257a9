package converter

import (
	"time"

	"memo-service/internal/model"
	memov1 "memo-service/pkg/api/memo/v1"
)

// WireToModel конвертирует заметку API в domain модель
func WireToModel(wireNote *memov1.Note) model.Note {
	if wireNote == nil {
		return model.Note{}
	}

	return model.Note{
		ID:        wireNote.Id,
		Title:     wireNote.Title,
		Content:   wireNote.Content,
		CreatedAt: fromMillis(wireNote.CreatedAt),
		UpdatedAt: fromMillis(wireNote.UpdatedAt),
	}
}

// ModelToWire конвертирует domain модель в заметку API
func ModelToWire(note model.Note) *memov1.Note {
	return &memov1.Note{
		Id:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: toMillis(note.CreatedAt),
		UpdatedAt: toMillis(note.UpdatedAt),
	}
}

// ModelsToWire конвертирует слайс domain моделей; пустой слайс остается пустым, а не nil
func ModelsToWire(notes []model.Note) []*memov1.Note {
	wireNotes := make([]*memov1.Note, len(notes))
	for i, note := range notes {
		wireNotes[i] = ModelToWire(note)
	}

	return wireNotes
}

// WireToModels конвертирует слайс заметок API в domain модели
func WireToModels(wireNotes []*memov1.Note) []model.Note {
	notes := make([]model.Note, len(wireNotes))
	for i, n := range wireNotes {
		notes[i] = WireToModel(n)
	}

	return notes
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
