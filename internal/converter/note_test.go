package converter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"memo-service/internal/model"
	memov1 "memo-service/pkg/api/memo/v1"
)

func TestModelToWire(t *testing.T) {
	note := model.Note{
		ID:        "id",
		Title:     "t",
		Content:   "c",
		CreatedAt: time.UnixMilli(1000),
		UpdatedAt: time.UnixMilli(2000),
	}

	wire := ModelToWire(note)
	assert.Equal(t, &memov1.Note{Id: "id", Title: "t", Content: "c", CreatedAt: 1000, UpdatedAt: 2000}, wire)
	assert.Equal(t, note, WireToModel(wire))
}

func TestZeroTimestamps(t *testing.T) {
	wire := ModelToWire(model.Note{ID: "x"})
	assert.Zero(t, wire.CreatedAt)
	assert.True(t, WireToModel(wire).CreatedAt.IsZero())
	assert.Equal(t, model.Note{}, WireToModel(nil))
}

func TestSlices(t *testing.T) {
	assert.NotNil(t, ModelsToWire(nil))
	assert.Empty(t, ModelsToWire(nil))

	notes := []model.Note{{ID: "a"}, {ID: "b"}}
	back := WireToModels(ModelsToWire(notes))
	assert.Equal(t, notes, back)
}
