// Package view координирует состояние интерфейса заметок: кэш коллекции,
// выбранную заметку и адаптивную раскладку из двух панелей.
//
// Кэш никогда не меняется самостоятельно: после каждого изменения он заменяется
// коллекцией, которую вернул сервис.
package view

import (
	"context"
	"errors"

	"memo-service/internal/model"
	"memo-service/internal/repository"
	svc "memo-service/internal/service"
)

// DefaultNarrowWidth ширина в пикселях, ниже которой раскладка схлопывается в одну панель
const DefaultNarrowWidth = 768

// ErrNoSelection возвращается при редактировании без выбранной заметки
var ErrNoSelection = errors.New("no note selected")

// Controller состояние представления
type Controller struct {
	service     svc.NoteService
	narrowWidth int

	notes          []model.Note
	selectedID     string
	narrow         bool
	sidebarVisible bool
	warning        string
}

// NewController создает контроллер. narrowWidth <= 0 означает DefaultNarrowWidth.
func NewController(service svc.NoteService, narrowWidth int) *Controller {
	if narrowWidth <= 0 {
		narrowWidth = DefaultNarrowWidth
	}
	return &Controller{
		service:        service,
		narrowWidth:    narrowWidth,
		notes:          []model.Note{},
		sidebarVisible: true,
	}
}

// Load загружает коллекцию и выбирает первую заметку, если она есть
func (c *Controller) Load(ctx context.Context) error {
	notes, err := c.service.List(ctx)
	if err != nil {
		return err
	}

	c.notes = notes
	if len(notes) > 0 {
		c.selectNote(notes[0].ID)
	} else {
		c.selectedID = ""
	}

	return nil
}

// Reload перечитывает коллекцию (например, после внешнего изменения хранилища).
// Выбор сохраняется, если заметка ещё существует.
func (c *Controller) Reload(ctx context.Context) error {
	notes, err := c.service.List(ctx)
	if err != nil {
		return err
	}

	c.notes = notes
	if _, ok := model.Find(notes, c.selectedID); ok {
		return nil
	}
	c.reselectAfterRemoval()

	return nil
}

// Resize пересчитывает признак узкого экрана. Сайдбар скрывается только при
// переходе в узкий режим, чтобы не отменять ручное переключение.
func (c *Controller) Resize(width int) {
	wasNarrow := c.narrow
	c.narrow = width < c.narrowWidth
	if c.narrow && !wasNarrow {
		c.hideSidebarIfEditing()
	}
}

// Select выбирает заметку
func (c *Controller) Select(id string) {
	if _, ok := model.Find(c.notes, id); !ok {
		return
	}
	c.selectNote(id)
}

// Create создает заметку через сервис, добавляет её в начало кэша и выбирает.
// На узком экране сайдбар скрывается, чтобы сразу открыть редактор.
func (c *Controller) Create(ctx context.Context) (model.Note, error) {
	note, err := c.service.Create(ctx)
	if err != nil && !repository.IsPersistWarning(err) {
		return model.Note{}, err
	}
	c.setWarning(err)

	c.notes = append([]model.Note{note}, c.notes...)
	c.selectNote(note.ID)

	return note, nil
}

// Update сохраняет title и content выбранной заметки
func (c *Controller) Update(ctx context.Context, title, content string) error {
	selected, ok := c.Selected()
	if !ok {
		return ErrNoSelection
	}

	selected.Title = title
	selected.Content = content

	notes, err := c.service.Update(ctx, selected)
	if err != nil && !repository.IsPersistWarning(err) {
		return err
	}
	c.setWarning(err)
	c.notes = notes

	return nil
}

// Delete удаляет заметку. Если удалена выбранная заметка, выбирается первая
// оставшаяся; на узком экране при пустом списке снова показывается сайдбар.
func (c *Controller) Delete(ctx context.Context, id string) error {
	notes, err := c.service.Delete(ctx, id)
	if err != nil && !repository.IsPersistWarning(err) {
		return err
	}
	c.setWarning(err)
	c.notes = notes

	if id == c.selectedID {
		c.reselectAfterRemoval()
	}

	return nil
}

// ToggleSidebar переключает видимость списка на узком экране
func (c *Controller) ToggleSidebar() {
	c.sidebarVisible = !c.sidebarVisible
}

// Notes возвращает кэшированную коллекцию
func (c *Controller) Notes() []model.Note {
	return c.notes
}

// SelectedID возвращает ID выбранной заметки или пустую строку
func (c *Controller) SelectedID() string {
	return c.selectedID
}

// Selected возвращает выбранную заметку
func (c *Controller) Selected() (model.Note, bool) {
	if c.selectedID == "" {
		return model.Note{}, false
	}
	return model.Find(c.notes, c.selectedID)
}

// IsNarrow сообщает, что ширина меньше порога
func (c *Controller) IsNarrow() bool {
	return c.narrow
}

// SidebarVisible сообщает, показан ли список на узком экране
func (c *Controller) SidebarVisible() bool {
	return c.sidebarVisible
}

// ListVisible сообщает, нужно ли рисовать панель списка
func (c *Controller) ListVisible() bool {
	return !c.narrow || c.sidebarVisible
}

// EditorVisible сообщает, нужно ли рисовать панель редактора
func (c *Controller) EditorVisible() bool {
	return !c.narrow || !c.sidebarVisible
}

// Warning возвращает предупреждение о последней неудачной записи.
// Пустая строка, если последняя операция сохранилась.
func (c *Controller) Warning() string {
	return c.warning
}

func (c *Controller) setWarning(err error) {
	if err != nil {
		c.warning = err.Error()
		return
	}
	c.warning = ""
}

func (c *Controller) selectNote(id string) {
	c.selectedID = id
	c.hideSidebarIfEditing()
}

func (c *Controller) reselectAfterRemoval() {
	if len(c.notes) > 0 {
		c.selectNote(c.notes[0].ID)
		return
	}

	c.selectedID = ""
	if c.narrow {
		c.sidebarVisible = true
	}
}

// hideSidebarIfEditing на узком экране с выбранной заметкой показывается редактор
func (c *Controller) hideSidebarIfEditing() {
	if c.narrow && c.selectedID != "" {
		c.sidebarVisible = false
	}
}
