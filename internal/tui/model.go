// Package tui терминальный интерфейс заметок: список и редактор поверх view.Controller.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"memo-service/internal/model"
	"memo-service/internal/view"
)

// DateFormat формат дат в списке
const DateFormat = "2006/01/02 15:04"

const (
	listWidth  = 32
	minHeight  = 8
	untitled   = "(untitled)"
	emptyHint  = "No notes yet. Press n to create one."
	helpList   = "n new • d delete • enter edit • tab panes • q quit"
	helpEditor = "ctrl+s save • esc back • tab field • ctrl+c quit"
)

type focus int

const (
	focusList focus = iota
	focusTitle
	focusContent
)

// changedMsg хранилище сообщило о внешнем изменении
type changedMsg struct{}

var errEditedNoteRemoved = errors.New("note was deleted elsewhere, changes discarded")

// Model модель bubbletea
type Model struct {
	ctx     context.Context
	ctrl    *view.Controller
	changes <-chan struct{}
	styles  Styles

	title   textinput.Model
	content textarea.Model

	focus   focus
	editing string // ID заметки, открытой в редакторе
	cursor  int
	width  int
	height int
	err    error
}

// New создает модель. Контроллер должен быть уже загружен.
// changes может быть nil, тогда внешние изменения не отслеживаются.
func New(ctx context.Context, ctrl *view.Controller, changes <-chan struct{}) *Model {
	title := textinput.New()
	title.Placeholder = model.DefaultTitle
	// Длина не обрезается: заметку могли сохранить с длинным заголовком через API
	title.CharLimit = 0
	title.Prompt = ""

	content := textarea.New()
	content.Placeholder = "..."
	content.CharLimit = 0
	content.ShowLineNumbers = false

	m := &Model{
		ctx:     ctx,
		ctrl:    ctrl,
		changes: changes,
		styles:  DefaultStyles(),
		title:   title,
		content: content,
	}
	m.syncCursor()
	m.loadEditor()
	return m
}

// Run загружает заметки и запускает интерфейс до выхода пользователя
func Run(ctx context.Context, ctrl *view.Controller, changes <-chan struct{}, opts ...tea.ProgramOption) error {
	if err := ctrl.Load(ctx); err != nil {
		return fmt.Errorf("load notes: %w", err)
	}

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(ctx, ctrl, changes), opts...).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case changedMsg:
		m.reload()
		return m, m.waitForChange()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.focus != focusList {
				m.save()
			}
			return m, tea.Quit
		}
		if m.focus == focusList {
			return m.updateList(msg)
		}
		return m.updateEditor(msg)
	}

	return m.forwardToEditor(msg)
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	notes := m.ctrl.Notes()

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.previewCursor()
		}
	case "down", "j":
		if m.cursor < len(notes)-1 {
			m.cursor++
			m.previewCursor()
		}
	case "n":
		if _, err := m.ctrl.Create(m.ctx); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.syncCursor()
		m.loadEditor()
		return m, m.focusEditor(focusTitle)
	case "d":
		if len(notes) == 0 {
			return m, nil
		}
		if err := m.ctrl.Delete(m.ctx, notes[m.cursor].ID); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.syncCursor()
		m.loadEditor()
		m.keepListVisible()
	case "enter":
		if len(notes) == 0 {
			return m, nil
		}
		m.ctrl.Select(notes[m.cursor].ID)
		m.loadEditor()
		return m, m.focusEditor(focusTitle)
	case "tab":
		if !m.ctrl.IsNarrow() {
			return m, nil
		}
		if len(notes) == 0 {
			m.ctrl.ToggleSidebar()
			return m, nil
		}
		// на узком экране выбор заметки открывает редактор
		m.ctrl.Select(notes[m.cursor].ID)
		m.loadEditor()
		return m, m.focusEditor(focusTitle)
	}

	return m, nil
}

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.save()
		return m, nil
	case "esc":
		m.save()
		m.blurEditor()
		m.keepListVisible()
		return m, nil
	case "tab":
		if m.focus == focusTitle {
			return m, m.focusEditor(focusContent)
		}
		return m, m.focusEditor(focusTitle)
	}

	return m.forwardToEditor(msg)
}

func (m *Model) forwardToEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
	case focusContent:
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

// save сохраняет редактор, если значения изменились
func (m *Model) save() {
	selected, ok := m.ctrl.Selected()
	if !ok || selected.ID != m.editing {
		return
	}
	if selected.Title == m.title.Value() && selected.Content == m.content.Value() {
		return
	}

	if err := m.ctrl.Update(m.ctx, m.title.Value(), m.content.Value()); err != nil {
		m.err = err
		return
	}
	m.err = nil
}

func (m *Model) reload() {
	if err := m.ctrl.Reload(m.ctx); err != nil {
		m.err = err
		return
	}
	m.syncCursor()

	if m.focus != focusList {
		if m.ctrl.SelectedID() == m.editing {
			// Не затираем несохраненный ввод
			return
		}
		// Редактируемую заметку удалили: ввод относится к ней, а не к новой выбранной
		m.blurEditor()
		m.err = errEditedNoteRemoved
	}
	m.loadEditor()
	m.keepListVisible()
}

// keepListVisible при фокусе на списке узкий экран продолжает показывать список
func (m *Model) keepListVisible() {
	if m.ctrl.IsNarrow() && !m.ctrl.SidebarVisible() {
		m.ctrl.ToggleSidebar()
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = max(height, minHeight)
	m.ctrl.Resize(width)
	if m.focus == focusList {
		m.keepListVisible()
	}

	editorWidth := width - 4
	if !m.ctrl.IsNarrow() {
		editorWidth -= listWidth + 4
	}
	editorWidth = max(editorWidth, 10)

	m.title.Width = editorWidth
	m.content.SetWidth(editorWidth)
	m.content.SetHeight(max(m.height-8, 3))
}

// previewCursor на широком экране редактор показывает заметку под курсором
func (m *Model) previewCursor() {
	if m.ctrl.IsNarrow() {
		return
	}
	notes := m.ctrl.Notes()
	m.ctrl.Select(notes[m.cursor].ID)
	m.loadEditor()
}

func (m *Model) syncCursor() {
	notes := m.ctrl.Notes()
	for i, n := range notes {
		if n.ID == m.ctrl.SelectedID() {
			m.cursor = i
			return
		}
	}
	m.cursor = min(m.cursor, max(len(notes)-1, 0))
}

func (m *Model) loadEditor() {
	selected, _ := m.ctrl.Selected()
	m.title.SetValue(selected.Title)
	m.content.SetValue(selected.Content)
}

func (m *Model) focusEditor(f focus) tea.Cmd {
	m.focus = f
	m.editing = m.ctrl.SelectedID()
	if f == focusTitle {
		m.content.Blur()
		return m.title.Focus()
	}
	m.title.Blur()
	return m.content.Focus()
}

func (m *Model) blurEditor() {
	m.focus = focusList
	m.title.Blur()
	m.content.Blur()
}

func (m *Model) View() string {
	var panes []string
	if m.ctrl.ListVisible() {
		panes = append(panes, m.listView())
	}
	if m.ctrl.EditorVisible() {
		panes = append(panes, m.editorView())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, panes...),
		m.statusView(),
	)
}

func (m *Model) listView() string {
	style := m.styles.Pane
	if m.focus == focusList {
		style = m.styles.ActivePane
	}
	width := listWidth
	if m.ctrl.IsNarrow() {
		width = max(m.width-4, 10)
	}

	notes := m.ctrl.Notes()
	if len(notes) == 0 {
		return style.Width(width).Render(m.styles.Hint.Render(emptyHint))
	}

	var b strings.Builder
	for i, n := range notes {
		title := n.Title
		if title == "" {
			title = untitled
		}
		itemStyle := m.styles.Item
		prefix := "  "
		if i == m.cursor {
			itemStyle = m.styles.Selected
			prefix = "> "
		}
		b.WriteString(itemStyle.Render(prefix + truncate(title, width-2)))
		b.WriteString("\n  ")
		b.WriteString(m.styles.Date.Render(n.UpdatedAt.Local().Format(DateFormat)))
		if i < len(notes)-1 {
			b.WriteString("\n")
		}
	}

	return style.Width(width).Render(b.String())
}

func (m *Model) editorView() string {
	style := m.styles.Pane
	if m.focus != focusList {
		style = m.styles.ActivePane
	}

	if _, ok := m.ctrl.Selected(); !ok {
		return style.Render(m.styles.Hint.Render(emptyHint))
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.EditorLabel.Render("Title"),
		m.title.View(),
		"",
		m.styles.EditorLabel.Render("Content"),
		m.content.View(),
	))
}

func (m *Model) statusView() string {
	help := helpList
	if m.focus != focusList {
		help = helpEditor
	}

	line := m.styles.Help.Render(help)
	switch {
	case m.err != nil:
		line = m.styles.Error.Render("error: "+m.err.Error()) + "  " + line
	case m.ctrl.Warning() != "":
		line = m.styles.Warning.Render("not saved: "+m.ctrl.Warning()) + "  " + line
	}
	return line
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
