package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/model"
	"github.com/sandeepkv93/daygrid/internal/stats"
	"github.com/sandeepkv93/daygrid/internal/views"
)

func (m Model) openEditor(day calendar.Date) Model {
	m.Editor = EditorState{Active: true, Day: day}
	m.editorInput.SetValue("")
	m.editorInput.Focus()
	return m
}

func (m Model) closeEditor() Model {
	m.Editor = EditorState{}
	m.editorInput.SetValue("")
	m.editorInput.Blur()
	return m
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Editor.ListFocus {
		return m.handleEditorListKey(msg)
	}
	switch msg.String() {
	case "esc":
		if !m.Editor.Editing.IsZero() {
			m.Editor.Editing = model.ID{}
			m.editorInput.SetValue("")
			return m, nil
		}
		return m.closeEditor(), nil
	case "tab":
		m.Editor.ListFocus = true
		m.editorInput.Blur()
		return m, nil
	case "enter":
		return m.submitEditorInput()
	default:
		var cmd tea.Cmd
		m.editorInput, cmd = m.editorInput.Update(msg)
		return m, cmd
	}
}

func (m Model) handleEditorListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := m.Editor.Day.Key()
	day := m.Store.Day(key)
	switch msg.String() {
	case "esc":
		return m.closeEditor(), nil
	case "tab":
		m.Editor.ListFocus = false
		m.editorInput.Focus()
	case "up", "k":
		if m.Editor.Cursor > 0 {
			m.Editor.Cursor--
		}
	case "down", "j":
		if m.Editor.Cursor < len(day)-1 {
			m.Editor.Cursor++
		}
	case " ", "x":
		if len(day) == 0 {
			return m, nil
		}
		if _, err := m.Store.Toggle(key, day[m.Editor.Cursor].ID); err != nil {
			m.fail(err)
			return m, nil
		}
		return m, m.startSync(commitCmd(m.Store, key))
	case "d":
		if len(day) == 0 {
			return m, nil
		}
		if err := m.Store.Delete(key, day[m.Editor.Cursor].ID); err != nil {
			m.fail(err)
			return m, nil
		}
		if m.Editor.Cursor >= len(day)-1 && m.Editor.Cursor > 0 {
			m.Editor.Cursor--
		}
		return m, m.startSync(commitCmd(m.Store, key))
	case "e":
		if len(day) == 0 {
			return m, nil
		}
		t := day[m.Editor.Cursor]
		m.Editor.Editing = t.ID
		m.Editor.ListFocus = false
		text := t.Title
		if t.Description != "" {
			text += " | " + t.Description
		}
		m.editorInput.SetValue(text)
		m.editorInput.Focus()
	}
	return m, nil
}

func (m Model) submitEditorInput() (Model, tea.Cmd) {
	key := m.Editor.Day.Key()
	title, description := splitEntry(m.editorInput.Value())
	if m.Editor.Editing.IsZero() {
		if _, err := m.Store.Add(key, title, description); err != nil {
			m.fail(err)
			return m, nil
		}
	} else {
		if _, err := m.Store.Edit(key, m.Editor.Editing, title, description); err != nil {
			m.fail(err)
			return m, nil
		}
		m.Editor.Editing = model.ID{}
	}
	m.editorInput.SetValue("")
	m.Status = StatusBar{}
	return m, m.startSync(commitCmd(m.Store, key))
}

// splitEntry reads "title | description" from the editor input.
// resolveEditing keeps the edit target valid after a reload replaced pending
// ids with durable ones. The cursor does not move while the input has focus.
func (m *Model) resolveEditing() {
	if !m.Editor.Active || m.Editor.Editing.IsZero() {
		return
	}
	day := m.Store.Day(m.Editor.Day.Key())
	for _, t := range day {
		if t.ID == m.Editor.Editing {
			return
		}
	}
	if m.Editor.Cursor < len(day) {
		m.Editor.Editing = day[m.Editor.Cursor].ID
		return
	}
	m.Editor.Editing = model.ID{}
}

func splitEntry(raw string) (title, description string) {
	title, description, _ = strings.Cut(raw, "|")
	return strings.TrimSpace(title), strings.TrimSpace(description)
}

func (m Model) editorData(agg stats.Aggregator) views.EditorData {
	key := m.Editor.Day.Key()
	day := m.Store.Day(key)
	counts := agg.DayCounts(key)
	pct := stats.Percent(counts.Completed, counts.Total)

	items := make([]views.EditorTaskData, 0, len(day))
	for _, t := range day {
		items = append(items, views.EditorTaskData{Title: t.Title, Description: t.Description, Completed: t.Completed})
	}
	cursor := -1
	description := ""
	if m.Editor.ListFocus && m.Editor.Cursor < len(day) {
		cursor = m.Editor.Cursor
		description = views.RenderMarkdown(day[cursor].Description, m.dark())
	}
	mode := "add"
	if !m.Editor.Editing.IsZero() {
		mode = "edit"
	}
	return views.EditorData{
		Title:           "Tasks for " + m.Editor.Day.Long(),
		Tasks:           items,
		Cursor:          cursor,
		Mode:            mode,
		InputView:       m.editorInput.View(),
		Completed:       counts.Completed,
		Total:           counts.Total,
		Progress:        pct,
		ProgressView:    m.bar.ViewAs(float64(pct) / 100),
		DescriptionView: description,
		Dark:            m.dark(),
	}
}
