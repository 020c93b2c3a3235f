package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/commands"
)

func (m Model) openPalette() Model {
	m.Palette = PaletteState{Active: true}
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	return m
}

func (m Model) closePalette() Model {
	m.Palette = PaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Goto: func(g commands.GotoArgs) (commands.Result, error) {
			m.Month = g.Date.FirstOfMonth()
			m.Selected = g.Date
			if g.HasDay {
				return commands.Result{Message: "selected " + g.Date.Long()}, nil
			}
			return commands.Result{Message: "showing " + m.monthTitle()}, nil
		},
		Today: func() (commands.Result, error) {
			m.selectDate(calendar.Today(m.Clock))
			return commands.Result{Message: "selected today"}, nil
		},
		Add: func(a commands.AddArgs) (commands.Result, error) {
			key := m.Selected.Key()
			if _, err := m.Store.Add(key, a.Title, ""); err != nil {
				return commands.Result{}, err
			}
			next = m.startSync(commitCmd(m.Store, key))
			return commands.Result{Message: fmt.Sprintf("added %q to %s", a.Title, m.Selected.Long())}, nil
		},
		Clear: func() (commands.Result, error) {
			key := m.Selected.Key()
			next = m.startSync(replaceDayCmd(m.Store, key, nil))
			return commands.Result{Message: "clearing " + m.Selected.Long()}, nil
		},
		Theme: func(t commands.ThemeArgs) (commands.Result, error) {
			theme := t.Theme
			if theme == "" {
				theme = m.Theme.Toggle()
			}
			if err := m.setTheme(theme); err != nil {
				return commands.Result{}, fmt.Errorf("theme %s applied but not saved: %w", theme, err)
			}
			return commands.Result{Message: "theme: " + string(theme)}, nil
		},
		Reload: func() (commands.Result, error) {
			next = m.startSync(loadCmd(m.Store))
			return commands.Result{Message: "reloading"}, nil
		},
	})
	if err != nil {
		m.log.Debug().Err(err).Str("command", raw).Msg("palette command failed")
		m.fail(err)
		return m, next
	}
	m.log.Debug().Str("command", raw).Msg("palette command")
	m.Status = StatusBar{Text: res.Message, IsError: false}
	return m, next
}
