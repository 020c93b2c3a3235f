package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daygrid/internal/scheduler"
	"github.com/sandeepkv93/daygrid/internal/stats"
	"github.com/sandeepkv93/daygrid/internal/views"
)

const statusTTL = 4 * time.Second

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadCmd(m.Store), m.syncSpinner.Tick}
	if m.Scheduler != nil {
		now := m.Clock.Now()
		m.schedule(scheduler.Rollover(now))
		if m.Nudge.Enabled {
			m.schedule(scheduler.Nudge(now, m.Nudge.Hour, m.Nudge.Minute))
		}
		cmds = append(cmds, waitForEventCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		m.Height = typed.Height
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Editor.Active {
			return m.handleEditorKey(typed)
		}

		switch typed.String() {
		case "q":
			m.Quitting = true
			return m, tea.Quit
		case "?":
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "/":
			return m.openPalette(), nil
		case "t":
			if err := m.setTheme(m.Theme.Toggle()); err != nil {
				m.fail(fmt.Errorf("theme not saved: %w", err))
				return m, nil
			}
			m.Status = StatusBar{Text: "theme: " + string(m.Theme)}
			return m, clearStatusAfter(statusTTL)
		case "r":
			return m, m.startSync(loadCmd(m.Store))
		}
		return m.handleGridKey(typed)
	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.syncSpinner, cmd = m.syncSpinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case LoadedMsg:
		m.finishSync()
		if typed.Err != nil {
			m.fail(typed.Err)
			return m, nil
		}
		m.resolveEditing()
		return m, nil
	case CommittedMsg:
		m.finishSync()
		if typed.Err != nil {
			m.fail(typed.Err)
			return m, nil
		}
		if m.Editor.Active {
			if n := len(m.Store.Day(m.Editor.Day.Key())); m.Editor.Cursor >= n {
				m.Editor.Cursor = max(n-1, 0)
			}
		}
		m.resolveEditing()
		return m, nil
	case SchedulerEventMsg:
		return m.onSchedulerEvent(typed.Event)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		if !m.Status.IsError {
			m.Status = StatusBar{}
		}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.fail(typed.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	now := m.Clock.Now()
	agg := stats.New(m.Store.Snapshot(), m.Week)
	summary := agg.Summary(now)

	header := fmt.Sprintf("daygrid | today %s %d%% | %s",
		m.bar.ViewAs(float64(summary.TodayProgress)/100),
		summary.TodayProgress,
		stats.ProgressMessage(summary.TodayProgress),
	)
	if m.spinnerActive {
		header += " | sync " + m.syncSpinner.View()
	}

	var overlay []string
	if m.Editor.Active {
		overlay = append(overlay, views.RenderEditor(m.editorData(agg)))
	}
	if p := views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()); p != "" {
		overlay = append(overlay, p)
	}
	if h := m.renderHelpIfVisible(); h != "" {
		overlay = append(overlay, h)
	}

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "error: " + m.Status.Text
		} else {
			status = m.Status.Text
		}
	}

	return views.RenderApp(views.AppData{
		Header:     header,
		Grid:       views.RenderMonthGrid(m.gridData(agg, now)),
		SidePanel:  views.RenderSidePanel(m.sidePanelData(summary)),
		Overlay:    strings.Join(overlay, "\n"),
		StatusLine: status,
		IsError:    m.Status.IsError,
		Footer:     "keys: hjkl move | [ ] month | enter day | g today | t theme | / cmd | ? help | q quit",
		Dark:       m.dark(),
	})
}
