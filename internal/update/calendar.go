package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/stats"
	"github.com/sandeepkv93/daygrid/internal/views"
)

const missedDaysShown = 5

func (m Model) handleGridKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.selectDate(m.Selected.AddDays(-1))
	case "right", "l":
		m.selectDate(m.Selected.AddDays(1))
	case "up", "k":
		m.selectDate(m.Selected.AddDays(-7))
	case "down", "j":
		m.selectDate(m.Selected.AddDays(7))
	case "[", "p":
		m.shiftMonth(-1)
	case "]", "n":
		m.shiftMonth(1)
	case "g":
		m.selectDate(calendar.Today(m.Clock))
	case "enter":
		m = m.openEditor(m.Selected)
		return m, textinput.Blink
	}
	return m, nil
}

// selectDate moves the selection and follows it into another month.
func (m *Model) selectDate(d calendar.Date) {
	m.Selected = d
	if !d.SameMonth(m.Month) {
		m.Month = d.FirstOfMonth()
	}
}

// shiftMonth pages the grid. The selected day keeps its day of month, clamped
// to the length of the new month.
func (m *Model) shiftMonth(n int) {
	m.Month = calendar.AddMonths(m.Month, n)
	m.Selected = calendar.AddMonths(m.Selected, n)
	if !m.Selected.SameMonth(m.Month) {
		m.Selected = m.Month
	}
}

func (m Model) monthTitle() string {
	return fmt.Sprintf("%s %d", m.Month.Month, m.Month.Year)
}

func (m Model) gridData(agg stats.Aggregator, now time.Time) views.GridData {
	today := calendar.DateOf(now)
	days := calendar.MonthGrid(m.Month, m.Week)
	cells := make([]views.CellData, 0, len(days))
	for _, d := range days {
		key := d.Key()
		cells = append(cells, views.CellData{
			Day:      d.Day,
			State:    string(agg.DayState(key, now)),
			InMonth:  d.SameMonth(m.Month),
			Today:    d.Equal(today),
			Selected: d.Equal(m.Selected),
			Tasks:    agg.DayCounts(key).Total,
		})
	}
	return views.GridData{
		Title:   m.monthTitle(),
		Headers: m.Week.Headers(),
		Cells:   cells,
		Dark:    m.dark(),
	}
}

func (m Model) sidePanelData(summary stats.Summary) views.SidePanelData {
	shown := summary.MissedDays
	more := 0
	if len(shown) > missedDaysShown {
		more = len(shown) - missedDaysShown
		shown = shown[:missedDaysShown]
	}
	missed := make([]string, 0, len(shown))
	for _, key := range shown {
		if d, err := key.Date(); err == nil {
			missed = append(missed, d.Long())
			continue
		}
		missed = append(missed, string(key))
	}
	return views.SidePanelData{
		WeekCompleted:  summary.Week.Completed,
		WeekTotal:      summary.Week.Total,
		WeekRate:       summary.WeekRate,
		WeekBar:        m.bar.ViewAs(float64(summary.WeekRate) / 100),
		MissedDays:     missed,
		MissedMore:     more,
		TotalTasks:     summary.Lifetime.TotalTasks,
		CompletedTasks: summary.Lifetime.CompletedTasks,
		Dark:           m.dark(),
	}
}
