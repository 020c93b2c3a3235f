package update

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/model"
	"github.com/sandeepkv93/daygrid/internal/scheduler"
	"github.com/sandeepkv93/daygrid/internal/stats"
	"github.com/sandeepkv93/daygrid/internal/tasks"
)

func loadCmd(store *tasks.Store) tea.Cmd {
	return func() tea.Msg {
		return LoadedMsg{Err: store.Load(context.Background())}
	}
}

func commitCmd(store *tasks.Store, key calendar.Key) tea.Cmd {
	return func() tea.Msg {
		return CommittedMsg{Key: key, Err: store.Commit(context.Background(), key)}
	}
}

func replaceDayCmd(store *tasks.Store, key calendar.Key, day []model.Task) tea.Cmd {
	return func() tea.Msg {
		return CommittedMsg{Key: key, Err: store.ReplaceDay(context.Background(), key, day)}
	}
}

func waitForEventCmd(ch <-chan scheduler.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return SchedulerEventMsg{Event: ev}
	}
}

// startSync counts cmd as in flight and starts the spinner if it is idle.
func (m *Model) startSync(cmd tea.Cmd) tea.Cmd {
	m.inFlight++
	if m.spinnerActive {
		return cmd
	}
	m.spinnerActive = true
	return tea.Batch(cmd, m.syncSpinner.Tick)
}

func (m *Model) finishSync() {
	if m.inFlight > 0 {
		m.inFlight--
	}
	if m.inFlight == 0 {
		m.spinnerActive = false
	}
}

func (m *Model) schedule(ev scheduler.Event) {
	if m.Scheduler == nil {
		return
	}
	if err := m.Scheduler.Schedule(ev); err != nil {
		m.log.Warn().Err(err).Str("kind", string(ev.Kind)).Msg("schedule failed")
	}
}

func (m Model) onSchedulerEvent(ev scheduler.Event) (Model, tea.Cmd) {
	now := m.Clock.Now()
	switch ev.Kind {
	case scheduler.KindRollover:
		previous := m.Today
		m.Today = calendar.DateOf(now)
		if m.Selected.Equal(previous) {
			m.Selected = m.Today
			m.Month = m.Today.FirstOfMonth()
		}
		m.schedule(scheduler.Rollover(now))
		m.log.Info().Str("today", m.Today.String()).Msg("day rolled over")
	case scheduler.KindNudge:
		agg := stats.New(m.Store.Snapshot(), m.Week)
		key := calendar.DateOf(now).Key()
		if agg.DayState(key, now) != model.DayStateComplete {
			c := agg.DayCounts(key)
			m.Status = StatusBar{Text: fmt.Sprintf("reminder: %d of %d tasks done today", c.Completed, c.Total)}
		}
		if m.Nudge.Enabled {
			m.schedule(scheduler.Nudge(now, m.Nudge.Hour, m.Nudge.Minute))
		}
	}
	if m.Scheduler != nil {
		return m, waitForEventCmd(m.Scheduler.C())
	}
	return m, nil
}

// describeError turns store errors into a status line.
func describeError(err error) string {
	var verr *tasks.ValidationError
	var ferr *tasks.FetchError
	var werr *tasks.WriteError
	switch {
	case errors.As(err, &verr):
		if errors.Is(err, model.ErrEmptyTitle) {
			return "task title cannot be empty"
		}
		return fmt.Sprintf("invalid %s: %v", verr.Field, verr.Err)
	case errors.As(err, &ferr):
		return fmt.Sprintf("could not load tasks: %v", ferr.Err)
	case errors.As(err, &werr):
		return fmt.Sprintf("could not save %s, reloaded from backend: %v", werr.Key, werr.Err)
	default:
		return err.Error()
	}
}

func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: describeError(err), IsError: true}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return ClearStatusMsg{} })
}
