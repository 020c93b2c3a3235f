package stats

import (
	"math"
	"time"

	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/model"
)

type Counts struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type Totals struct {
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
}

// Summary is everything the side panel and the stats command show for one
// instant.
type Summary struct {
	Today         calendar.Key   `json:"today"`
	TodayState    model.DayState `json:"today_state"`
	TodayProgress int            `json:"today_progress"`
	Week          Counts         `json:"week"`
	WeekRate      int            `json:"week_rate"`
	MissedDays    []calendar.Key `json:"missed_days"`
	Lifetime      Totals         `json:"lifetime"`
}

// Aggregator derives statistics from one collection snapshot. It never
// mutates the collection it was built from.
type Aggregator struct {
	tasks model.Collection
	week  calendar.Week
}

func New(tasks model.Collection, week calendar.Week) Aggregator {
	if tasks == nil {
		tasks = model.Collection{}
	}
	return Aggregator{tasks: tasks, week: week}
}

func (a Aggregator) DayState(key calendar.Key, now time.Time) model.DayState {
	day, err := key.Date()
	if err != nil {
		return model.DayStateNoTasks
	}
	if day.After(calendar.DateOf(now)) {
		return model.DayStateFuture
	}
	completed, total := model.Counts(a.tasks.Day(key))
	switch {
	case total == 0:
		return model.DayStateNoTasks
	case completed == total:
		return model.DayStateComplete
	default:
		return model.DayStateIncomplete
	}
}

func (a Aggregator) DayCounts(key calendar.Key) Counts {
	completed, total := model.Counts(a.tasks.Day(key))
	return Counts{Completed: completed, Total: total}
}

func (a Aggregator) DayProgress(key calendar.Key) int {
	c := a.DayCounts(key)
	return Percent(c.Completed, c.Total)
}

func (a Aggregator) WeeklyStats(now time.Time) Counts {
	var out Counts
	for _, d := range calendar.WeekOf(calendar.DateOf(now), a.week) {
		c := a.DayCounts(d.Key())
		out.Completed += c.Completed
		out.Total += c.Total
	}
	return out
}

func (a Aggregator) WeeklyCompletionRate(now time.Time) int {
	c := a.WeeklyStats(now)
	return Percent(c.Completed, c.Total)
}

// MissedDays lists the days of now's month, up to and including today, that
// have no tasks.
func (a Aggregator) MissedDays(now time.Time) []calendar.Key {
	today := calendar.DateOf(now)
	out := []calendar.Key{}
	for _, d := range calendar.Range(today.FirstOfMonth(), today) {
		if len(a.tasks.Day(d.Key())) == 0 {
			out = append(out, d.Key())
		}
	}
	return out
}

func (a Aggregator) TodayProgress(now time.Time) int {
	return a.DayProgress(calendar.DateOf(now).Key())
}

func (a Aggregator) LifetimeTotals() Totals {
	var out Totals
	for _, day := range a.tasks {
		completed, total := model.Counts(day)
		out.CompletedTasks += completed
		out.TotalTasks += total
	}
	return out
}

func (a Aggregator) Summary(now time.Time) Summary {
	todayKey := calendar.DateOf(now).Key()
	return Summary{
		Today:         todayKey,
		TodayState:    a.DayState(todayKey, now),
		TodayProgress: a.TodayProgress(now),
		Week:          a.WeeklyStats(now),
		WeekRate:      a.WeeklyCompletionRate(now),
		MissedDays:    a.MissedDays(now),
		Lifetime:      a.LifetimeTotals(),
	}
}

// Percent is round(100*completed/total), or 0 when total is 0.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

func ProgressMessage(pct int) string {
	switch {
	case pct >= 100:
		return "Great job! All tasks completed!"
	case pct <= 0:
		return "No tasks added yet today"
	default:
		return "Keep going! You're making progress!"
	}
}
