package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/model"
)

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 4, 0, 0, time.UTC)
}

func task(key calendar.Key, done bool) model.Task {
	return model.Task{ID: model.NewPendingID(), Title: "t", Date: key, Completed: done}
}

func TestDayStateIncompleteWithHalfDone(t *testing.T) {
	key := calendar.Key("2024-06-10")
	agg := New(model.Collection{key: {task(key, true), task(key, false)}}, calendar.SundayWeek)

	now := at(2024, time.June, 12)
	assert.Equal(t, model.DayStateIncomplete, agg.DayState(key, now))
	assert.Equal(t, 50, agg.DayProgress(key))
}

func TestDayStateTodayWithoutTasksIsNotFuture(t *testing.T) {
	agg := New(nil, calendar.SundayWeek)
	assert.Equal(t, model.DayStateNoTasks, agg.DayState("2024-06-10", at(2024, time.June, 10)))
	assert.Equal(t, model.DayStateFuture, agg.DayState("2024-06-11", at(2024, time.June, 10)))
}

func TestDayStateFutureWinsOverTasks(t *testing.T) {
	key := calendar.Key("2024-06-20")
	agg := New(model.Collection{key: {task(key, true)}}, calendar.SundayWeek)
	assert.Equal(t, model.DayStateFuture, agg.DayState(key, at(2024, time.June, 10)))
	assert.Equal(t, model.DayStateComplete, agg.DayState(key, at(2024, time.June, 20)))
}

func TestMissedDaysStopsAtToday(t *testing.T) {
	c := model.Collection{}
	for d := 1; d <= 5; d++ {
		key := calendar.NewDate(2024, time.June, d).Key()
		c.Put(key, []model.Task{task(key, d%2 == 0)})
	}
	future := calendar.Key("2024-06-09")
	c.Put(future, []model.Task{task(future, false)})

	agg := New(c, calendar.SundayWeek)
	assert.Equal(t, []calendar.Key{"2024-06-06"}, agg.MissedDays(at(2024, time.June, 6)))
}

func TestMissedDaysEmptyMonthStartsAtFirst(t *testing.T) {
	agg := New(nil, calendar.SundayWeek)
	got := agg.MissedDays(at(2024, time.February, 3))
	assert.Equal(t, []calendar.Key{"2024-02-01", "2024-02-02", "2024-02-03"}, got)
}

func TestWeeklyStatsUsesWeekStart(t *testing.T) {
	sunday := calendar.Key("2024-06-09")
	saturday := calendar.Key("2024-06-15")
	nextSunday := calendar.Key("2024-06-16")
	c := model.Collection{
		sunday:     {task(sunday, true), task(sunday, false)},
		saturday:   {task(saturday, true)},
		nextSunday: {task(nextSunday, true)},
	}
	now := at(2024, time.June, 12)

	agg := New(c, calendar.SundayWeek)
	assert.Equal(t, Counts{Completed: 2, Total: 3}, agg.WeeklyStats(now))
	assert.Equal(t, 67, agg.WeeklyCompletionRate(now))

	monday, err := calendar.ParseWeekStart("monday")
	require.NoError(t, err)
	agg = New(c, monday)
	assert.Equal(t, Counts{Completed: 2, Total: 2}, agg.WeeklyStats(now))
	assert.Equal(t, 100, agg.WeeklyCompletionRate(now))
}

func TestZeroDenominators(t *testing.T) {
	agg := New(model.Collection{}, calendar.SundayWeek)
	now := at(2024, time.June, 10)
	assert.Equal(t, 0, agg.WeeklyCompletionRate(now))
	assert.Equal(t, 0, agg.TodayProgress(now))
	assert.Equal(t, Totals{}, agg.LifetimeTotals())
}

func TestPercentRoundsOnce(t *testing.T) {
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 13, Percent(1, 8))
	assert.Equal(t, 0, Percent(3, 0))
}

func TestProgressMessage(t *testing.T) {
	assert.Equal(t, "Great job! All tasks completed!", ProgressMessage(100))
	assert.Equal(t, "No tasks added yet today", ProgressMessage(0))
	assert.Equal(t, "Keep going! You're making progress!", ProgressMessage(40))
}

func TestSummaryBundlesPanelNumbers(t *testing.T) {
	today := calendar.Key("2024-06-10")
	c := model.Collection{today: {task(today, true), task(today, true)}}
	s := New(c, calendar.SundayWeek).Summary(at(2024, time.June, 10))

	assert.Equal(t, today, s.Today)
	assert.Equal(t, model.DayStateComplete, s.TodayState)
	assert.Equal(t, 100, s.TodayProgress)
	assert.Equal(t, Totals{TotalTasks: 2, CompletedTasks: 2}, s.Lifetime)
	assert.Len(t, s.MissedDays, 9)
	assert.NotContains(t, s.MissedDays, today)
}

func genCollection(rt *rapid.T, month calendar.Date) model.Collection {
	c := model.Collection{}
	for _, d := range calendar.MonthDays(month) {
		n := rapid.IntRange(0, 3).Draw(rt, fmt.Sprintf("count-%d", d.Day))
		tasks := make([]model.Task, 0, n)
		for i := 0; i < n; i++ {
			tasks = append(tasks, task(d.Key(), rapid.Bool().Draw(rt, fmt.Sprintf("done-%d-%d", d.Day, i))))
		}
		c.Put(d.Key(), tasks)
	}
	return c
}

func TestAggregatorProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		month := calendar.NewDate(2024, time.Month(rapid.IntRange(1, 12).Draw(rt, "month")), 1)
		c := genCollection(rt, month)
		day := rapid.IntRange(1, calendar.DaysIn(month.Year, month.Month)).Draw(rt, "today")
		now := calendar.NewDate(month.Year, month.Month, day).Time(time.UTC)
		today := calendar.DateOf(now)
		agg := New(c, calendar.SundayWeek)

		for _, key := range agg.MissedDays(now) {
			d, err := key.Date()
			if err != nil {
				rt.Fatalf("bad key %s: %v", key, err)
			}
			if d.After(today) {
				rt.Fatalf("missed day %s is after today %s", key, today)
			}
			if len(c.Day(key)) != 0 {
				rt.Fatalf("missed day %s has tasks", key)
			}
		}

		for _, d := range calendar.MonthDays(month) {
			state := agg.DayState(d.Key(), now)
			completed, total := model.Counts(c.Day(d.Key()))
			var want model.DayState
			switch {
			case d.After(today):
				want = model.DayStateFuture
			case total == 0:
				want = model.DayStateNoTasks
			case completed == total:
				want = model.DayStateComplete
			default:
				want = model.DayStateIncomplete
			}
			if state != want {
				rt.Fatalf("day %s: state %s, want %s", d, state, want)
			}
		}

		rate := agg.WeeklyCompletionRate(now)
		week := agg.WeeklyStats(now)
		if week.Total == 0 && rate != 0 {
			rt.Fatalf("empty week rate %d, want 0", rate)
		}
		if rate < 0 || rate > 100 {
			rt.Fatalf("rate %d out of range", rate)
		}
	})
}
