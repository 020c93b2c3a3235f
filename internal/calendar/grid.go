package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Week fixes the first day of a calendar week. Every grid and weekly
// statistic in one process must use the same Week.
type Week struct {
	Start time.Weekday
}

var SundayWeek = Week{Start: time.Sunday}

func ParseWeekStart(raw string) (Week, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "sun", "sunday":
		return Week{Start: time.Sunday}, nil
	case "mon", "monday":
		return Week{Start: time.Monday}, nil
	default:
		return Week{}, fmt.Errorf("calendar: unsupported week start %q", raw)
	}
}

func (w Week) StartOf(d Date) Date {
	offset := (int(d.Weekday()) - int(w.Start) + 7) % 7
	return d.AddDays(-offset)
}

func (w Week) EndOf(d Date) Date {
	return w.StartOf(d).AddDays(6)
}

// Headers returns the short weekday names in grid column order.
func (w Week) Headers() []string {
	out := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		day := time.Weekday((int(w.Start) + i) % 7)
		out = append(out, day.String()[:3])
	}
	return out
}

// MonthGrid returns every day from the start of the week containing the
// first of ref's month through the end of the week containing its last day.
func MonthGrid(ref Date, week Week) []Date {
	start := week.StartOf(ref.FirstOfMonth())
	end := week.EndOf(ref.LastOfMonth())
	return Range(start, end)
}

func WeekOf(d Date, week Week) []Date {
	return Range(week.StartOf(d), week.EndOf(d))
}

func MonthDays(d Date) []Date {
	return Range(d.FirstOfMonth(), d.LastOfMonth())
}

// Range returns the inclusive sequence of days from start to end.
func Range(start, end Date) []Date {
	if end.Before(start) {
		return nil
	}
	out := make([]Date, 0, 42)
	for cur := start; !cur.After(end); cur = cur.AddDays(1) {
		out = append(out, cur)
	}
	return out
}

// AddMonths shifts d by n calendar months, clamping the day to the length of
// the target month (Jan 31 + 1 month is the last day of February).
func AddMonths(d Date, n int) Date {
	total := d.Year*12 + int(d.Month-1) + n
	year := total / 12
	month := time.Month(total%12 + 1)
	if total < 0 && total%12 != 0 {
		year--
		month = time.Month(total%12 + 13)
	}
	day := d.Day
	if last := DaysIn(year, month); day > last {
		day = last
	}
	return Date{Year: year, Month: month, Day: day}
}

func NextMonth(d Date) Date { return AddMonths(d, 1) }
func PrevMonth(d Date) Date { return AddMonths(d, -1) }
