package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const keyLayout = "2006-01-02"

var ErrInvalidKey = errors.New("calendar: invalid date key")

// Key is the canonical YYYY-MM-DD form of a calendar day. Keys sort
// lexicographically in chronological order.
type Key string

func (k Key) String() string { return string(k) }

func (k Key) Date() (Date, error) {
	return ParseKey(string(k))
}

// Date is a civil calendar day with no time-of-day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

func ParseKey(raw string) (Date, error) {
	trimmed := strings.TrimSpace(raw)
	t, err := time.Parse(keyLayout, trimmed)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidKey, raw)
	}
	return DateOf(t), nil
}

func (d Date) Key() Key {
	return Key(fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day))
}

func (d Date) String() string { return string(d.Key()) }

// Time returns noon of d in loc. Noon keeps day arithmetic clear of DST edges.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, loc)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool  { return d.Compare(other) == 0 }

func (d Date) SameMonth(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month
}

func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

func (d Date) LastOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: DaysIn(d.Year, d.Month)}
}

// Long renders d the way the day editor titles it, e.g. "June 10, 2024".
func (d Date) Long() string {
	return d.Time(time.UTC).Format("January 2, 2006")
}

// Short renders d as "Jun 10".
func (d Date) Short() string {
	return d.Time(time.UTC).Format("Jan 2")
}

func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
