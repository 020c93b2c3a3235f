package scheduler

import "time"

// NextMidnight is the first instant of the day after now, in now's location.
func NextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}

// NextAt is the next occurrence of hour:minute strictly after now.
func NextAt(now time.Time, hour, minute int) time.Time {
	y, m, d := now.Date()
	at := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	if !at.After(now) {
		at = time.Date(y, m, d+1, hour, minute, 0, 0, now.Location())
	}
	return at
}

// Rollover is the event for the next midnight after now.
func Rollover(now time.Time) Event {
	return Event{Kind: KindRollover, At: NextMidnight(now)}
}

func Nudge(now time.Time, hour, minute int) Event {
	return Event{Kind: KindNudge, At: NextAt(now, hour, minute)}
}
