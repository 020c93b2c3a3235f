package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/daygrid/internal/calendar"
)

var (
	ErrEmptyTitle   = errors.New("model: task title is required")
	ErrInvalidState = errors.New("model: invalid day state")
)

type Task struct {
	ID          ID
	Title       string
	Description string
	Completed   bool
	Date        calendar.Key
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if _, err := calendar.ParseKey(string(t.Date)); err != nil {
		return fmt.Errorf("model: task date: %w", err)
	}
	return nil
}

type DayState string

const (
	DayStateNoTasks    DayState = "no-tasks"
	DayStateFuture     DayState = "future"
	DayStateIncomplete DayState = "incomplete"
	DayStateComplete   DayState = "complete"
)

func (s DayState) IsValid() bool {
	switch s {
	case DayStateNoTasks, DayStateFuture, DayStateIncomplete, DayStateComplete:
		return true
	default:
		return false
	}
}

func ParseDayState(raw string) (DayState, error) {
	s := DayState(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidState, raw)
	}
	return s, nil
}

// Counts returns how many of tasks are completed and how many there are.
func Counts(tasks []Task) (completed, total int) {
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return completed, len(tasks)
}
