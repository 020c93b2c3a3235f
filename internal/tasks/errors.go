package tasks

import (
	"errors"
	"fmt"

	"github.com/sandeepkv93/daygrid/internal/calendar"
)

var (
	ErrTaskNotFound = errors.New("tasks: task not found")
	ErrNoSession    = errors.New("tasks: no session user")
)

// FetchError means the full reload failed. The snapshot keeps its last good
// value.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("tasks: load failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// WriteError means pushing a day to the backend failed. The snapshot has
// already been reloaded when a WriteError is returned.
type WriteError struct {
	Op  string
	Key calendar.Key
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("tasks: %s %s failed: %v", e.Op, e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ValidationError rejects input before anything changes.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("tasks: invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
