package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("storage: not found")
	ErrConflict = errors.New("storage: row id already in use")
)

// Rows is the persistence contract the task store depends on. Every call is
// scoped to one owning user.
type Rows interface {
	SelectByOwner(ctx context.Context, userID string, filter RowFilter) ([]Row, error)
	DeleteByOwnerAndDate(ctx context.Context, userID, date string) (int64, error)
	BulkInsert(ctx context.Context, userID string, rows []Row) ([]Row, error)
}

// DayReplacer is implemented by stores that can swap a day's rows in one
// transaction.
type DayReplacer interface {
	ReplaceDay(ctx context.Context, userID, date string, rows []Row) ([]Row, error)
}
