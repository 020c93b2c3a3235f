package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/model"
	"github.com/sandeepkv93/daygrid/internal/storage"
)

type Backend interface {
	LoadAll(ctx context.Context, userID string) (model.Collection, error)
	ReplaceDay(ctx context.Context, userID string, key calendar.Key, tasks []model.Task) error
}

// MemoryBackend keeps every user's tasks in process memory.
type MemoryBackend struct {
	mu    sync.RWMutex
	users map[string]model.Collection
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{users: map[string]model.Collection{}}
}

func (m *MemoryBackend) LoadAll(_ context.Context, userID string) (model.Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[userID].Clone(), nil
}

func (m *MemoryBackend) ReplaceDay(_ context.Context, userID string, key calendar.Key, tasks []model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.users[userID]
	if !ok {
		c = model.Collection{}
		m.users[userID] = c
	}
	c.Put(key, tasks)
	return nil
}

// RowBackend adapts a row store to the day-oriented Backend contract.
type RowBackend struct {
	rows storage.Rows
	log  zerolog.Logger
}

func NewRowBackend(rows storage.Rows, logger zerolog.Logger) *RowBackend {
	return &RowBackend{rows: rows, log: logger}
}

func (b *RowBackend) LoadAll(ctx context.Context, userID string) (model.Collection, error) {
	rows, err := b.rows.SelectByOwner(ctx, userID, storage.RowFilter{})
	if err != nil {
		return nil, err
	}
	out := make(model.Collection)
	for _, row := range rows {
		task, convErr := taskFromRow(row)
		if convErr != nil {
			b.log.Warn().Err(convErr).Int64("row_id", row.ID).Msg("skipping unreadable row")
			continue
		}
		out.Append(task)
	}
	return out, nil
}

// ReplaceDay uses the store's transactional replace when it has one. Otherwise
// it deletes then inserts, and a failed insert leaves the day empty.
func (b *RowBackend) ReplaceDay(ctx context.Context, userID string, key calendar.Key, tasks []model.Task) error {
	rows := make([]storage.Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, rowFromTask(userID, key, t))
	}

	if replacer, ok := b.rows.(storage.DayReplacer); ok {
		if _, err := replacer.ReplaceDay(ctx, userID, string(key), rows); err != nil {
			return fmt.Errorf("replace day: %w", err)
		}
		return nil
	}

	if _, err := b.rows.DeleteByOwnerAndDate(ctx, userID, string(key)); err != nil {
		return fmt.Errorf("delete day: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := b.rows.BulkInsert(ctx, userID, rows); err != nil {
		return fmt.Errorf("insert day: %w", err)
	}
	return nil
}

func taskFromRow(row storage.Row) (model.Task, error) {
	d, err := calendar.ParseKey(row.Date)
	if err != nil {
		return model.Task{}, err
	}
	return model.Task{
		ID:          model.DurableID(row.ID),
		Title:       row.Title,
		Description: row.Description,
		Completed:   row.Completed,
		Date:        d.Key(),
	}, nil
}

// rowFromTask leaves ID zero for pending tasks so the store assigns one.
func rowFromTask(userID string, key calendar.Key, t model.Task) storage.Row {
	row := storage.Row{
		UserID:      userID,
		Title:       t.Title,
		Description: t.Description,
		Date:        string(key),
		Completed:   t.Completed,
	}
	if id, ok := t.ID.Durable(); ok {
		row.ID = id
	}
	return row
}
