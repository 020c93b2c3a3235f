package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

const rowColumns = `id, user_id, title, description, date, completed, created_at`

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// OpenSQLite opens path and brings its schema up to date.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) SelectByOwner(ctx context.Context, userID string, filter RowFilter) ([]Row, error) {
	query := `SELECT ` + rowColumns + ` FROM tasks`
	clauses := []string{"user_id = ?"}
	args := []any{userID}
	if filter.Date != "" {
		clauses = append(clauses, "date = ?")
		args = append(args, filter.Date)
	}
	query += " WHERE " + strings.Join(clauses, " AND ")
	query += ` ORDER BY date ASC, position ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Row, 0)
	for rows.Next() {
		row, scanErr := scanRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetRow(ctx context.Context, userID string, id int64) (Row, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+rowColumns+` FROM tasks WHERE user_id = ? AND id = ?`, userID, id)
	out, err := scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Row{}, ErrNotFound
		}
		return Row{}, err
	}
	return out, nil
}

func (r *SQLiteRepository) DeleteByOwnerAndDate(ctx context.Context, userID, date string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ? AND date = ?`, userID, date)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQLiteRepository) BulkInsert(ctx context.Context, userID string, rows []Row) ([]Row, error) {
	var out []Row
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		out, err = r.insertRows(ctx, tx, userID, rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceDay deletes the user's rows for date and inserts rows in their place
// inside one transaction.
func (r *SQLiteRepository) ReplaceDay(ctx context.Context, userID, date string, rows []Row) ([]Row, error) {
	for _, row := range rows {
		if row.Date != date {
			return nil, fmt.Errorf("storage: row date %q does not match %q", row.Date, date)
		}
	}
	var out []Row
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ? AND date = ?`, userID, date); err != nil {
			return fmt.Errorf("delete day: %w", err)
		}
		var err error
		out, err = r.insertRows(ctx, tx, userID, rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLiteRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) insertRows(ctx context.Context, tx *sql.Tx, userID string, rows []Row) ([]Row, error) {
	out := make([]Row, 0, len(rows))
	next := map[string]int{}
	createdAt := r.now().UTC()
	for _, in := range rows {
		if strings.TrimSpace(in.Title) == "" {
			return nil, errors.New("storage: row title is required")
		}
		if _, err := time.Parse("2006-01-02", in.Date); err != nil {
			return nil, fmt.Errorf("storage: row date %q: %w", in.Date, err)
		}
		pos, ok := next[in.Date]
		if !ok {
			if err := tx.QueryRowContext(ctx,
				`SELECT COALESCE(MAX(position) + 1, 0) FROM tasks WHERE user_id = ? AND date = ?`,
				userID, in.Date,
			).Scan(&pos); err != nil {
				return nil, fmt.Errorf("next position: %w", err)
			}
		}
		next[in.Date] = pos + 1

		var id any
		if in.ID > 0 {
			id = in.ID
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, user_id, title, description, date, completed, position, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, userID, in.Title, nullString(in.Description), in.Date, boolInt(in.Completed), pos, mustTime(createdAt),
		)
		if err != nil {
			if isConstraint(err) {
				return nil, fmt.Errorf("%w: %d", ErrConflict, in.ID)
			}
			return nil, fmt.Errorf("insert row: %w", err)
		}
		rowID, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		in.ID = rowID
		in.UserID = userID
		in.CreatedAt = createdAt
		out = append(out, in)
	}
	return out, nil
}

func isConstraint(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (Row, error) {
	var out Row
	var description sql.NullString
	var completed int
	var created string
	if err := s.Scan(&out.ID, &out.UserID, &out.Title, &description, &out.Date, &completed, &created); err != nil {
		return Row{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Row{}, err
	}
	out.Description = description.String
	out.Completed = completed == 1
	out.CreatedAt = createdAt
	return out, nil
}
