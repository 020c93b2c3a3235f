package storage

import "time"

// Row is one persisted task. ID is assigned by the store when zero.
type Row struct {
	ID          int64     `json:"id,omitempty"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

type RowFilter struct {
	Date string
}
