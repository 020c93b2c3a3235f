package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidID = errors.New("model: invalid task id")

const pendingPrefix = "tmp-"

// ID identifies a task. A pending ID is generated on the client for a task the
// backend has not stored yet; a durable ID is the backend's row id.
type ID struct {
	pending string
	durable int64
}

func NewPendingID() ID {
	return ID{pending: uuid.NewString()}
}

func DurableID(rowID int64) ID {
	return ID{durable: rowID}
}

func ParseID(raw string) (ID, error) {
	trimmed := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(trimmed, pendingPrefix); ok {
		if _, err := uuid.Parse(rest); err != nil {
			return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, raw)
		}
		return ID{pending: rest}, nil
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || n <= 0 {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return DurableID(n), nil
}

func (id ID) IsZero() bool { return id.pending == "" && id.durable == 0 }

func (id ID) IsPending() bool { return id.pending != "" }

// Durable reports the backend row id, or false for pending and zero IDs.
func (id ID) Durable() (int64, bool) {
	if id.pending != "" || id.durable == 0 {
		return 0, false
	}
	return id.durable, true
}

func (id ID) String() string {
	switch {
	case id.pending != "":
		return pendingPrefix + id.pending
	case id.durable != 0:
		return strconv.FormatInt(id.durable, 10)
	default:
		return ""
	}
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*id = ID{}
		return nil
	}
	parsed, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
