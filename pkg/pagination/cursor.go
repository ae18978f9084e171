// Package pagination implements keyset cursors for lists ordered by
// (date DESC, id DESC).
package pagination

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 30
	MaxLimit     = 366
)

var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor points at the last record of a page.
type Cursor struct {
	Date string
	ID   uuid.UUID
}

// Encode returns an opaque URL-safe token of the form base64("date|id").
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(c.Date + "|" + c.ID.String()))
}

// DecodeCursor parses a token from Encode. An empty string yields a nil cursor.
func DecodeCursor(encoded string) (*Cursor, error) {
	if encoded == "" {
		return nil, nil
	}

	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	date, rawID, ok := strings.Cut(string(data), "|")
	if !ok {
		return nil, ErrInvalidCursor
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, ErrInvalidCursor
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	return &Cursor{Date: date, ID: id}, nil
}

// NormalizeLimit clamps limit into [1, MaxLimit], using DefaultLimit for unset values.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}

// Page trims a result fetched with limit+1 rows. It reports whether more rows
// exist and, if so, the cursor for the next page built from the last kept item.
func Page[T any](items []T, limit int, key func(T) Cursor) ([]T, string) {
	limit = NormalizeLimit(limit)
	if len(items) <= limit {
		return items, ""
	}
	items = items[:limit]
	return items, key(items[len(items)-1]).Encode()
}
