// Package history keeps the append-only log of past client bookings,
// keyed loosely by email.
package history

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Lookup when no record exists for an email.
var ErrNotFound = errors.New("history: no record for email")

// ClientRecord is one appended booking. Records are never mutated or
// deleted; the same email may appear many times.
type ClientRecord struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Service   string    `json:"service"`
	Date      string    `json:"booking_date"` // ISO YYYY-MM-DD
	Time      string    `json:"booking_time"` // HH:MM 24-hour
	Timestamp time.Time `json:"timestamp"`
}

// Store persists client records. Lookup returns the most recent record
// for the email since the log enforces no uniqueness.
type Store interface {
	Lookup(ctx context.Context, email string) (*ClientRecord, error)
	Append(ctx context.Context, rec ClientRecord) error
}
