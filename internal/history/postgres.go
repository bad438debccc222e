package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the slice of pgxpool.Pool the store needs; pgxmock satisfies it
// in tests.
type db interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore keeps client history in the relational database.
type PostgresStore struct {
	db db
}

// NewPostgresStore initializes a store backed by a pgx pool.
func NewPostgresStore(db db) *PostgresStore {
	if db == nil {
		panic("history: pgx pool required")
	}
	return &PostgresStore{db: db}
}

// Append inserts a new history row. Rows are never updated.
func (s *PostgresStore) Append(ctx context.Context, rec ClientRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	query := `
		INSERT INTO client_history (id, name, email, phone, service, booking_date, booking_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := s.db.Exec(ctx, query,
		uuid.New(),
		rec.Name,
		strings.ToLower(rec.Email),
		rec.Phone,
		rec.Service,
		rec.Date,
		rec.Time,
		rec.Timestamp,
	); err != nil {
		return fmt.Errorf("history: insert failed: %w", err)
	}
	return nil
}

// Lookup fetches the most recent record for the email.
func (s *PostgresStore) Lookup(ctx context.Context, email string) (*ClientRecord, error) {
	query := `
		SELECT name, email, phone, service, booking_date, booking_time, created_at
		FROM client_history
		WHERE email = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	row := s.db.QueryRow(ctx, query, strings.ToLower(email))
	var rec ClientRecord
	if err := row.Scan(
		&rec.Name,
		&rec.Email,
		&rec.Phone,
		&rec.Service,
		&rec.Date,
		&rec.Time,
		&rec.Timestamp,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("history: select failed: %w", err)
	}
	return &rec, nil
}

var _ Store = (*PostgresStore)(nil)
