package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresAppend(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	ts := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO client_history").
		WithArgs(pgxmock.AnyArg(), "Asha", "asha@example.com", "9876543210", "Manicure", "2024-06-01", "14:30", ts).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewPostgresStore(mock)
	err = store.Append(context.Background(), ClientRecord{
		Name:      "Asha",
		Email:     "ASHA@Example.com",
		Phone:     "9876543210",
		Service:   "Manicure",
		Date:      "2024-06-01",
		Time:      "14:30",
		Timestamp: ts,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresLookupMostRecent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	ts := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"name", "email", "phone", "service", "booking_date", "booking_time", "created_at"}).
		AddRow("Asha", "asha@example.com", "9876543210", "Manicure", "2024-06-01", "14:30", ts)
	mock.ExpectQuery("SELECT name, email, phone, service, booking_date, booking_time, created_at").
		WithArgs("asha@example.com").
		WillReturnRows(rows)

	store := NewPostgresStore(mock)
	rec, err := store.Lookup(context.Background(), "Asha@Example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if rec.Phone != "9876543210" || rec.Service != "Manicure" {
		t.Errorf("record = %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresLookupNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT name, email, phone, service, booking_date, booking_time, created_at").
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	store := NewPostgresStore(mock)
	_, err = store.Lookup(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
