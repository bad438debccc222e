package history

import (
	"context"
	"strings"
	"sync"
	"time"
)

// InMemoryStore is a Store kept in process memory. Used in development
// and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []ClientRecord
}

// NewInMemoryStore creates an empty in-memory history store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Append adds a record to the log.
func (s *InMemoryStore) Append(ctx context.Context, rec ClientRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	rec.Email = strings.ToLower(rec.Email)

	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()
	return nil
}

// Lookup returns the most recently appended record for the email.
func (s *InMemoryStore) Lookup(ctx context.Context, email string) (*ClientRecord, error) {
	email = strings.ToLower(email)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].Email == email {
			rec := s.records[i]
			return &rec, nil
		}
	}
	return nil, ErrNotFound
}

// Len reports how many records have been appended.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

var _ Store = (*InMemoryStore)(nil)
