package transcript

import (
	"context"
	"sync"
)

// InMemoryStore keeps transcripts in process memory for development and
// tests, with the same capping behavior as the Redis store.
type InMemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string][]Message
	maxMessages int
}

// NewInMemoryStore creates an empty in-memory transcript store.
func NewInMemoryStore(maxMessages int) *InMemoryStore {
	return &InMemoryStore{
		sessions:    make(map[string][]Message),
		maxMessages: maxMessages,
	}
}

// Append adds a message to the session transcript.
func (s *InMemoryStore) Append(ctx context.Context, sessionID string, msg Message) error {
	msg = stamp(msg)

	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := append(s.sessions[sessionID], msg)
	if s.maxMessages > 0 && len(msgs) > s.maxMessages {
		msgs = msgs[len(msgs)-s.maxMessages:]
	}
	s.sessions[sessionID] = msgs
	return nil
}

// List returns up to limit most recent messages, oldest first.
func (s *InMemoryStore) List(ctx context.Context, sessionID string, limit int64) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.sessions[sessionID]
	if limit > 0 && int64(len(msgs)) > limit {
		msgs = msgs[int64(len(msgs))-limit:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

var _ Store = (*InMemoryStore)(nil)
