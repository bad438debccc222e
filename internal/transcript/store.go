// Package transcript keeps the display-only chat transcript for a
// session. The dialogue engine never reads it for decisions.
package transcript

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Message is one rendered chat turn.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// Store appends and replays session transcripts.
type Store interface {
	Append(ctx context.Context, sessionID string, msg Message) error
	List(ctx context.Context, sessionID string, limit int64) ([]Message, error)
}

func stamp(msg Message) Message {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	return msg
}
