// Package webchat exposes the booking assistant over a WebSocket chat
// endpoint, one dialogue session per browser session.
package webchat

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/luxesalon/frontdesk/internal/dialogue"
	"github.com/luxesalon/frontdesk/internal/extract"
	"github.com/luxesalon/frontdesk/internal/transcript"
	"github.com/luxesalon/frontdesk/pkg/logging"
)

// Assistant is the slice of the dialogue engine the handler needs.
type Assistant interface {
	Greeting() string
	Turn(ctx context.Context, sess *dialogue.Session, text string, chat []extract.Message) dialogue.Reply
}

// chatContextLimit caps how much transcript is replayed into the
// model's conversational fallback.
const chatContextLimit = 20

// Handler manages web chat connections and drives one dialogue session
// per chat session. Turns within a session are strictly serialized.
type Handler struct {
	assistant  Assistant
	transcript transcript.Store
	logger     *logging.Logger
	idleLimit  time.Duration
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*chatSession
}

type chatSession struct {
	mu       sync.Mutex
	dlg      *dialogue.Session
	lastSeen time.Time
}

// InboundMessage is what the chat widget sends.
type InboundMessage struct {
	Type      string `json:"type"` // "message", "ping"
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string           `json:"type"` // "message", "typing", "history", "session", "pong", "error"
	Text      string           `json:"text,omitempty"`
	Role      string           `json:"role,omitempty"` // "assistant" or "user"
	SessionID string           `json:"session_id,omitempty"`
	Timestamp string           `json:"timestamp,omitempty"`
	Messages  []HistoryMessage `json:"messages,omitempty"`
}

// HistoryMessage is a simplified message for history replay.
type HistoryMessage struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// NewHandler creates a web chat handler. idleLimit bounds how long an
// untouched dialogue session is kept before it is discarded.
func NewHandler(assistant Assistant, store transcript.Store, idleLimit time.Duration, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		assistant:  assistant,
		transcript: store,
		logger:     logger,
		idleLimit:  idleLimit,
		sessions:   make(map[string]*chatSession),
		now:        time.Now,
	}
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// session returns the dialogue session for the ID, creating it if
// needed and sweeping idle ones while it holds the lock.
func (h *Handler) session(id string) *chatSession {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	if h.idleLimit > 0 {
		for sid, cs := range h.sessions {
			if sid != id && now.Sub(cs.lastSeen) > h.idleLimit {
				delete(h.sessions, sid)
			}
		}
	}

	cs, ok := h.sessions[id]
	if !ok {
		cs = &chatSession{dlg: dialogue.NewSession(id)}
		h.sessions[id] = cs
	}
	cs.lastSeen = now
	return cs
}

// HandleWebSocket upgrades to WebSocket and handles real-time chat.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	fresh := sessionID == ""
	if fresh {
		sessionID = generateSessionID()
	}

	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "session", SessionID: sessionID})

	if !fresh {
		if msgs, err := h.transcript.List(r.Context(), sessionID, 100); err == nil && len(msgs) > 0 {
			_ = websocket.JSON.Send(conn, OutboundMessage{
				Type:     "history",
				Messages: toHistory(msgs),
			})
		}
	}

	cs := h.session(sessionID)

	// A brand-new session gets the opening message; reconnects see it
	// in the replayed history instead.
	if fresh {
		h.deliver(r.Context(), conn, sessionID, h.assistant.Greeting())
	}

	h.logger.Info("webchat: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}
		if msg.Type != "message" || strings.TrimSpace(msg.Text) == "" {
			continue
		}

		h.processTurn(r.Context(), conn, cs, sessionID, msg.Text)
	}
}

// processTurn runs one user message through the engine and streams the
// replies back, recording both sides in the transcript.
func (h *Handler) processTurn(ctx context.Context, conn *websocket.Conn, cs *chatSession, sessionID, text string) {
	if err := h.transcript.Append(ctx, sessionID, transcript.Message{Role: "user", Body: text}); err != nil {
		h.logger.Warn("webchat: transcript append failed", "session_id", sessionID, "error", err)
	}

	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "typing"})

	chat := h.chatContext(ctx, sessionID, text)

	cs.mu.Lock()
	cs.lastSeen = h.now()
	reply := h.assistant.Turn(ctx, cs.dlg, text, chat)
	cs.mu.Unlock()

	for _, m := range reply.Messages {
		h.deliver(ctx, conn, sessionID, m)
	}
}

// deliver sends one assistant message and appends it to the transcript.
func (h *Handler) deliver(ctx context.Context, conn *websocket.Conn, sessionID, text string) {
	if err := h.transcript.Append(ctx, sessionID, transcript.Message{Role: "assistant", Body: text}); err != nil {
		h.logger.Warn("webchat: transcript append failed", "session_id", sessionID, "error", err)
	}
	_ = websocket.JSON.Send(conn, OutboundMessage{
		Type:      "message",
		Role:      "assistant",
		Text:      text,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

// chatContext converts the transcript tail into model chat history.
// The turn being processed has usually been appended already, so it is
// dropped to avoid handing the model the same text twice — but only
// when the tail really is that turn; if the append failed the tail is
// an older message that must stay in context.
func (h *Handler) chatContext(ctx context.Context, sessionID, current string) []extract.Message {
	msgs, err := h.transcript.List(ctx, sessionID, chatContextLimit)
	if err != nil || len(msgs) == 0 {
		return nil
	}
	if tail := msgs[len(msgs)-1]; tail.Role == "user" && tail.Body == current {
		msgs = msgs[:len(msgs)-1]
	}

	chat := make([]extract.Message, 0, len(msgs))
	for _, m := range msgs {
		role := extract.ChatRoleUser
		if m.Role == "assistant" {
			role = extract.ChatRoleAssistant
		}
		chat = append(chat, extract.Message{Role: role, Content: m.Body})
	}
	return chat
}

// HandleHistory returns the stored transcript for a session.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	msgs, err := h.transcript.List(r.Context(), sessionID, 100)
	if err != nil {
		h.logger.Error("webchat: failed to load history", "error", err)
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"messages": toHistory(msgs)})
}

func toHistory(msgs []transcript.Message) []HistoryMessage {
	out := make([]HistoryMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, HistoryMessage{
			Role:      m.Role,
			Text:      m.Body,
			Timestamp: m.Timestamp.Format(time.RFC3339),
		})
	}
	return out
}
