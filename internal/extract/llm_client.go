// Package extract turns free-form chat text into a structured partial
// booking record using an LLM, tolerating arbitrarily malformed model
// output.
package extract

import "context"

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// Message is one turn of prior conversation handed to the model.
type Message struct {
	Role    ChatRole
	Content string
}

// LLMClient is the narrow model surface the assistant needs: a one-shot
// completion for structured extraction and a history-aware chat turn
// for the open-ended reply path.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Chat(ctx context.Context, system string, history []Message, text string) (string, error)
}
