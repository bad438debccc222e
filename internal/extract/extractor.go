package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/luxesalon/frontdesk/internal/booking"
	"github.com/luxesalon/frontdesk/internal/catalog"
	"github.com/luxesalon/frontdesk/internal/phone"
	"github.com/luxesalon/frontdesk/pkg/logging"
)

// Extractor wraps an LLM with the fixed booking-extraction instruction.
// It never fails a turn: unusable model output yields an empty record.
type Extractor struct {
	llm    LLMClient
	logger *logging.Logger
}

// NewExtractor creates an extractor on top of the given LLM client.
func NewExtractor(llm LLMClient, logger *logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.Default()
	}
	return &Extractor{llm: llm, logger: logger}
}

const extractionPromptFormat = `You are Luxe Salon & Spa's AI assistant. Extract structured details.

Reply ONLY in JSON with keys:
service, date, time, name, email, phone

- Date must be YYYY-MM-DD if present, else null
- Time must be HH:MM 24-hour if present, else null
- Service must be one of: %s
- If phone seems Indian, return 10 digits (strip +91 or leading 0)

User: %q`

// Extract asks the model for the six booking keys and parses whatever
// comes back. Malformed output, transport errors and invalid phone
// values all degrade to absent fields, never to an error.
func (e *Extractor) Extract(ctx context.Context, text string) booking.PartialRecord {
	prompt := fmt.Sprintf(extractionPromptFormat, strings.Join(catalog.Names(), ", "), text)

	raw, err := e.llm.Complete(ctx, prompt)
	if err != nil {
		e.logger.Warn("extraction completion failed", "error", err)
		return booking.PartialRecord{}
	}

	obj, ok := firstJSONObject(raw)
	if !ok {
		e.logger.Debug("no JSON object in extractor output", "output_len", len(raw))
		return booking.PartialRecord{}
	}

	var rec booking.PartialRecord
	if err := json.Unmarshal([]byte(obj), &rec); err != nil {
		e.logger.Debug("extractor output not parseable", "error", err)
		return booking.PartialRecord{}
	}

	// Phone goes through the normalizer here; a value that does not
	// normalize is treated as absent, re-prompting is the engine's job.
	if rec.Phone != nil {
		if normalized, ok := phone.Normalize(*rec.Phone); ok {
			rec.Phone = &normalized
		} else {
			rec.Phone = nil
		}
	}
	return rec
}

// ReceptionistSystemPrompt is the persona instruction for the
// open-ended reply path.
func ReceptionistSystemPrompt(salonName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s's AI booking assistant.\n", salonName)
	b.WriteString("- Act only like a salon receptionist, never generic.\n")
	b.WriteString("- Services (with duration & price ₹):\n")
	for _, s := range catalog.All() {
		fmt.Fprintf(&b, "  - %s: %d mins, ₹%d\n", s.Name, s.DurationMinutes, s.PriceINR)
	}
	b.WriteString("- Always show services in a Markdown table when asked.\n")
	b.WriteString("- The backend checks the calendar and sends emails when a booking is ready.\n")
	b.WriteString("- Do not say you cannot send emails or calendar invites.\n")
	return b.String()
}

// Chat produces an open-ended receptionist reply for turns where slot
// filling has nothing to decide.
func (e *Extractor) Chat(ctx context.Context, salonName string, history []Message, text string) (string, error) {
	reply, err := e.llm.Chat(ctx, ReceptionistSystemPrompt(salonName), history, text)
	if err != nil {
		return "", fmt.Errorf("extract: chat reply failed: %w", err)
	}
	return reply, nil
}

// firstJSONObject locates the first balanced {...} span in s, skipping
// braces inside JSON strings. Returns false when no complete object is
// present.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
