package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeLLM returns canned output for Complete and Chat.
type fakeLLM struct {
	completion  string
	completeErr error
	lastPrompt  string

	chatReply string
	chatErr   error
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.completion, f.completeErr
}

func (f *fakeLLM) Chat(ctx context.Context, system string, history []Message, text string) (string, error) {
	return f.chatReply, f.chatErr
}

func TestExtractParsesWrappedJSON(t *testing.T) {
	llm := &fakeLLM{completion: "Sure! Here you go:\n```json\n{\"service\": \"Manicure\", \"date\": \"2024-06-01\", \"time\": null, \"name\": null, \"email\": null, \"phone\": null}\n```"}
	rec := NewExtractor(llm, nil).Extract(context.Background(), "manicure on 2024-06-01")

	if rec.Service == nil || *rec.Service != "Manicure" {
		t.Error("service not extracted")
	}
	if rec.Date == nil || *rec.Date != "2024-06-01" {
		t.Error("date not extracted")
	}
	if rec.Time != nil || rec.Name != nil || rec.Email != nil || rec.Phone != nil {
		t.Errorf("null keys should stay absent: %+v", rec)
	}
}

func TestExtractNormalizesPhone(t *testing.T) {
	llm := &fakeLLM{completion: `{"service": null, "date": null, "time": null, "name": null, "email": null, "phone": "+91 98765-43210"}`}
	rec := NewExtractor(llm, nil).Extract(context.Background(), "my number is +91 98765-43210")

	if rec.Phone == nil || *rec.Phone != "9876543210" {
		t.Errorf("phone = %v, want normalized 9876543210", rec.Phone)
	}
}

func TestExtractDropsInvalidPhone(t *testing.T) {
	llm := &fakeLLM{completion: `{"phone": "12345"}`}
	rec := NewExtractor(llm, nil).Extract(context.Background(), "12345")

	if rec.Phone != nil {
		t.Errorf("invalid phone should be dropped, got %q", *rec.Phone)
	}
}

func TestExtractToleratesGarbage(t *testing.T) {
	for name, output := range map[string]string{
		"no json":     "I could not find any booking details, sorry!",
		"unbalanced":  `{"service": "Manicure"`,
		"non-object":  `["Manicure"]`,
		"wrong types": `{"service": 42}`,
		"empty":       "",
	} {
		t.Run(name, func(t *testing.T) {
			rec := NewExtractor(&fakeLLM{completion: output}, nil).Extract(context.Background(), "hi")
			if !rec.IsEmpty() {
				t.Errorf("output %q should yield empty record, got %+v", output, rec)
			}
		})
	}
}

func TestExtractTransportFailureYieldsEmptyRecord(t *testing.T) {
	llm := &fakeLLM{completeErr: errors.New("boom")}
	rec := NewExtractor(llm, nil).Extract(context.Background(), "hi")
	if !rec.IsEmpty() {
		t.Errorf("transport failure should yield empty record, got %+v", rec)
	}
}

func TestExtractPromptConstrainsKeysAndCatalog(t *testing.T) {
	llm := &fakeLLM{completion: "{}"}
	NewExtractor(llm, nil).Extract(context.Background(), "book a facial")

	if !strings.Contains(llm.lastPrompt, "service, date, time, name, email, phone") {
		t.Error("prompt must enumerate the six keys")
	}
	if !strings.Contains(llm.lastPrompt, "Facial (Advanced)") {
		t.Error("prompt must enumerate catalog services")
	}
	if !strings.Contains(llm.lastPrompt, `"book a facial"`) {
		t.Error("prompt must include the user message")
	}
}

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{`{"a":1}`, `{"a":1}`, true},
		{"noise {\"a\": {\"b\": 2}} trailing", `{"a": {"b": 2}}`, true},
		{`{"s": "brace } in string"} extra`, `{"s": "brace } in string"}`, true},
		{`{"s": "escaped \" quote }"}`, `{"s": "escaped \" quote }"}`, true},
		{`no braces here`, "", false},
		{`{"open": 1`, "", false},
	}
	for _, tt := range tests {
		got, ok := firstJSONObject(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("firstJSONObject(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestChatPassesThroughReply(t *testing.T) {
	llm := &fakeLLM{chatReply: "We open at 9am!"}
	reply, err := NewExtractor(llm, nil).Chat(context.Background(), "Luxe Salon & Spa", nil, "when do you open?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "We open at 9am!" {
		t.Errorf("reply = %q", reply)
	}
}

func TestChatWrapsError(t *testing.T) {
	llm := &fakeLLM{chatErr: errors.New("quota")}
	if _, err := NewExtractor(llm, nil).Chat(context.Background(), "Luxe", nil, "hi"); err == nil {
		t.Fatal("expected error")
	}
}

func TestReceptionistSystemPrompt(t *testing.T) {
	prompt := ReceptionistSystemPrompt("Luxe Salon & Spa")
	if !strings.Contains(prompt, "Luxe Salon & Spa's AI booking assistant") {
		t.Error("prompt missing persona line")
	}
	if !strings.Contains(prompt, "Haircut (Men): 45 mins, ₹400") {
		t.Error("prompt missing service pricing")
	}
}
