// Package dialogue contains the slot-filling state machine that drives
// a booking conversation from first contact to a committed appointment.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/luxesalon/frontdesk/internal/booking"
	"github.com/luxesalon/frontdesk/internal/calendar"
	"github.com/luxesalon/frontdesk/internal/catalog"
	"github.com/luxesalon/frontdesk/internal/dates"
	"github.com/luxesalon/frontdesk/internal/extract"
	"github.com/luxesalon/frontdesk/internal/history"
	"github.com/luxesalon/frontdesk/internal/notify"
	"github.com/luxesalon/frontdesk/internal/observability/metrics"
	"github.com/luxesalon/frontdesk/internal/phone"
	"github.com/luxesalon/frontdesk/pkg/logging"
)

// State is the engine's position in the booking conversation.
type State string

const (
	// StateCollectingIdentity requires name and email before anything else.
	StateCollectingIdentity State = "collecting_identity"
	// StateCollecting accumulates service, date, time (and opportunistically phone).
	StateCollecting State = "collecting"
	// StateAwaitingPhone means the slot is confirmed free and only the
	// phone number is missing. Turns in this state are phone candidates,
	// nothing else.
	StateAwaitingPhone State = "awaiting_phone"
	// StateBooked is terminal per booking; the engine resets to
	// StateCollectingIdentity in the same turn, so sessions never rest here.
	StateBooked State = "booked"
)

// Session is the per-conversation state the engine reads and mutates.
// One session is processed strictly turn by turn.
type Session struct {
	ID     string
	State  State
	Fields booking.Fields
}

// NewSession starts a fresh session in the identity-collection state.
func NewSession(id string) *Session {
	return &Session{ID: id, State: StateCollectingIdentity}
}

// Reply is the ordered list of assistant messages produced by one turn.
type Reply struct {
	Messages []string
}

// Extractor is the slice of the extraction adapter the engine needs.
type Extractor interface {
	Extract(ctx context.Context, text string) booking.PartialRecord
	Chat(ctx context.Context, salonName string, history []extract.Message, text string) (string, error)
}

// Scheduler gates availability and writes the calendar event.
type Scheduler interface {
	IsAvailable(ctx context.Context, start time.Time, duration time.Duration) bool
	CreateEvent(ctx context.Context, ev calendar.Event) (string, error)
}

// Config holds the salon-specific engine settings.
type Config struct {
	SalonName     string
	SalonLocation string
	Timezone      string
}

// Engine sequences extraction, merging, the availability gate and the
// commit for each turn. It holds no per-session state itself.
type Engine struct {
	cfg       Config
	extractor Extractor
	scheduler Scheduler
	committer *Committer
	history   history.Store
	metrics   *metrics.DialogueMetrics
	logger    *logging.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewEngine wires the engine and its committer.
func NewEngine(cfg Config, extractor Extractor, scheduler Scheduler, email notify.EmailSender, hist history.Store, m *metrics.DialogueMetrics, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.Default()
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid salon timezone, falling back to UTC", "timezone", cfg.Timezone)
		loc = time.UTC
	}
	return &Engine{
		cfg:       cfg,
		extractor: extractor,
		scheduler: scheduler,
		committer: NewCommitter(scheduler, email, hist, cfg.SalonName, cfg.SalonLocation, cfg.Timezone, loc, logger),
		history:   hist,
		metrics:   m,
		logger:    logger,
		loc:       loc,
		now:       time.Now,
	}
}

// Greeting is the assistant's opening message for a fresh session.
func (e *Engine) Greeting() string {
	return fmt.Sprintf("Welcome to %s! To help me assist you better, please share your name and email.", e.cfg.SalonName)
}

// Turn processes one user message against the session and returns the
// assistant's reply. All failures are turn-local: the session is always
// left in a consistent state and the reply always explains what to do
// next.
func (e *Engine) Turn(ctx context.Context, sess *Session, text string, chat []extract.Message) Reply {
	e.metrics.ObserveTurn(string(sess.State))

	switch sess.State {
	case StateAwaitingPhone:
		return e.awaitPhone(ctx, sess, text)
	case StateCollectingIdentity:
		return e.collectIdentity(ctx, sess, text)
	default:
		return e.collect(ctx, sess, text, chat)
	}
}

// collectIdentity gathers name and email, then greets, pre-fills phone
// from history and presents the menu.
func (e *Engine) collectIdentity(ctx context.Context, sess *Session, text string) Reply {
	rec := e.extractor.Extract(ctx, text)
	sess.Fields = booking.Merge(sess.Fields, rec)

	if sess.Fields.Name == "" || sess.Fields.Email == "" {
		return Reply{Messages: []string{
			"I couldn't get your name or email. Please write like: 'My name is <name> and my email is <email@example.com>'",
		}}
	}

	var messages []string
	prior, err := e.history.Lookup(ctx, sess.Fields.Email)
	switch {
	case err == nil:
		messages = append(messages, fmt.Sprintf("Welcome back, %s!", sess.Fields.Name))
		if sess.Fields.Phone == "" && prior.Phone != "" {
			if p, ok := phone.Normalize(prior.Phone); ok {
				sess.Fields.Phone = p
			}
		}
	case errors.Is(err, history.ErrNotFound):
		messages = append(messages, fmt.Sprintf("Nice to meet you, %s!", sess.Fields.Name))
	default:
		// A broken history store must not block the conversation.
		e.logger.Warn("history lookup failed", "error", err)
		messages = append(messages, fmt.Sprintf("Nice to meet you, %s!", sess.Fields.Name))
	}

	messages = append(messages,
		"Here's our service menu:\n\n"+catalog.MenuTable(),
		"Which service would you like to book?",
	)
	sess.State = StateCollecting
	return Reply{Messages: messages}
}

// collect is the slot-accumulation self-loop.
func (e *Engine) collect(ctx context.Context, sess *Session, text string, chat []extract.Message) Reply {
	processed := dates.ResolveKeywords(text, e.now().In(e.loc))

	rec := e.extractor.Extract(ctx, processed)
	if rec.IsEmpty() {
		e.metrics.ObserveEmptyExtraction()
	}
	sess.Fields = booking.Merge(sess.Fields, rec)

	if !sess.Fields.HasSlot() {
		return e.chatFallback(ctx, chat, processed)
	}
	return e.gate(ctx, sess)
}

// awaitPhone interprets the turn strictly as a phone candidate; no
// other field is extracted from it.
func (e *Engine) awaitPhone(ctx context.Context, sess *Session, text string) Reply {
	p, ok := phone.Normalize(text)
	if !ok {
		return Reply{Messages: []string{
			"That doesn't look like a valid Indian number. Please enter a 10-digit mobile number.",
		}}
	}

	sess.Fields.Phone = p
	sess.State = StateCollecting

	reply := e.gate(ctx, sess)
	reply.Messages = append([]string{"Thanks! Got your phone number. Finalizing your booking now…"}, reply.Messages...)
	return reply
}

// gate runs the completion gate once service+date+time are set:
// availability, then phone, then commit.
func (e *Engine) gate(ctx context.Context, sess *Session) Reply {
	svc := *sess.Fields.Service
	start := sess.Fields.StartTime(e.loc)

	available := e.scheduler.IsAvailable(ctx, start, svc.Duration())
	e.metrics.ObserveAvailability(available)
	if !available {
		// The rejected date/time stay put; the user must supply a
		// different slot explicitly.
		return Reply{Messages: []string{
			"❌ That slot is already booked. Please choose a different date or time.",
		}}
	}

	if sess.Fields.Phone == "" {
		sess.State = StateAwaitingPhone
		return Reply{Messages: []string{
			"📞 Please share your 10-digit phone number to confirm the booking.",
		}}
	}

	if missing := sess.Fields.MissingCore(); len(missing) > 0 {
		return Reply{Messages: []string{
			"I still need: " + strings.Join(missing, ", "),
		}}
	}

	return e.commit(ctx, sess, svc)
}

func (e *Engine) commit(ctx context.Context, sess *Session, svc catalog.Service) Reply {
	result, err := e.committer.Commit(ctx, sess.Fields)

	var partial *PartialCommitError
	switch {
	case err == nil:
		e.metrics.ObserveCommit("booked")
		msg := fmt.Sprintf(
			"✅ Your appointment is booked!\n\n📌 %s\n📅 %s\n⏰ %s\n💰 ₹%d\n\nA confirmation email has been sent.\n[View Event](%s)",
			svc.Name,
			sess.Fields.Date.Format("2006-01-02"),
			sess.Fields.Time.String(),
			svc.PriceINR,
			result.EventLink,
		)
		// Booked is terminal for this cycle: clear everything and go
		// straight back to identity collection.
		sess.Fields.Reset()
		sess.State = StateCollectingIdentity
		return Reply{Messages: []string{msg}}

	case errors.As(err, &partial):
		e.metrics.ObserveCommit("partial")
		return Reply{Messages: []string{
			"⚠️ Your appointment was added to our calendar, but we couldn't finish sending your confirmation. Our staff will follow up shortly.",
		}}

	default:
		e.metrics.ObserveCommit("calendar_failed")
		return Reply{Messages: []string{
			"⚠️ Booking failed: we couldn't reach the calendar. Nothing was booked — please try again.",
		}}
	}
}

func (e *Engine) chatFallback(ctx context.Context, chat []extract.Message, text string) Reply {
	reply, err := e.extractor.Chat(ctx, e.cfg.SalonName, chat, text)
	if err != nil {
		e.logger.Warn("conversational fallback failed", "error", err)
		return Reply{Messages: []string{
			"Sorry, I'm having trouble replying right now. Could you try that again?",
		}}
	}
	return Reply{Messages: []string{reply}}
}
