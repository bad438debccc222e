package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/luxesalon/frontdesk/internal/booking"
	"github.com/luxesalon/frontdesk/internal/calendar"
	"github.com/luxesalon/frontdesk/internal/history"
	"github.com/luxesalon/frontdesk/internal/notify"
	"github.com/luxesalon/frontdesk/pkg/logging"
)

// ErrIncompleteFields is returned when Commit is called before every
// required field is present. The state machine should make this
// unreachable.
var ErrIncompleteFields = errors.New("dialogue: booking fields incomplete")

// ErrCalendarWrite classifies a commit that failed before any side
// effect happened: the calendar insert did not go through, so the whole
// booking can simply be retried.
var ErrCalendarWrite = errors.New("dialogue: calendar write failed")

// PartialCommitError reports a commit where the calendar event was
// created but the confirmation email and/or the history append failed.
// The booking exists externally; reconciliation is manual.
type PartialCommitError struct {
	EventLink  string
	EmailErr   error
	HistoryErr error
}

func (e *PartialCommitError) Error() string {
	var failed []string
	if e.EmailErr != nil {
		failed = append(failed, fmt.Sprintf("email: %v", e.EmailErr))
	}
	if e.HistoryErr != nil {
		failed = append(failed, fmt.Sprintf("history: %v", e.HistoryErr))
	}
	return "dialogue: calendar event created but " + strings.Join(failed, "; ")
}

// CommitResult carries the artifacts of a successful commit.
type CommitResult struct {
	EventLink string
}

// Committer performs the three-part booking commit: calendar event,
// confirmation email, history append — in that order.
type Committer struct {
	scheduler Scheduler
	email     notify.EmailSender
	history   history.Store

	salonName     string
	salonLocation string
	timezone      string
	loc           *time.Location
	logger        *logging.Logger
	now           func() time.Time
}

// NewCommitter wires the three external collaborators.
func NewCommitter(scheduler Scheduler, email notify.EmailSender, hist history.Store, salonName, salonLocation, timezone string, loc *time.Location, logger *logging.Logger) *Committer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Committer{
		scheduler:     scheduler,
		email:         email,
		history:       hist,
		salonName:     salonName,
		salonLocation: salonLocation,
		timezone:      timezone,
		loc:           loc,
		logger:        logger,
		now:           time.Now,
	}
}

// Commit books the appointment. If the calendar insert fails nothing
// else runs and the caller may retry the turn unchanged. If a later
// step fails the error is a *PartialCommitError so the caller can
// report it distinctly.
func (c *Committer) Commit(ctx context.Context, fields booking.Fields) (CommitResult, error) {
	if !fields.Complete() {
		return CommitResult{}, ErrIncompleteFields
	}

	svc := *fields.Service
	start := fields.StartTime(c.loc)
	end := start.Add(svc.Duration())

	event := calendar.Event{
		Summary:  fmt.Sprintf("%s for %s", svc.Name, fields.Name),
		Location: c.salonLocation,
		Description: fmt.Sprintf(
			"Client: %s\nEmail: %s\nPhone: %s\nService: %s\nDuration: %d mins\nPrice: ₹%d\n",
			fields.Name, fields.Email, fields.Phone, svc.Name, svc.DurationMinutes, svc.PriceINR,
		),
		Start:    start,
		End:      end,
		Timezone: c.timezone,
	}

	link, err := c.scheduler.CreateEvent(ctx, event)
	if err != nil {
		c.logger.Error("booking commit aborted at calendar step", "error", err)
		return CommitResult{}, fmt.Errorf("%w: %v", ErrCalendarWrite, err)
	}

	confirmation := notify.BookingConfirmation{
		Name:            fields.Name,
		Email:           fields.Email,
		Phone:           fields.Phone,
		Service:         svc.Name,
		Start:           start,
		DurationMinutes: svc.DurationMinutes,
		PriceINR:        svc.PriceINR,
	}
	emailErr := c.email.Send(ctx, notify.ConfirmationEmail(c.salonName, confirmation))

	historyErr := c.history.Append(ctx, history.ClientRecord{
		Name:      fields.Name,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Service:   svc.Name,
		Date:      fields.Date.Format("2006-01-02"),
		Time:      fields.Time.String(),
		Timestamp: c.now().UTC(),
	})

	if emailErr != nil || historyErr != nil {
		c.logger.Error("booking commit partially failed",
			"email_error", emailErr, "history_error", historyErr, "event_link", link)
		return CommitResult{EventLink: link}, &PartialCommitError{
			EventLink:  link,
			EmailErr:   emailErr,
			HistoryErr: historyErr,
		}
	}

	c.logger.Info("booking committed", "service", svc.Name, "start", start, "event_link", link)
	return CommitResult{EventLink: link}, nil
}
