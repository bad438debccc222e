// Package calendar adapts the Google Calendar API for availability
// checks and event creation.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/luxesalon/frontdesk/pkg/logging"
)

// Event is a calendar entry to be created on commit.
type Event struct {
	Summary     string
	Location    string
	Description string
	Start       time.Time
	End         time.Time
	Timezone    string
}

// GoogleScheduler talks to one Google calendar.
type GoogleScheduler struct {
	svc        *gcal.Service
	calendarID string
	logger     *logging.Logger
}

// NewGoogleScheduler wraps an authenticated calendar service.
func NewGoogleScheduler(svc *gcal.Service, calendarID string, logger *logging.Logger) (*GoogleScheduler, error) {
	if svc == nil {
		return nil, errors.New("calendar: service is required")
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &GoogleScheduler{svc: svc, calendarID: calendarID, logger: logger}, nil
}

// NewService builds the underlying Google Calendar service from either
// a service-account credentials file or an API key.
func NewService(ctx context.Context, credFile, apiKey string) (*gcal.Service, error) {
	var opts []option.ClientOption
	switch {
	case credFile != "":
		opts = append(opts, option.WithCredentialsFile(credFile), option.WithScopes(gcal.CalendarScope))
	case apiKey != "":
		opts = append(opts, option.WithAPIKey(apiKey))
	default:
		return nil, errors.New("calendar: no credentials configured")
	}
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("calendar: create service: %w", err)
	}
	return svc, nil
}

// IsAvailable reports whether [start, start+duration) is free on the
// calendar. start must already be in the salon's timezone; the query is
// issued in UTC. Any transport or decode failure reports unavailable —
// this gate fails closed.
func (g *GoogleScheduler) IsAvailable(ctx context.Context, start time.Time, duration time.Duration) bool {
	end := start.Add(duration)

	req := &gcal.FreeBusyRequest{
		TimeMin: start.UTC().Format(time.RFC3339),
		TimeMax: end.UTC().Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: g.calendarID}},
	}

	resp, err := g.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		g.logger.Error("free/busy query failed, treating slot as busy", "error", err, "start", start)
		return false
	}

	cal, ok := resp.Calendars[g.calendarID]
	if !ok {
		g.logger.Error("free/busy response missing calendar, treating slot as busy", "calendar_id", g.calendarID)
		return false
	}
	return len(cal.Busy) == 0
}

// CreateEvent inserts the event and returns its html link.
func (g *GoogleScheduler) CreateEvent(ctx context.Context, ev Event) (string, error) {
	entry := &gcal.Event{
		Summary:     ev.Summary,
		Location:    ev.Location,
		Description: ev.Description,
		Start: &gcal.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
			TimeZone: ev.Timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
			TimeZone: ev.Timezone,
		},
		Reminders: &gcal.EventReminders{
			UseDefault:      true,
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := g.svc.Events.Insert(g.calendarID, entry).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("calendar: insert event: %w", err)
	}

	g.logger.Info("calendar event created", "summary", ev.Summary, "start", ev.Start)
	return created.HtmlLink, nil
}
