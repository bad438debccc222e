// Package booking holds the slot-filling data model: the accumulated
// booking fields for a session and the merge policy that fills them
// from extractor output.
package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/luxesalon/frontdesk/internal/catalog"
)

const isoDate = "2006-01-02"

// TimeOfDay is a wall-clock appointment time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// String renders HH:MM, 24-hour.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Fields is the mutable record of booking slots accumulated over a
// session. A nil/empty slot is absent; a populated slot is never
// overwritten by later extraction, only cleared by an explicit Reset.
type Fields struct {
	Service *catalog.Service
	Date    *time.Time
	Time    *TimeOfDay
	Name    string
	Email   string
	Phone   string
}

// HasSlot reports whether service, date and time are all set — the
// precondition for an availability check.
func (f *Fields) HasSlot() bool {
	return f.Service != nil && f.Date != nil && f.Time != nil
}

// Complete reports whether every required field, phone included, is set.
func (f *Fields) Complete() bool {
	return f.HasSlot() && f.Name != "" && f.Email != "" && f.Phone != ""
}

// MissingCore lists which of name/email/service/date/time are absent.
func (f *Fields) MissingCore() []string {
	var missing []string
	if f.Name == "" {
		missing = append(missing, "name")
	}
	if f.Email == "" {
		missing = append(missing, "email")
	}
	if f.Service == nil {
		missing = append(missing, "service")
	}
	if f.Date == nil {
		missing = append(missing, "date")
	}
	if f.Time == nil {
		missing = append(missing, "time")
	}
	return missing
}

// StartTime combines date and time-of-day in the given location.
// Callers must ensure HasSlot first.
func (f *Fields) StartTime(loc *time.Location) time.Time {
	return time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(), f.Time.Hour, f.Time.Minute, 0, 0, loc)
}

// Reset clears every slot. Used after a successful commit.
func (f *Fields) Reset() {
	*f = Fields{}
}

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(isoDate, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseTimeOfDay parses HH:MM in 24-hour form. A single-digit hour is
// accepted since extractors are loose about zero padding.
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return TimeOfDay{}, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, false
	}
	return TimeOfDay{Hour: hour, Minute: minute}, true
}
