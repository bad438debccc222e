package notify

import (
	"fmt"
	"strings"
	"time"
)

// BookingConfirmation carries the details rendered into the
// confirmation email.
type BookingConfirmation struct {
	Name            string
	Email           string
	Phone           string
	Service         string
	Start           time.Time // in the salon's timezone
	DurationMinutes int
	PriceINR        int
}

// ConfirmationEmail renders the plaintext confirmation message for a
// booked appointment.
func ConfirmationEmail(salonName string, c BookingConfirmation) EmailMessage {
	phoneLine := ""
	if c.Phone != "" {
		phoneLine = fmt.Sprintf("\n📞 Phone: %s", c.Phone)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", c.Name)
	fmt.Fprintf(&b, "Your appointment at %s is confirmed 🎉\n\n", salonName)
	fmt.Fprintf(&b, "📅 Date: %s\n", c.Start.Format("Monday, 02 January 2006"))
	fmt.Fprintf(&b, "⏰ Time: %s\n", c.Start.Format("03:04 PM"))
	fmt.Fprintf(&b, "💇 Service: %s\n", c.Service)
	fmt.Fprintf(&b, "⏳ Duration: %d minutes\n", c.DurationMinutes)
	fmt.Fprintf(&b, "💰 Price: ₹%d%s\n\n", c.PriceINR, phoneLine)
	fmt.Fprintf(&b, "We look forward to pampering you soon!\n%s\n", salonName)

	return EmailMessage{
		To:      c.Email,
		ToName:  c.Name,
		Subject: fmt.Sprintf("Your %s Appointment Confirmation", salonName),
		Body:    b.String(),
	}
}
