package mailer

import (
	"fmt"
	"strings"
	"time"

	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/model"
)

// Human-readable labels for the preferred time bands.
var timeBandLabels = map[string]string{
	model.TimeMorning:   "Morning (9 AM - 12 PM)",
	model.TimeAfternoon: "Afternoon (12 PM - 4 PM)",
	model.TimeEvening:   "Evening (4 PM - 7 PM)",
}

// OwnerNotification builds the mandatory booking alert sent to the business
// owner. Fields are already sanitized by the handler; the body interpolates
// them as-is together with a server-side timestamp.
func OwnerNotification(rec model.AppointmentRecord) Message {
	var b strings.Builder
	b.WriteString("<h1>New Appointment Booking</h1>\n")
	b.WriteString("<p><strong>Customer Details:</strong></p>\n<ul>\n")
	fmt.Fprintf(&b, "  <li><strong>Name:</strong> %s</li>\n", rec.Name)
	fmt.Fprintf(&b, "  <li><strong>Phone:</strong> %s</li>\n", rec.Phone)
	fmt.Fprintf(&b, "  <li><strong>Address:</strong> %s</li>\n", rec.Address)
	fmt.Fprintf(&b, "  <li><strong>Pest Type:</strong> %s</li>\n", rec.PestType)
	if rec.PreferredDate != "" {
		fmt.Fprintf(&b, "  <li><strong>Preferred Date:</strong> %s</li>\n", rec.PreferredDate)
	}
	if rec.PreferredTime != "" {
		fmt.Fprintf(&b, "  <li><strong>Preferred Time:</strong> %s</li>\n", label(rec.PreferredTime))
	}
	b.WriteString("</ul>\n")
	fmt.Fprintf(&b, "<p><strong>Booking Time:</strong> %s</p>\n", time.Now().Format("Jan 2, 2006 3:04 PM MST"))
	b.WriteString("<p>Please contact the customer to confirm the appointment.</p>\n")

	return Message{
		Subject: "New Appointment Booking",
		HTML:    b.String(),
	}
}

// CustomerConfirmation builds the best-effort acknowledgement sent to the
// customer when they supplied a valid email address.
func CustomerConfirmation(rec model.AppointmentRecord) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Thank you, %s!</h1>\n", rec.Name)
	b.WriteString("<p>We have received your appointment request and will call you shortly to confirm.</p>\n")
	b.WriteString("<p><strong>Your request:</strong></p>\n<ul>\n")
	fmt.Fprintf(&b, "  <li><strong>Service:</strong> %s</li>\n", rec.PestType)
	fmt.Fprintf(&b, "  <li><strong>Address:</strong> %s</li>\n", rec.Address)
	if rec.PreferredDate != "" {
		fmt.Fprintf(&b, "  <li><strong>Preferred Date:</strong> %s</li>\n", rec.PreferredDate)
	}
	if rec.PreferredTime != "" {
		fmt.Fprintf(&b, "  <li><strong>Preferred Time:</strong> %s</li>\n", label(rec.PreferredTime))
	}
	b.WriteString("</ul>\n")
	b.WriteString("<p>Quality Pest Control Services</p>\n")

	return Message{
		To:      rec.Email,
		Subject: "Your appointment request has been received",
		HTML:    b.String(),
	}
}

func label(band string) string {
	if l, ok := timeBandLabels[band]; ok {
		return l
	}
	return band
}
