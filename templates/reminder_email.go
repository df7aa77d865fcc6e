package templates

import (
	"fmt"

	"bookcast-service/internal/domain/entity"
)

// ReminderEmail builds the 24-hour reminder for one appointment. Records
// without a name fall back to a generic salutation.
func ReminderEmail(from string, appt *entity.Appointment) *entity.OutboundEmail {
	name := appt.Name
	if name == "" {
		name = "Guest"
	}

	return &entity.OutboundEmail{
		From:    from,
		To:      appt.Email,
		Subject: "Appointment Reminder (24h)",
		Body: fmt.Sprintf(
			"Hello %s,\n\nThis is a reminder that your appointment is scheduled in 24 hours (on %s).\n\nThank you!",
			name, appt.Slot()),
	}
}
