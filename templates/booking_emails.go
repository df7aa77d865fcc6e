package templates

import (
	"fmt"

	"bookcast-service/internal/domain/entity"
)

// ConfirmationEmail builds the customer-facing booking confirmation
func ConfirmationEmail(from string, appt *entity.Appointment) *entity.OutboundEmail {
	return &entity.OutboundEmail{
		From:    from,
		To:      appt.Email,
		Subject: "Appointment Confirmation",
		Body: fmt.Sprintf(
			"Hello %s,\n\nYour appointment has been booked for %s.\n\nThank you!",
			appt.Name, appt.Slot()),
	}
}

// OperatorEmail builds the heads-up sent to the consultant's own address
func OperatorEmail(from, operator string, appt *entity.Appointment) *entity.OutboundEmail {
	return &entity.OutboundEmail{
		From:    from,
		To:      operator,
		Subject: "New Appointment Booked",
		Body: fmt.Sprintf(
			"A new appointment was booked by %s (%s, %s) for %s.",
			appt.Name, appt.Email, appt.Phone, appt.Slot()),
	}
}
