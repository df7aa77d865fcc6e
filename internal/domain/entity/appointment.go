package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment status values
const (
	StatusBooked = "Booked"
)

// SlotLayout is the wire format for appointment times: an ISO-8601 local
// date-time with no offset, exactly as the booking form assembles it.
const SlotLayout = "2006-01-02T15:04:05"

// Appointment represents one booked consultation slot
type Appointment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone"`
	SlotTime     time.Time          `bson:"slotTime"`
	Status       string             `bson:"status"`
	ReminderSent bool               `bson:"reminderSent"`
	CreatedAt    time.Time          `bson:"createdAt"`
	RemindedAt   time.Time          `bson:"remindedAt,omitempty"`
}

// ParseSlot parses a wire date-time string into a slot timestamp.
// Inputs carrying an explicit offset are rejected, matching the form's output.
func ParseSlot(s string) (time.Time, error) {
	return time.Parse(SlotLayout, s)
}

// Slot returns the wire representation of the appointment time
func (a *Appointment) Slot() string {
	return a.SlotTime.Format(SlotLayout)
}
