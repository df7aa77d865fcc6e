package repository

import (
	"context"
	"errors"
	"time"

	"bookcast-service/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrDuplicateSlot is returned by Create when the store's uniqueness
// constraint rejects a second Booked record for the same slot.
var ErrDuplicateSlot = errors.New("slot already has a booked appointment")

// AppointmentRepository defines the interface for appointment storage operations
type AppointmentRepository interface {
	Create(ctx context.Context, appt *entity.Appointment) error
	CountBookedAt(ctx context.Context, slot time.Time) (int64, error)
	FindDueReminders(ctx context.Context, from, to time.Time) ([]*entity.Appointment, error)
	MarkReminderSent(ctx context.Context, id primitive.ObjectID, at time.Time) error
}
