package usecase

import (
	"context"
	"time"

	"bookcast-service/internal/domain/entity"
	"bookcast-service/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// One metrics instance for the package; promauto panics on re-registration.
var testMetrics = metrics.NewMetrics("usecase_test")

type fakeAppointmentRepo struct {
	appts     []*entity.Appointment
	createErr error
	countErr  error
	findErr   error
	markErr   error
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appt *entity.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	appt.ID = primitive.NewObjectID()
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = time.Now()
	}
	r.appts = append(r.appts, appt)
	return nil
}

func (r *fakeAppointmentRepo) CountBookedAt(ctx context.Context, slot time.Time) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int64
	for _, a := range r.appts {
		if a.Status == entity.StatusBooked && a.SlotTime.Equal(slot) {
			n++
		}
	}
	return n, nil
}

func (r *fakeAppointmentRepo) FindDueReminders(ctx context.Context, from, to time.Time) ([]*entity.Appointment, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var due []*entity.Appointment
	for _, a := range r.appts {
		if a.Status != entity.StatusBooked || a.ReminderSent {
			continue
		}
		if a.SlotTime.Before(from) || a.SlotTime.After(to) {
			continue
		}
		due = append(due, a)
	}
	return due, nil
}

func (r *fakeAppointmentRepo) MarkReminderSent(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	if r.markErr != nil {
		return r.markErr
	}
	for _, a := range r.appts {
		if a.ID == id {
			a.ReminderSent = true
			a.RemindedAt = at
		}
	}
	return nil
}

type fakeMailer struct {
	sent   []*entity.OutboundEmail
	failTo map[string]error
}

func (m *fakeMailer) Send(ctx context.Context, email *entity.OutboundEmail) error {
	if err := m.failTo[email.To]; err != nil {
		return err
	}
	m.sent = append(m.sent, email)
	return nil
}

type fakeDeliveryLog struct {
	entries []*entity.DeliveryLog
	err     error
}

func (l *fakeDeliveryLog) Record(ctx context.Context, entry *entity.DeliveryLog) error {
	if l.err != nil {
		return l.err
	}
	l.entries = append(l.entries, entry)
	return nil
}
