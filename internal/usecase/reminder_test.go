package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookcast-service/internal/domain/entity"
	"bookcast-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newReminderFixture() (*ReminderService, *fakeAppointmentRepo, *fakeMailer) {
	appts := &fakeAppointmentRepo{}
	mailer := &fakeMailer{failTo: map[string]error{}}
	svc := NewReminderService(
		appts, mailer, &fakeDeliveryLog{},
		logger.NewNop(), testMetrics,
		"consultant@example.com",
		24*time.Hour, 30*time.Minute,
	)
	return svc, appts, mailer
}

func seedAppointment(appts *fakeAppointmentRepo, slot string, email string) *entity.Appointment {
	t, err := entity.ParseSlot(slot)
	if err != nil {
		panic(err)
	}
	appt := &entity.Appointment{
		ID:       primitive.NewObjectID(),
		Name:     "Jo",
		Email:    email,
		Phone:    "555-1111",
		SlotTime: t,
		Status:   entity.StatusBooked,
	}
	appts.appts = append(appts.appts, appt)
	return appt
}

func sweepClock(t *testing.T, s string) time.Time {
	now, err := entity.ParseSlot(s)
	require.NoError(t, err)
	return now
}

func TestRunSweep_WindowSelection(t *testing.T) {
	svc, appts, mailer := newReminderFixture()
	now := sweepClock(t, "2025-03-01T10:00:00")

	inside := seedAppointment(appts, "2025-03-02T10:15:00", "in@example.com")
	lowerEdge := seedAppointment(appts, "2025-03-02T09:30:00", "edge@example.com")
	outside := seedAppointment(appts, "2025-03-02T11:00:00", "out@example.com")

	report, err := svc.RunSweepAt(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.Sent)
	assert.True(t, inside.ReminderSent)
	assert.True(t, lowerEdge.ReminderSent)
	assert.False(t, outside.ReminderSent)

	require.Len(t, mailer.sent, 2)
	for _, email := range mailer.sent {
		assert.Equal(t, "Appointment Reminder (24h)", email.Subject)
		assert.Contains(t, email.Body, "in 24 hours")
	}
}

func TestRunSweep_SkipsAlreadyReminded(t *testing.T) {
	svc, appts, mailer := newReminderFixture()
	now := sweepClock(t, "2025-03-01T10:00:00")

	appt := seedAppointment(appts, "2025-03-02T10:00:00", "jo@example.com")
	appt.ReminderSent = true

	report, err := svc.RunSweepAt(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Processed)
	assert.Empty(t, mailer.sent)
}

func TestRunSweep_MarksRecordWithoutEmail(t *testing.T) {
	svc, appts, mailer := newReminderFixture()
	now := sweepClock(t, "2025-03-01T10:00:00")

	appt := seedAppointment(appts, "2025-03-02T10:00:00", "")

	report, err := svc.RunSweepAt(context.Background(), now)
	require.NoError(t, err)

	// Mark-on-attempt: no address, nothing sent, flag still flips
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Sent)
	assert.True(t, appt.ReminderSent)
	assert.Empty(t, mailer.sent)
}

func TestRunSweep_ContinuesAfterSendFailure(t *testing.T) {
	svc, appts, mailer := newReminderFixture()
	now := sweepClock(t, "2025-03-01T10:00:00")

	failing := seedAppointment(appts, "2025-03-02T09:45:00", "broken@example.com")
	healthy := seedAppointment(appts, "2025-03-02T10:15:00", "ok@example.com")
	mailer.failTo["broken@example.com"] = errors.New("mailbox full")

	report, err := svc.RunSweepAt(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Sent)

	// Both records are marked, failed delivery included
	assert.True(t, failing.ReminderSent)
	assert.True(t, healthy.ReminderSent)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ok@example.com", mailer.sent[0].To)
}

func TestRunSweep_QueryFailureAborts(t *testing.T) {
	svc, appts, _ := newReminderFixture()
	appts.findErr = errors.New("store unreachable")

	report, err := svc.RunSweepAt(context.Background(), sweepClock(t, "2025-03-01T10:00:00"))
	require.Error(t, err)
	assert.Zero(t, report.Processed)
}

func TestRunSweep_NamelessRecordGetsGuestSalutation(t *testing.T) {
	svc, appts, mailer := newReminderFixture()
	now := sweepClock(t, "2025-03-01T10:00:00")

	appt := seedAppointment(appts, "2025-03-02T10:00:00", "jo@example.com")
	appt.Name = ""

	_, err := svc.RunSweepAt(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].Body, "Hello Guest")
}
