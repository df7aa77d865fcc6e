package usecase

import (
	"context"
	"fmt"
	"time"

	"bookcast-service/internal/domain/entity"
	"bookcast-service/internal/domain/repository"
	"bookcast-service/pkg/logger"
	"bookcast-service/pkg/metrics"
	"bookcast-service/templates"
)

// SweepReport aggregates per-record outcomes of one reminder sweep
type SweepReport struct {
	Processed int
	Sent      int
	Skipped   int
	Failed    int
}

// ReminderService scans for appointments due a 24-hour reminder and emails
// each customer once.
//
// Marking policy is mark-on-attempt: a matched record's reminderSent flag
// flips as soon as the sweep has handled it, whether the email was sent,
// skipped for lack of an address, or failed to deliver.
type ReminderService struct {
	appointmentRepo repository.AppointmentRepository
	mailRepo        repository.MailRepository
	deliveryRepo    repository.DeliveryLogRepository
	logger          logger.Logger
	metrics         *metrics.Metrics
	senderEmail     string
	lead            time.Duration
	window          time.Duration
}

// NewReminderService creates a new reminder service. lead is how far ahead
// of now the sweep looks (24h in production), window the ± margin around
// that target.
func NewReminderService(
	appointmentRepo repository.AppointmentRepository,
	mailRepo repository.MailRepository,
	deliveryRepo repository.DeliveryLogRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
	senderEmail string,
	lead time.Duration,
	window time.Duration,
) *ReminderService {
	return &ReminderService{
		appointmentRepo: appointmentRepo,
		mailRepo:        mailRepo,
		deliveryRepo:    deliveryRepo,
		logger:          logger,
		metrics:         metrics,
		senderEmail:     senderEmail,
		lead:            lead,
		window:          window,
	}
}

// RunSweep executes one sweep against the current clock
func (s *ReminderService) RunSweep(ctx context.Context) (SweepReport, error) {
	return s.RunSweepAt(ctx, time.Now())
}

// RunSweepAt executes one sweep as of the given instant. A query failure
// aborts the sweep; a single record's failure does not stop the rest.
func (s *ReminderService) RunSweepAt(ctx context.Context, now time.Time) (SweepReport, error) {
	target := now.Add(s.lead)
	from := target.Add(-s.window)
	to := target.Add(s.window)

	start := time.Now()

	appts, err := s.appointmentRepo.FindDueReminders(ctx, from, to)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("reminder_query").Inc()
		return SweepReport{}, fmt.Errorf("reminder query failed: %w", err)
	}

	var report SweepReport
	for _, appt := range appts {
		report.Processed++

		sent, err := s.remindOne(ctx, appt, now)
		if err != nil {
			report.Failed++
			s.metrics.ErrorsCount.WithLabelValues("send_reminder").Inc()
			s.logger.Error("Reminder failed",
				"slot", appt.Slot(),
				"email", appt.Email,
				"error", err)
			continue
		}

		if sent {
			report.Sent++
			s.metrics.RemindersSent.Inc()
		} else {
			report.Skipped++
			s.logger.Warn("Appointment has no email address, reminder skipped", "slot", appt.Slot())
		}
	}

	s.metrics.SweepDuration.Observe(time.Since(start).Seconds())
	s.logger.Info("Reminder sweep finished",
		"processed", report.Processed,
		"sent", report.Sent,
		"skipped", report.Skipped,
		"failed", report.Failed)

	return report, nil
}

// remindOne handles a single matched record: send when an address exists,
// then flip the flag regardless of the send outcome.
func (s *ReminderService) remindOne(ctx context.Context, appt *entity.Appointment, now time.Time) (bool, error) {
	var sendErr error
	sent := false

	if appt.Email != "" {
		email := templates.ReminderEmail(s.senderEmail, appt)
		sendErr = s.mailRepo.Send(ctx, email)
		recordDelivery(ctx, s.deliveryRepo, s.logger, entity.DeliveryReminder, email.To, appt.SlotTime, sendErr)
		sent = sendErr == nil
	}

	// Mark-on-attempt: the record never re-enters a later sweep
	if markErr := s.appointmentRepo.MarkReminderSent(ctx, appt.ID, now); markErr != nil {
		return sent, fmt.Errorf("mark reminder sent: %w", markErr)
	}

	if sendErr != nil {
		return false, fmt.Errorf("send reminder: %w", sendErr)
	}
	return sent, nil
}
