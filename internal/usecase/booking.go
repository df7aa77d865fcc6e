package usecase

import (
	"context"
	"errors"
	"fmt"

	"bookcast-service/internal/domain/entity"
	"bookcast-service/internal/domain/repository"
	"bookcast-service/pkg/logger"
	"bookcast-service/pkg/metrics"
	"bookcast-service/templates"
)

// Booking failure modes surfaced to the transport layer
var (
	ErrMissingFields = errors.New("missing required fields")
	ErrBadSlotTime   = errors.New("invalid dateTime value")
	ErrSlotTaken     = errors.New("slot is already booked")
)

// BookingRequest carries the four fields posted by the booking form
type BookingRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	DateTime string `json:"dateTime"`
}

// BookingService runs the conflict-check-then-create booking flow
type BookingService struct {
	appointmentRepo repository.AppointmentRepository
	mailRepo        repository.MailRepository
	deliveryRepo    repository.DeliveryLogRepository
	logger          logger.Logger
	metrics         *metrics.Metrics
	senderEmail     string
	operatorEmail   string
	notifyOperator  bool
}

// NewBookingService creates a new booking service
func NewBookingService(
	appointmentRepo repository.AppointmentRepository,
	mailRepo repository.MailRepository,
	deliveryRepo repository.DeliveryLogRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
	senderEmail string,
	operatorEmail string,
	notifyOperator bool,
) *BookingService {
	return &BookingService{
		appointmentRepo: appointmentRepo,
		mailRepo:        mailRepo,
		deliveryRepo:    deliveryRepo,
		logger:          logger,
		metrics:         metrics,
		senderEmail:     senderEmail,
		operatorEmail:   operatorEmail,
		notifyOperator:  notifyOperator,
	}
}

// Book validates the request, checks the slot for conflicts, creates the
// appointment record and sends the confirmation and operator emails.
//
// The record create and the two sends are independent external calls with
// no rollback: a failure partway leaves the earlier effects in place.
func (s *BookingService) Book(ctx context.Context, req *BookingRequest) (*entity.Appointment, error) {
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.DateTime == "" {
		return nil, ErrMissingFields
	}

	slot, err := entity.ParseSlot(req.DateTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadSlotTime, req.DateTime)
	}

	count, err := s.appointmentRepo.CountBookedAt(ctx, slot)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("conflict_check").Inc()
		return nil, fmt.Errorf("conflict check failed: %w", err)
	}
	if count > 0 {
		s.metrics.BookingConflicts.Inc()
		return nil, ErrSlotTaken
	}

	appt := &entity.Appointment{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		SlotTime:     slot,
		Status:       entity.StatusBooked,
		ReminderSent: false,
	}

	if err := s.appointmentRepo.Create(ctx, appt); err != nil {
		// The unique slot index caught a concurrent booking that won the race
		if errors.Is(err, repository.ErrDuplicateSlot) {
			s.metrics.BookingConflicts.Inc()
			return nil, ErrSlotTaken
		}
		s.metrics.ErrorsCount.WithLabelValues("create_appointment").Inc()
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	s.metrics.BookingsCreated.Inc()

	if err := s.deliver(ctx, entity.DeliveryConfirmation, templates.ConfirmationEmail(s.senderEmail, appt), appt); err != nil {
		return nil, err
	}

	if s.notifyOperator {
		if err := s.deliver(ctx, entity.DeliveryOperator, templates.OperatorEmail(s.senderEmail, s.operatorEmail, appt), appt); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Appointment booked",
		"slot", appt.Slot(),
		"name", appt.Name,
		"email", appt.Email)

	return appt, nil
}

// deliver sends one email and records the attempt in the delivery log
func (s *BookingService) deliver(ctx context.Context, kind string, email *entity.OutboundEmail, appt *entity.Appointment) error {
	sendErr := s.mailRepo.Send(ctx, email)
	recordDelivery(ctx, s.deliveryRepo, s.logger, kind, email.To, appt.SlotTime, sendErr)

	if sendErr != nil {
		s.metrics.ErrorsCount.WithLabelValues("send_email").Inc()
		return fmt.Errorf("failed to send %s email: %w", kind, sendErr)
	}
	return nil
}
