package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookcast-service/internal/usecase"
	"bookcast-service/pkg/logger"
)

// Handler exposes the booking and reminder flows over HTTP
type Handler struct {
	booking  *usecase.BookingService
	reminder *usecase.ReminderService
	logger   logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(booking *usecase.BookingService, reminder *usecase.ReminderService, logger logger.Logger) *Handler {
	return &Handler{
		booking:  booking,
		reminder: reminder,
		logger:   logger,
	}
}

// Book handles POST /api/book
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	var req usecase.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// An unparseable body surfaces as an internal error, same as any
		// other unexpected failure
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Internal Server Error",
			"details": err.Error(),
		})
		return
	}

	_, err := h.booking.Book(r.Context(), &req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Appointment booked successfully!"})
	case errors.Is(err, usecase.ErrMissingFields):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields."})
	case errors.Is(err, usecase.ErrBadSlotTime):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid date/time format."})
	case errors.Is(err, usecase.ErrSlotTaken):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "This slot is already booked!"})
	default:
		h.logger.Error("Booking failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Internal Server Error",
			"details": err.Error(),
		})
	}
}

// RunReminders handles POST /api/reminders/run
func (h *Handler) RunReminders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	report, err := h.reminder.RunSweep(r.Context())
	if err != nil {
		h.logger.Error("Reminder sweep failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Internal Server Error",
			"details": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Reminders sent",
		"count":   report.Processed,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
