package appointment

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"appointment-reminder/internal/validate"
	"appointment-reminder/pkg/logging"
)

// Handler handles HTTP requests for appointments
type Handler struct {
	scheduler *Scheduler
	logger    *logging.Logger
}

// NewHandler creates a new appointment handler
func NewHandler(scheduler *Scheduler, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		scheduler: scheduler,
		logger:    logger,
	}
}

// ScheduleRequest is the POST /api/appointments/schedule payload.
type ScheduleRequest struct {
	DateTime string `json:"dateTime"`
	Subject  string `json:"subject"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Schedule handles POST /api/appointments/schedule requests
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode schedule request", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.DateTime == "" || req.Subject == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid dateTime format, expected ISO-8601")
		return
	}

	if req.Email != "" && !validate.Email(req.Email) {
		writeError(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if req.Phone != "" && !validate.Phone(req.Phone) {
		writeError(w, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	appt, err := h.scheduler.Schedule(r.Context(), ScheduleInput{
		Subject:     req.Subject,
		ScheduledAt: scheduledAt,
		Email:       req.Email,
		Phone:       req.Phone,
	})
	switch {
	case errors.Is(err, ErrSubjectRequired), errors.Is(err, ErrPastScheduledAt):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("failed to schedule appointment", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"appointmentId": appt.ID,
		"message":       "Appointment scheduled successfully",
	})
}

// Cancel handles DELETE /api/appointments/{id} requests
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.scheduler.Cancel(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "Appointment not found")
			return
		}
		h.logger.Error("failed to cancel appointment", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Appointment cancelled",
	})
}

// Get handles GET /api/appointments/{id} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	appt, err := h.scheduler.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Appointment not found")
		return
	}

	writeJSON(w, http.StatusOK, appt)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
