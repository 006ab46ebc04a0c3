package extract

import (
	"encoding/json"
	"net/http"
	"strings"

	"appointment-reminder/internal/validate"
	"appointment-reminder/pkg/logging"
)

// Handler handles HTTP requests for natural-language parsing
type Handler struct {
	extractor Extractor
	logger    *logging.Logger
}

// NewHandler creates a new parse handler. A nil extractor is allowed;
// requests then get a 503 telling the client to fall back to the form.
func NewHandler(extractor Extractor, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		extractor: extractor,
		logger:    logger,
	}
}

// ParseRequest is the POST /api/parse-message payload.
type ParseRequest struct {
	Message string `json:"message"`
}

// ParseMessage handles POST /api/parse-message requests
func (h *Handler) ParseMessage(w http.ResponseWriter, r *http.Request) {
	if h.extractor == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"success":          false,
			"error":            "Natural language processing not available",
			"fallback_to_form": true,
		})
		return
	}

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode parse request", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Message is required",
		})
		return
	}

	message = validate.SanitizeMessage(message)
	h.logger.Info("processing message", "length", len(message))

	res := h.extractor.Extract(r.Context(), message)

	if res.Error != "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":              false,
			"extraction":           res,
			"clarification_needed": res.ClarificationNeeded,
			"error":                res.Error,
		})
		return
	}

	if len(res.MissingFields) > 0 {
		clarification := res.ClarificationNeeded
		if clarification == "" {
			clarification = "Please provide: " + strings.Join(res.MissingFields, ", ")
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":              false,
			"extraction":           res,
			"clarification_needed": clarification,
			"missing_fields":       res.MissingFields,
		})
		return
	}

	if err := validate.Appointment(validate.Fields{
		Date:    res.Date,
		Time:    res.Time,
		Subject: res.Subject,
	}); err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":              false,
			"extraction":           res,
			"error":                err.Error(),
			"clarification_needed": "There's an issue: " + err.Error(),
		})
		return
	}

	h.logger.Info("extraction succeeded",
		"subject", res.Subject,
		"date", res.Date,
		"time", res.Time,
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":               true,
		"extraction":            res,
		"message":               "Appointment details extracted successfully",
		"requires_confirmation": true,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
