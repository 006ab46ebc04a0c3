package router

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthHandler reports service liveness and which notification
// channels are configured.
type HealthHandler struct {
	emailConfigured bool
	smsEnabled      bool
	llmEnabled      bool
	now             func() time.Time
}

// NewHealthHandler creates a health handler advertising the given
// capabilities.
func NewHealthHandler(emailConfigured, smsEnabled, llmEnabled bool) *HealthHandler {
	return &HealthHandler{
		emailConfigured: emailConfigured,
		smsEnabled:      smsEnabled,
		llmEnabled:      llmEnabled,
		now:             time.Now,
	}
}

// Check handles GET /api/health requests
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":           "OK",
		"timestamp":        h.now().Format(time.RFC3339),
		"email_configured": h.emailConfigured,
		"sms_enabled":      h.smsEnabled,
		"llm_enabled":      h.llmEnabled,
	})
}
