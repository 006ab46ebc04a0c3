package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointment-reminder/pkg/logging"
)

type fakeExtractor struct {
	result      Result
	lastMessage string
}

func (f *fakeExtractor) Extract(_ context.Context, message string) Result {
	f.lastMessage = message
	return f.result
}

func doParse(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/parse-message", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ParseMessage(w, req)
	return w
}

func TestParseMessage_ExtractorDisabled(t *testing.T) {
	h := NewHandler(nil, logging.Default())

	w := doParse(t, h, `{"message":"dentist tomorrow at 3pm"}`)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, true, resp["fallback_to_form"])
}

func TestParseMessage_EmptyMessage(t *testing.T) {
	h := NewHandler(&fakeExtractor{}, logging.Default())

	for _, body := range []string{`{}`, `{"message":""}`, `{"message":"   "}`} {
		w := doParse(t, h, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Message is required")
	}
}

func TestParseMessage_InvalidJSON(t *testing.T) {
	h := NewHandler(&fakeExtractor{}, logging.Default())

	w := doParse(t, h, "not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseMessage_SanitizesInput(t *testing.T) {
	fake := &fakeExtractor{result: Result{Error: "Message too short"}}
	h := NewHandler(fake, logging.Default())

	doParse(t, h, `{"message":"<script>dentist tomorrow</script>"}`)

	assert.NotContains(t, fake.lastMessage, "<")
	assert.NotContains(t, fake.lastMessage, ">")
	assert.Contains(t, fake.lastMessage, "dentist tomorrow")
}

func TestParseMessage_Success(t *testing.T) {
	fake := &fakeExtractor{result: Result{
		Date:          "2030-01-01",
		Time:          "15:00",
		Subject:       "Dentist appointment",
		Confidence:    0.95,
		MissingFields: []string{},
	}}
	h := NewHandler(fake, logging.Default())

	w := doParse(t, h, `{"message":"dentist on jan 1 2030 at 3pm"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success              bool   `json:"success"`
		Message              string `json:"message"`
		RequiresConfirmation bool   `json:"requires_confirmation"`
		Extraction           Result `json:"extraction"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.RequiresConfirmation)
	assert.Equal(t, "Dentist appointment", resp.Extraction.Subject)
	assert.Equal(t, "2030-01-01", resp.Extraction.Date)
}

func TestParseMessage_MissingFields(t *testing.T) {
	fake := &fakeExtractor{result: Result{
		Date:                "2030-01-01",
		Subject:             "Meeting",
		Confidence:          0.7,
		MissingFields:       []string{"time"},
		ClarificationNeeded: "What time is the meeting?",
	}}
	h := NewHandler(fake, logging.Default())

	w := doParse(t, h, `{"message":"meeting next monday"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "What time is the meeting?", resp["clarification_needed"])
	assert.Equal(t, []any{"time"}, resp["missing_fields"])
}

func TestParseMessage_MissingFieldsDefaultClarification(t *testing.T) {
	fake := &fakeExtractor{result: Result{
		Subject:       "Meeting",
		MissingFields: []string{"date", "time"},
	}}
	h := NewHandler(fake, logging.Default())

	w := doParse(t, h, `{"message":"a meeting sometime"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please provide: date, time")
}

func TestParseMessage_ExtractionError(t *testing.T) {
	fake := &fakeExtractor{result: Result{
		Error:               "Message too short",
		ClarificationNeeded: "Please describe your appointment (e.g., 'Dentist tomorrow at 3pm')",
	}}
	h := NewHandler(fake, logging.Default())

	w := doParse(t, h, `{"message":"hi"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Message too short", resp["error"])
}

func TestParseMessage_ExtractionFailsValidation(t *testing.T) {
	fake := &fakeExtractor{result: Result{
		Date:          "2030-13-45",
		Time:          "15:00",
		Subject:       "Dentist",
		MissingFields: []string{},
	}}
	h := NewHandler(fake, logging.Default())

	w := doParse(t, h, `{"message":"dentist on the 45th"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "Invalid date or time format")
	assert.Contains(t, resp["clarification_needed"], "There's an issue")
}
