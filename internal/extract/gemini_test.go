package extract

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"date":"2030-01-01"}`, `{"date":"2030-01-01"}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"unterminated fence", "```json\n{\"a\":1}", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}

func TestFinishResult(t *testing.T) {
	t.Run("complete extraction untouched", func(t *testing.T) {
		res := finishResult(Result{
			Date:          "2030-01-01",
			Time:          "15:00",
			Subject:       "Dentist",
			Confidence:    0.95,
			MissingFields: []string{},
		})
		assert.Empty(t, res.Error)
		assert.Empty(t, res.MissingFields)
		assert.True(t, res.Complete())
	})

	t.Run("absent fields recorded once", func(t *testing.T) {
		res := finishResult(Result{MissingFields: []string{"time"}})
		assert.ElementsMatch(t, []string{"date", "time", "subject"}, res.MissingFields)
	})

	t.Run("invalid date becomes error", func(t *testing.T) {
		res := finishResult(Result{Date: "next tuesday", Time: "15:00", Subject: "Dentist"})
		assert.Equal(t, "Invalid date format", res.Error)
		assert.Contains(t, res.MissingFields, "date")
		assert.False(t, res.Complete())
	})

	t.Run("nil missing fields normalized", func(t *testing.T) {
		res := finishResult(Result{Date: "2030-01-01", Time: "15:00", Subject: "Dentist"})
		assert.NotNil(t, res.MissingFields)
	})
}

func TestSystemPrompt(t *testing.T) {
	now := time.Date(2030, 1, 1, 15, 0, 0, 0, time.UTC)
	prompt := systemPrompt(now)

	assert.Contains(t, prompt, "2030-01-01")
	assert.Contains(t, prompt, "Tuesday, January 1, 2030 at 03:00 PM")
	assert.True(t, strings.Contains(prompt, "missing_fields"))
}

func TestGeminiExtractor_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiExtractor(context.Background(), GeminiConfig{})
	assert.Error(t, err)
}

func TestGeminiExtractor_MessageTooShort(t *testing.T) {
	// The length guard runs before any API call, so a client built
	// with a bogus key still answers locally.
	g, err := NewGeminiExtractor(context.Background(), GeminiConfig{APIKey: "test-key"})
	if err != nil {
		t.Skipf("client construction unavailable: %v", err)
	}
	defer g.Close()

	res := g.Extract(context.Background(), "hi")
	assert.Equal(t, "Message too short", res.Error)
	assert.NotEmpty(t, res.ClarificationNeeded)
}
