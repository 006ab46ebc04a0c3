package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sethvargo/go-retry"
	"google.golang.org/api/option"

	"appointment-reminder/internal/validate"
	"appointment-reminder/pkg/logging"
)

const (
	defaultModel       = "gemini-2.0-flash"
	defaultMaxAttempts = 3
	defaultRetryBase   = 2 * time.Second

	// minMessageLen guards against messages too short to carry any
	// appointment details.
	minMessageLen = 3
)

// GeminiConfig holds extractor construction parameters.
type GeminiConfig struct {
	APIKey         string
	Model          string
	MaxAttempts    int
	RetryBaseDelay time.Duration
	Logger         *logging.Logger
}

// GeminiExtractor implements Extractor using Google's Gemini API with
// JSON-mode output.
type GeminiExtractor struct {
	client      *genai.Client
	modelID     string
	maxAttempts int
	retryBase   time.Duration
	now         func() time.Time
	logger      *logging.Logger
}

var _ Extractor = (*GeminiExtractor)(nil)

// NewGeminiExtractor creates a Gemini-backed extractor.
func NewGeminiExtractor(ctx context.Context, cfg GeminiConfig) (*GeminiExtractor, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("extract: gemini api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = defaultRetryBase
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("extract: failed to create gemini client: %w", err)
	}

	return &GeminiExtractor{
		client:      client,
		modelID:     cfg.Model,
		maxAttempts: cfg.MaxAttempts,
		retryBase:   cfg.RetryBaseDelay,
		now:         time.Now,
		logger:      cfg.Logger,
	}, nil
}

// Extract asks Gemini for structured appointment fields. API failures
// are retried with exponential backoff; after the last attempt the
// error is folded into the Result.
func (g *GeminiExtractor) Extract(ctx context.Context, message string) Result {
	if len(strings.TrimSpace(message)) < minMessageLen {
		return Result{
			Error:               "Message too short",
			ClarificationNeeded: "Please describe your appointment (e.g., 'Dentist tomorrow at 3pm')",
		}
	}

	var raw string
	backoff := retry.WithMaxRetries(uint64(g.maxAttempts-1), retry.NewExponential(g.retryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		text, err := g.generate(ctx, message)
		if err != nil {
			g.logger.Warn("gemini call failed", "error", err)
			return retry.RetryableError(err)
		}
		raw = text
		return nil
	})
	if err != nil {
		g.logger.Error("extraction failed after retries", "error", err)
		return Result{
			Error:               fmt.Sprintf("LLM service error: %v", err),
			ClarificationNeeded: "I'm having trouble understanding. Could you please rephrase using format: 'Subject on Date at Time'?",
		}
	}

	var res Result
	if err := json.Unmarshal([]byte(stripFences(raw)), &res); err != nil {
		g.logger.Error("gemini returned malformed json", "error", err)
		return Result{
			Error:               "Failed to extract appointment details",
			ClarificationNeeded: "Could you please rephrase your appointment request?",
		}
	}

	res = finishResult(res)
	g.logger.Info("extraction complete",
		"confidence", res.Confidence,
		"missing_fields", res.MissingFields,
	)
	return res
}

// Close releases the underlying Gemini client.
func (g *GeminiExtractor) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func (g *GeminiExtractor) generate(ctx context.Context, message string) (string, error) {
	model := g.client.GenerativeModel(g.modelID)
	model.SetTemperature(0.1)
	model.GenerationConfig.ResponseMIMEType = "application/json"

	prompt := fmt.Sprintf("%s\n\nUser message: %q\n\nExtract appointment details and respond with valid JSON only:",
		systemPrompt(g.now()), message)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("gemini returned empty content")
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

func systemPrompt(now time.Time) string {
	return fmt.Sprintf(`You are an appointment scheduling assistant. Extract appointment details from natural, casual user messages.

Current date and time: %s
Current date: %s

RULES:
1. Accept any date. Never reject a date.
2. Parse relative dates: "tomorrow", "today", "next Monday", "in 2 days", etc.
3. Parse times in any format: "3pm" is "15:00", "10:30am" is "10:30", "noon" is "12:00"
4. Extract the subject from ANY part of the message: nouns, activities, keywords like "dentist", "meeting with John", "gym"
5. Word order does NOT matter
6. If date, time or subject is missing, ask for clarification
7. Be lenient and try your best to extract something useful

Return ONLY valid JSON matching this schema:
{
    "date": "YYYY-MM-DD or null",
    "time": "HH:MM or null",
    "subject": "appointment subject or null",
    "confidence": 0.0-1.0,
    "missing_fields": ["field1", "field2"],
    "clarification_needed": "question to ask user or null",
    "error": "error message or null"
}`,
		now.Format("Monday, January 2, 2006 at 03:04 PM"),
		now.Format("2006-01-02"),
	)
}

// stripFences removes a markdown code fence wrapper that some models
// emit despite the JSON response MIME type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// finishResult normalizes a decoded extraction: an unparseable date
// becomes an error, and absent required fields are recorded in
// MissingFields exactly once.
func finishResult(res Result) Result {
	if res.Date != "" && !validate.Date(res.Date) {
		res.Error = "Invalid date format"
		res.Date = ""
	}
	if res.MissingFields == nil {
		res.MissingFields = []string{}
	}
	if res.Date == "" {
		res.MissingFields = appendMissing(res.MissingFields, "date")
	}
	if res.Time == "" {
		res.MissingFields = appendMissing(res.MissingFields, "time")
	}
	if strings.TrimSpace(res.Subject) == "" {
		res.MissingFields = appendMissing(res.MissingFields, "subject")
	}
	return res
}

func appendMissing(fields []string, name string) []string {
	for _, f := range fields {
		if f == name {
			return fields
		}
	}
	return append(fields, name)
}
