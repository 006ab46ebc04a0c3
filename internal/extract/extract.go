// Package extract turns free-text appointment requests into structured
// fields using an LLM. Extraction is best-effort: failures surface in
// the Result so the caller can fall back to a manual form.
package extract

import "context"

// Extractor extracts appointment fields from a natural-language
// message. Implementations never return a transport error: anything
// that goes wrong is reported through Result.Error so HTTP handlers
// can degrade gracefully.
type Extractor interface {
	Extract(ctx context.Context, message string) Result
}

// Result is the structured outcome of one extraction. A non-empty
// Error means the message could not be understood; MissingFields lists
// required fields the message did not supply.
type Result struct {
	Date                string   `json:"date,omitempty"`
	Time                string   `json:"time,omitempty"`
	Subject             string   `json:"subject,omitempty"`
	Confidence          float64  `json:"confidence"`
	MissingFields       []string `json:"missing_fields"`
	ClarificationNeeded string   `json:"clarification_needed,omitempty"`
	Error               string   `json:"error,omitempty"`
}

// Complete reports whether date, time and subject were all extracted.
func (r Result) Complete() bool {
	return r.Error == "" && len(r.MissingFields) == 0
}
