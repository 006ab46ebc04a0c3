// Package validate checks the shape of appointment fields before the
// scheduler accepts them.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// maxMessageLen caps free-text input forwarded to the extractor.
	maxMessageLen = 500
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneStrip   = regexp.MustCompile(`[\s\-()]`)
	digitsOnly   = regexp.MustCompile(`^[0-9]+$`)
)

// Fields is the appointment payload subject to validation. Email and
// Phone are optional; empty values pass.
type Fields struct {
	Date    string
	Time    string
	Subject string
	Email   string
	Phone   string
}

// Date reports whether s parses as YYYY-MM-DD.
func Date(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// Clock reports whether s parses as HH:MM in 24-hour form.
func Clock(s string) bool {
	_, err := time.Parse(timeLayout, s)
	return err == nil
}

// Email reports whether s has a local@domain.tld shape.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Phone reports whether s contains 10-15 digits once spaces, dashes
// and parentheses are stripped.
func Phone(s string) bool {
	clean := phoneStrip.ReplaceAllString(s, "")
	if !digitsOnly.MatchString(strings.TrimPrefix(clean, "+")) {
		return false
	}
	n := len(strings.TrimPrefix(clean, "+"))
	return n >= 10 && n <= 15
}

// Appointment validates the complete payload and returns the first
// failing reason. It does not aggregate multiple errors.
func Appointment(f Fields) error {
	if f.Date == "" {
		return errors.New("Date is required")
	}
	if f.Time == "" {
		return errors.New("Time is required")
	}
	if strings.TrimSpace(f.Subject) == "" {
		return errors.New("Subject is required")
	}
	if !Date(f.Date) || !Clock(f.Time) {
		return fmt.Errorf("Invalid date or time format: %s %s", f.Date, f.Time)
	}
	if f.Email != "" && !Email(f.Email) {
		return errors.New("Invalid email format")
	}
	if f.Phone != "" && !Phone(f.Phone) {
		return errors.New("Invalid phone number format")
	}
	return nil
}

// SanitizeMessage trims user input, caps its length, and strips angle
// brackets before it reaches templates or the extractor prompt.
func SanitizeMessage(text string) string {
	text = strings.TrimSpace(text)
	if runes := []rune(text); len(runes) > maxMessageLen {
		text = string(runes[:maxMessageLen])
	}
	text = strings.ReplaceAll(text, "<", "")
	text = strings.ReplaceAll(text, ">", "")
	return text
}
