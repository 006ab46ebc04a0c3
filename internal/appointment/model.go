package appointment

import (
	"errors"
	"time"
)

// Status tracks the lifecycle of an appointment. Transitions only move
// forward; cancelled and follow_up_fired are terminal.
type Status string

const (
	StatusPending       Status = "pending"
	StatusReminderFired Status = "reminder_fired"
	StatusFollowUpFired Status = "follow_up_fired"
	StatusCancelled     Status = "cancelled"
)

// JobKind identifies which delayed action a registry entry represents.
type JobKind string

const (
	KindReminder JobKind = "reminder"
	KindFollowUp JobKind = "follow_up"
)

// Appointment is a user-defined event with a subject, a target
// timestamp and optional notification channels. An appointment with
// neither channel is valid but produces no notifications.
type Appointment struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasContact reports whether at least one notification channel is set.
func (a *Appointment) HasContact() bool {
	return a.Email != "" || a.Phone != ""
}

var (
	// ErrNotFound is returned by Cancel and Get when no appointment
	// with a pending job (Cancel) or no appointment at all (Get)
	// matches the id.
	ErrNotFound = errors.New("appointment not found")

	// ErrSubjectRequired is returned when the subject is empty.
	ErrSubjectRequired = errors.New("subject is required")

	// ErrPastScheduledAt is returned when the requested time is not in
	// the future.
	ErrPastScheduledAt = errors.New("scheduled time must be in the future")
)
