package appointment

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"appointment-reminder/internal/notify"
	"appointment-reminder/internal/observability/metrics"
	"appointment-reminder/pkg/logging"
)

// Notifier is the gateway the scheduler fires notifications through.
// Sends are best-effort: the boolean is observable for logging and
// metrics but never aborts the firing sequence.
type Notifier interface {
	SendEmail(ctx context.Context, to string, msg notify.RenderedEmail) bool
	SendSMS(ctx context.Context, to, body string) bool
}

// scheduledJob is a live registry entry. Pointer identity doubles as
// the job instance id: a fire callback that finds a different pointer
// (or none) under the lock lost a race to cancel and must not act.
type scheduledJob struct {
	kind   JobKind
	fireAt time.Time
	timer  *time.Timer
}

// Scheduler owns the appointment table and the job registry. The
// registry holds at most one pending job per appointment: the reminder
// until it fires, then the follow-up until it fires or the appointment
// is cancelled.
type Scheduler struct {
	mu    sync.Mutex
	appts map[string]*Appointment
	jobs  map[string]*scheduledJob

	gateway       Notifier
	followUpDelay time.Duration
	displayLoc    *time.Location
	now           func() time.Time
	metrics       *metrics.SchedulerMetrics
	logger        *logging.Logger
}

// Config holds scheduler construction parameters.
type Config struct {
	Gateway         Notifier
	FollowUpDelay   time.Duration
	DisplayLocation *time.Location
	Metrics         *metrics.SchedulerMetrics
	Logger          *logging.Logger
}

// NewScheduler creates an appointment scheduler.
func NewScheduler(cfg Config) *Scheduler {
	if cfg.FollowUpDelay <= 0 {
		cfg.FollowUpDelay = 2 * time.Minute
	}
	if cfg.DisplayLocation == nil {
		cfg.DisplayLocation = notify.DefaultDisplayLocation
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Scheduler{
		appts:         make(map[string]*Appointment),
		jobs:          make(map[string]*scheduledJob),
		gateway:       cfg.Gateway,
		followUpDelay: cfg.FollowUpDelay,
		displayLoc:    cfg.DisplayLocation,
		now:           time.Now,
		metrics:       cfg.Metrics,
		logger:        cfg.Logger,
	}
}

// ScheduleInput is the validated payload for a new appointment.
type ScheduleInput struct {
	Subject     string
	ScheduledAt time.Time
	Email       string
	Phone       string
}

// Schedule stores the appointment as pending, registers the reminder
// job at the scheduled time, and sends a confirmation on each provided
// channel. Confirmation failures do not fail scheduling.
func (s *Scheduler) Schedule(ctx context.Context, input ScheduleInput) (*Appointment, error) {
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return nil, ErrSubjectRequired
	}
	if !input.ScheduledAt.After(s.now()) {
		return nil, ErrPastScheduledAt
	}

	appt := &Appointment{
		ID:          uuid.NewString(),
		Subject:     subject,
		ScheduledAt: input.ScheduledAt.UTC(),
		Email:       input.Email,
		Phone:       input.Phone,
		Status:      StatusPending,
		CreatedAt:   s.now().UTC(),
	}

	job := &scheduledJob{kind: KindReminder, fireAt: appt.ScheduledAt}

	s.mu.Lock()
	s.appts[appt.ID] = appt
	s.jobs[appt.ID] = job
	job.timer = time.AfterFunc(appt.ScheduledAt.Sub(s.now()), func() {
		s.fireReminder(appt.ID, job)
	})
	s.mu.Unlock()

	s.metrics.ObserveScheduled()
	s.logger.Info("appointment scheduled",
		"id", appt.ID,
		"subject", appt.Subject,
		"scheduled_at", appt.ScheduledAt.Format(time.RFC3339),
		"has_email", appt.Email != "",
		"has_phone", appt.Phone != "",
	)

	if appt.Email != "" {
		s.gateway.SendEmail(ctx, appt.Email, notify.ConfirmationEmail(appt.Subject, appt.ScheduledAt, s.displayLoc))
	}
	if appt.Phone != "" {
		s.gateway.SendSMS(ctx, appt.Phone, notify.ConfirmationSMS(appt.Subject, appt.ScheduledAt, s.displayLoc))
	}

	return appt, nil
}

// fireReminder runs on the reminder timer goroutine. Consuming the
// reminder entry and registering the follow-up happen under one lock
// acquisition so a concurrent Cancel sees either the reminder or the
// follow-up, never an intermediate state.
func (s *Scheduler) fireReminder(id string, job *scheduledJob) {
	s.mu.Lock()
	if s.jobs[id] != job {
		// Cancel won the race; the job no longer exists.
		s.mu.Unlock()
		return
	}
	appt := s.appts[id]
	delete(s.jobs, id)
	appt.Status = StatusReminderFired

	if appt.HasContact() {
		followUp := &scheduledJob{kind: KindFollowUp, fireAt: appt.ScheduledAt.Add(s.followUpDelay)}
		delay := followUp.fireAt.Sub(s.now())
		if delay < 0 {
			delay = 0
		}
		s.jobs[id] = followUp
		followUp.timer = time.AfterFunc(delay, func() {
			s.fireFollowUp(id, followUp)
		})
	}
	email, phone, subject, at := appt.Email, appt.Phone, appt.Subject, appt.ScheduledAt
	s.mu.Unlock()

	s.metrics.ObserveFired(string(KindReminder))
	s.logger.Info("reminder fired", "id", id, "subject", subject)

	ctx := context.Background()
	if email != "" {
		s.gateway.SendEmail(ctx, email, notify.ReminderEmail(subject, at, s.displayLoc))
	}
	if phone != "" {
		s.gateway.SendSMS(ctx, phone, notify.ReminderSMS(subject, at, s.displayLoc))
	}
}

// fireFollowUp runs on the follow-up timer goroutine.
func (s *Scheduler) fireFollowUp(id string, job *scheduledJob) {
	s.mu.Lock()
	if s.jobs[id] != job {
		s.mu.Unlock()
		return
	}
	appt := s.appts[id]
	delete(s.jobs, id)
	appt.Status = StatusFollowUpFired
	email, phone, subject, at := appt.Email, appt.Phone, appt.Subject, appt.ScheduledAt
	s.mu.Unlock()

	s.metrics.ObserveFired(string(KindFollowUp))
	s.logger.Info("follow-up fired", "id", id, "subject", subject)

	ctx := context.Background()
	if email != "" {
		s.gateway.SendEmail(ctx, email, notify.FollowUpEmail(subject, at, s.displayLoc))
	}
	if phone != "" {
		s.gateway.SendSMS(ctx, phone, notify.FollowUpSMS(subject, at, s.displayLoc))
	}
}

// Cancel removes the pending job for the appointment and marks it
// cancelled. ErrNotFound when no pending job exists: unknown id, both
// jobs already fired, or a previous cancel. A successful cancel
// guarantees the removed job instance never fires.
func (s *Scheduler) Cancel(id string) error {
	s.mu.Lock()
	job, ok := s.jobs[id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	job.timer.Stop()
	delete(s.jobs, id)
	if appt := s.appts[id]; appt != nil {
		appt.Status = StatusCancelled
	}
	s.mu.Unlock()

	s.metrics.ObserveCancelled()
	s.logger.Info("appointment cancelled", "id", id, "pending_kind", string(job.kind))
	return nil
}

// Get returns a snapshot of the appointment.
func (s *Scheduler) Get(id string) (Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, ok := s.appts[id]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return *appt, nil
}

// PendingJob reports the kind and fire time of the appointment's
// pending job, if any.
func (s *Scheduler) PendingJob(id string) (JobKind, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return "", time.Time{}, false
	}
	return job.kind, job.fireAt, true
}

// Stop cancels all pending timers. Used on shutdown; appointments are
// in-memory only and do not survive a restart anyway.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, job := range s.jobs {
		job.timer.Stop()
		delete(s.jobs, id)
	}
}
