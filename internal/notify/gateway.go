package notify

import (
	"context"

	"appointment-reminder/internal/observability/metrics"
	"appointment-reminder/pkg/logging"
)

// Gateway is the fire-and-forget boundary the scheduler talks to.
// Every send reports success as a boolean; transport failures are
// logged and swallowed here and never propagate to scheduling.
type Gateway struct {
	email   EmailSender
	sms     SMSSender
	metrics *metrics.SchedulerMetrics
	logger  *logging.Logger
}

// NewGateway creates a notification gateway. A nil email or sms sender
// marks that channel as unconfigured.
func NewGateway(email EmailSender, sms SMSSender, m *metrics.SchedulerMetrics, logger *logging.Logger) *Gateway {
	if logger == nil {
		logger = logging.Default()
	}
	return &Gateway{
		email:   email,
		sms:     sms,
		metrics: m,
		logger:  logger,
	}
}

// EmailConfigured reports whether an email transport is available.
func (g *Gateway) EmailConfigured() bool {
	return g != nil && g.email != nil
}

// SMSEnabled reports whether an SMS transport is available.
func (g *Gateway) SMSEnabled() bool {
	return g != nil && g.sms != nil
}

// SendEmail delivers a rendered email. Returns false on any failure.
func (g *Gateway) SendEmail(ctx context.Context, to string, msg RenderedEmail) bool {
	if g.email == nil {
		g.logger.Debug("email not configured - skipping", "to", to)
		return false
	}

	err := g.email.Send(ctx, EmailMessage{
		To:      to,
		Subject: msg.Subject,
		Body:    msg.Plain,
		HTML:    msg.HTML,
	})
	if err != nil {
		g.logger.Error("email delivery failed", "error", err, "to", to, "subject", msg.Subject)
		g.metrics.ObserveNotification("email", false)
		return false
	}

	g.metrics.ObserveNotification("email", true)
	return true
}

// SendSMS delivers an SMS body. Returns false without attempting
// delivery when SMS is unconfigured.
func (g *Gateway) SendSMS(ctx context.Context, to, body string) bool {
	if g.sms == nil {
		g.logger.Debug("sms not enabled - skipping", "to", to)
		return false
	}

	if err := g.sms.SendSMS(ctx, to, body); err != nil {
		g.logger.Error("sms delivery failed", "error", err, "to", to)
		g.metrics.ObserveNotification("sms", false)
		return false
	}

	g.metrics.ObserveNotification("sms", true)
	return true
}
