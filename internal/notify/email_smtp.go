package notify

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"appointment-reminder/pkg/logging"
)

// SMTPConfig holds credentials for an SMTP relay. The defaults target
// Gmail with an app password over implicit TLS.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
}

// SMTPSender delivers email through an authenticated SMTP relay.
type SMTPSender struct {
	cfg    SMTPConfig
	logger *logging.Logger
}

// NewSMTPSender creates an SMTP email sender. Returns nil when the
// credential pair is incomplete.
func NewSMTPSender(cfg SMTPConfig, logger *logging.Logger) *SMTPSender {
	if cfg.Username == "" || cfg.Password == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == 0 {
		cfg.Port = 465
	}
	if cfg.FromName == "" {
		cfg.FromName = "Appointment Bot"
	}
	return &SMTPSender{cfg: cfg, logger: logger}
}

// Send delivers one message over SMTP. The connection is dialed per
// send; delivery volume here is a handful of notifications per
// appointment, not a bulk pipeline.
func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	m := gomail.NewMsg()
	if err := m.FromFormat(s.cfg.FromName, s.cfg.Username); err != nil {
		return fmt.Errorf("notify: smtp from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("notify: smtp to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	if msg.HTML != "" {
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	}

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("notify: smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.Error("smtp send failed", "error", err, "to", msg.To, "host", s.cfg.Host)
		return fmt.Errorf("notify: smtp send failed: %w", err)
	}

	s.logger.Info("email sent via smtp", "to", msg.To, "subject", msg.Subject)
	return nil
}

var _ EmailSender = (*SMTPSender)(nil)
