package mailer

import (
	"context"
	"fmt"
	"time"

	mail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/expatsolutions/leads-api/config"
	"github.com/expatsolutions/leads-api/pkg/logger"
	"github.com/expatsolutions/leads-api/pkg/metrics"
)

// Message is a plain-text email
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

// Mailer delivers messages to staff mailboxes
type Mailer interface {
	Send(ctx context.Context, msg Message) error
	Configured() bool
}

// SMTPMailer delivers messages over SMTP with opportunistic STARTTLS.
// Sessions upgrade to TLS when the server offers it and continue in
// plaintext when it does not.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer creates a mailer from SMTP settings
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Configured reports whether enough settings are present to attempt delivery
func (m *SMTPMailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.From != ""
}

// Send delivers a message over a fresh SMTP session. Notifications are rare
// enough that connection reuse is not worth the bookkeeping.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if !m.Configured() {
		return fmt.Errorf("smtp is not configured")
	}

	start := time.Now()
	err := m.send(ctx, msg)
	duration := metrics.MeasureDuration(start)

	status := "success"
	if err != nil {
		status = "error"
	}

	metrics.MailRequestDuration.WithLabelValues("send", status).Observe(duration)
	metrics.MailRequestTotal.WithLabelValues("send", status).Inc()
	logger.LogAPICall("smtp", "send", status, duration,
		zap.Int("recipients", len(msg.To)))

	return err
}

func (m *SMTPMailer) send(ctx context.Context, msg Message) error {
	mm := mail.NewMsg()
	if err := mm.From(m.cfg.From); err != nil {
		return fmt.Errorf("failed to set sender address: %w", err)
	}
	if err := mm.To(msg.To...); err != nil {
		return fmt.Errorf("failed to set recipient addresses: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := mm.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("failed to set reply-to address: %w", err)
		}
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextPlain, msg.Body)

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(time.Duration(m.cfg.TimeoutSeconds) * time.Second),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("failed to deliver mail: %w", err)
	}
	return nil
}
