package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/expatsolutions/leads-api/config"
	"github.com/expatsolutions/leads-api/internal/models"
	"github.com/expatsolutions/leads-api/pkg/logger"
	"github.com/expatsolutions/leads-api/pkg/mailer"
	"github.com/expatsolutions/leads-api/pkg/metrics"
)

// leadSubject identifies new-lead notifications in staff inboxes
const leadSubject = "New consultation lead – Expat Solutions in Asia"

// dispatchTimeout bounds one notification attempt end to end so a stalled
// relay cannot leak background goroutines
const dispatchTimeout = 30 * time.Second

// Dispatcher sends staff-facing email alerts when a lead is created.
// Delivery is best-effort: failures are logged and never reach the
// request that triggered them.
type Dispatcher struct {
	mailer     mailer.Mailer
	recipients []string
}

// NewDispatcher creates a dispatcher for the configured recipient addresses
func NewDispatcher(m mailer.Mailer, cfg config.NotificationsConfig) *Dispatcher {
	return &Dispatcher{
		mailer:     m,
		recipients: dedupeRecipients(cfg.PrimaryEmail, cfg.SecondaryEmail),
	}
}

// Recipients returns the resolved notification addresses
func (d *Dispatcher) Recipients() []string {
	return d.recipients
}

// DispatchLeadCreated schedules a notification for a freshly stored lead.
// It returns immediately; the send happens on its own goroutine.
func (d *Dispatcher) DispatchLeadCreated(lead *models.Lead, id string) {
	if !d.mailer.Configured() {
		// Mail relay not configured, skip silently
		metrics.LeadNotifications.WithLabelValues("skipped").Inc()
		logger.Info("Mail relay not configured, skipping staff notification",
			zap.String("lead_id", id))
		return
	}
	if len(d.recipients) == 0 {
		metrics.LeadNotifications.WithLabelValues("skipped").Inc()
		logger.Info("No notification recipients configured, skipping staff notification",
			zap.String("lead_id", id))
		return
	}

	msg := mailer.Message{
		To:      d.recipients,
		ReplyTo: lead.Email,
		Subject: leadSubject,
		Body:    formatLeadBody(lead, id),
	}

	// Run in goroutine to avoid blocking
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		logger.Info("Sending staff notification",
			zap.String("lead_id", id),
			zap.Int("recipients", len(msg.To)))

		if err := d.mailer.Send(ctx, msg); err != nil {
			metrics.LeadNotifications.WithLabelValues("error").Inc()
			logger.Error("Failed to send staff notification",
				zap.Error(err),
				zap.String("lead_id", id))
			return
		}

		metrics.LeadNotifications.WithLabelValues("success").Inc()
		logger.Info("Staff notification sent",
			zap.String("lead_id", id))
	}()
}

// formatLeadBody renders the fixed plaintext notification for one lead
func formatLeadBody(lead *models.Lead, id string) string {
	phone := lead.Phone
	if phone == "" {
		phone = "not provided"
	}
	notes := lead.Notes
	if notes == "" {
		notes = "none"
	}

	var b strings.Builder
	b.WriteString("A new lead was submitted through the website:\n\n")
	fmt.Fprintf(&b, "ID: %s\n", id)
	fmt.Fprintf(&b, "Name: %s\n", lead.Name)
	fmt.Fprintf(&b, "Email: %s\n", lead.Email)
	fmt.Fprintf(&b, "Phone: %s\n", phone)
	fmt.Fprintf(&b, "Interest: %s\n", lead.Interest)
	fmt.Fprintf(&b, "Notes: %s\n", notes)
	fmt.Fprintf(&b, "\nReply directly to %s to follow up.\n", lead.Email)
	return b.String()
}

// dedupeRecipients drops blank and duplicate addresses while preserving
// the configured order
func dedupeRecipients(addresses ...string) []string {
	seen := make(map[string]struct{}, len(addresses))
	recipients := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		recipients = append(recipients, addr)
	}
	return recipients
}
