// Package notify sends registration emails and records every outcome.
//
// Delivery failures never escape as errors: each send returns an Outcome
// that callers inspect, and the outcome is logged, counted and appended to
// the notification audit trail.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/a-h/templ"

	"github.com/msomdec/eventpass/internal/domain"
	"github.com/msomdec/eventpass/internal/metrics"
	"github.com/msomdec/eventpass/internal/view"
)

const (
	ConfirmationSubject = "Registration Confirmation"
	PassSubject         = "Your Registration Pass"
	PassFilename        = "registration-pass.pdf"
)

// Config is the process-wide delivery policy, read once at startup.
type Config struct {
	From string
	// Development redirects every message to OperatorEmail.
	Development   bool
	OperatorEmail string
}

// Recipient returns the address a message for registrant should go to.
func (c Config) Recipient(registrant string) string {
	if c.Development && c.OperatorEmail != "" {
		return c.OperatorEmail
	}
	return registrant
}

// Outcome is the result of one dispatch. Err is nil when the provider
// accepted the message.
type Outcome struct {
	Kind      domain.NotificationKind
	Recipient string
	Err       error
}

func (o Outcome) Delivered() bool {
	return o.Err == nil
}

// Dispatcher builds and sends the registration emails.
type Dispatcher struct {
	mailer  domain.Mailer
	audit   domain.NotificationLogRepository
	cfg     Config
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewDispatcher creates a Dispatcher. audit may be nil to skip the audit trail.
func NewDispatcher(mailer domain.Mailer, audit domain.NotificationLogRepository, cfg Config, m *metrics.Metrics) *Dispatcher {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Dispatcher{
		mailer:  mailer,
		audit:   audit,
		cfg:     cfg,
		metrics: m,
		logger:  slog.Default(),
	}
}

// SendConfirmation emails the registrant a welcome message.
func (d *Dispatcher) SendConfirmation(ctx context.Context, reg *domain.Registration) Outcome {
	return d.dispatch(ctx, reg, domain.NotificationConfirmation, ConfirmationSubject, view.ConfirmationEmail(reg.Name), nil)
}

// SendPass emails the registrant their pass document as a PDF attachment.
func (d *Dispatcher) SendPass(ctx context.Context, reg *domain.Registration, pdf []byte) Outcome {
	attachment := &domain.Attachment{
		Filename:    PassFilename,
		ContentType: "application/pdf",
		Content:     pdf,
	}
	return d.dispatch(ctx, reg, domain.NotificationPass, PassSubject, view.PassEmail(reg.Name), attachment)
}

func (d *Dispatcher) dispatch(ctx context.Context, reg *domain.Registration, kind domain.NotificationKind, subject string, body templ.Component, attachment *domain.Attachment) (out Outcome) {
	out = Outcome{Kind: kind, Recipient: d.cfg.Recipient(reg.Email)}
	defer func() {
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("mailer panic: %v", r)
		}
		d.record(ctx, reg.ID, out)
	}()

	var html bytes.Buffer
	if err := body.Render(ctx, &html); err != nil {
		out.Err = fmt.Errorf("render %s email: %w", kind, err)
		return out
	}

	email := &domain.Email{
		From:    d.cfg.From,
		To:      out.Recipient,
		Subject: subject,
		HTML:    html.String(),
	}
	if attachment != nil {
		email.Attachments = []domain.Attachment{*attachment}
	}

	if err := d.mailer.Send(ctx, email); err != nil {
		out.Err = fmt.Errorf("send %s email: %w", kind, err)
	}
	return out
}

func (d *Dispatcher) record(ctx context.Context, registrationID string, out Outcome) {
	rec := &domain.NotificationRecord{
		RegistrationID: registrationID,
		Kind:           out.Kind,
		Recipient:      out.Recipient,
		Status:         domain.NotificationSent,
	}
	if out.Err != nil {
		rec.Status = domain.NotificationFailed
		rec.Error = out.Err.Error()
		d.logger.WarnContext(ctx, "notification failed",
			"kind", out.Kind,
			"registration_id", registrationID,
			"recipient", out.Recipient,
			"error", out.Err,
		)
	} else {
		d.logger.InfoContext(ctx, "notification sent",
			"kind", out.Kind,
			"registration_id", registrationID,
			"recipient", out.Recipient,
		)
	}
	d.metrics.IncNotification(string(out.Kind), string(rec.Status))

	if d.audit == nil {
		return
	}
	// The audit write must not depend on a request that may already be gone.
	if err := d.audit.Append(context.WithoutCancel(ctx), rec); err != nil {
		d.logger.ErrorContext(ctx, "append notification record", "registration_id", registrationID, "error", err)
	}
}
