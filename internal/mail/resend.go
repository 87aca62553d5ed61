// Package mail delivers transactional email through an external provider.
package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/msomdec/eventpass/internal/domain"
)

// ResendMailer sends email through the Resend HTTP API.
type ResendMailer struct {
	client *resend.Client
}

var _ domain.Mailer = (*ResendMailer)(nil)

// NewResendMailer wraps an API client built with resend.NewClient.
func NewResendMailer(client *resend.Client) *ResendMailer {
	return &ResendMailer{client: client}
}

// Send hands the message to Resend. Any transport or API error is returned.
func (m *ResendMailer) Send(ctx context.Context, email *domain.Email) error {
	req := &resend.SendEmailRequest{
		From:    email.From,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
	}
	for _, a := range email.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Content:     a.Content,
			Filename:    a.Filename,
			ContentType: a.ContentType,
		})
	}

	if _, err := m.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("send email via resend: %w", err)
	}
	return nil
}
