package mail

import (
	"context"
	"log/slog"

	"github.com/msomdec/eventpass/internal/domain"
)

// LogMailer writes messages to the log instead of delivering them. It is
// used when no provider API key is configured.
type LogMailer struct {
	log *slog.Logger
}

var _ domain.Mailer = (*LogMailer)(nil)

func NewLogMailer(log *slog.Logger) *LogMailer {
	if log == nil {
		log = slog.Default()
	}
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, email *domain.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	attachments := make([]string, 0, len(email.Attachments))
	for _, a := range email.Attachments {
		attachments = append(attachments, a.Filename)
	}
	m.log.InfoContext(ctx, "email not delivered (log mailer)",
		"from", email.From,
		"to", email.To,
		"subject", email.Subject,
		"attachments", attachments,
	)
	return nil
}
