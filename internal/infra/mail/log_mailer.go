// Package mail composes account mails and hands them to the delivery
// collaborator. Real transport is owned by an external system; the local
// implementation writes the message to the log so the links remain usable
// during development.
package mail

import (
	"context"
	"log/slog"

	"certshop/internal/domain/service"
)

// logMailer implements service.Mailer by logging the rendered message.
type logMailer struct {
	logger *slog.Logger
}

// NewLogMailer is the constructor for logMailer.
func NewLogMailer(logger *slog.Logger) service.Mailer {
	return &logMailer{logger: logger}
}

// Send records the outgoing mail. Never fails; the mail system is not a
// reason to fail a registration.
func (m *logMailer) Send(ctx context.Context, mail service.AccountMail) error {
	m.logger.LogAttrs(ctx, slog.LevelInfo, "outgoing account mail",
		slog.String("to", mail.To),
		slog.String("subject", mail.Subject),
		slog.String("html", mail.HTML),
	)

	return nil
}
