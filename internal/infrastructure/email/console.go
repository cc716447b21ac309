package email

import (
	"context"

	"dashboard-rbac/internal/ports"
)

// ConsoleSender logs messages instead of delivering them. Dev and test
// environments only.
type ConsoleSender struct {
	logger ports.Logger
}

var _ ports.EmailSender = (*ConsoleSender)(nil)

func NewConsoleSender(logger ports.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger}
}

func (s *ConsoleSender) Send(ctx context.Context, msg ports.EmailMessage) error {
	s.logger.Info(ctx, "email message",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
