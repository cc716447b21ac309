package ports

import "context"

type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Debug(ctx context.Context, msg string, args ...any)
}

type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// TokenIssuer mints and checks the short-lived tokens handed out after
// a successful email verification.
type TokenIssuer interface {
	Issue(email string) (string, error)
	Verify(token string) (email string, err error)
}
