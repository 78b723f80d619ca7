package ports

import "context"

// Mailer delivers email alerts. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// NoopMailer is the default when no SMTP relay is configured.
var NoopMailer Mailer = noopMailer{}

type noopMailer struct{}

func (noopMailer) Send(context.Context, []string, string, string) error { return nil }
