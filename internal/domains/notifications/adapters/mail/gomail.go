package mail

import (
	"context"
	"errors"

	gomail "gopkg.in/gomail.v2"

	"github.com/azaconnect/maintenance-api/internal/domains/notifications/ports"
)

var _ ports.Mailer = (*SMTPMailer)(nil)

// SMTPMailer delivers alerts through an SMTP relay using gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer wires a relay. The from address is used on every message.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers a plain-text message. The context is checked before dialing
// since gomail itself is not context-aware.
func (m *SMTPMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if m == nil || m.dialer == nil {
		return errors.New("smtp mailer not configured")
	}
	if len(to) == 0 {
		return errors.New("no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
