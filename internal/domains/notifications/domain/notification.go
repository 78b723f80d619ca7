package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyRecipient = errors.New("recipient is required")
	ErrEmptySubject   = errors.New("subject is required")
)

// Kind labels what triggered a notification.
type Kind string

const (
	KindOrderPlaced      Kind = "order_placed"
	KindRequestCompleted Kind = "request_completed"
	KindScheduleDue      Kind = "schedule_due"
	KindGeneral          Kind = "general"
)

// Notification is an in-app message shown to a user.
type Notification struct {
	ID        int64
	Recipient string
	Kind      Kind
	Subject   string
	Body      string
	Read      bool
	CreatedAt time.Time
}

// NewNotification builds an unread notification.
func NewNotification(recipient string, kind Kind, subject, body string) (*Notification, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return nil, ErrEmptyRecipient
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, ErrEmptySubject
	}
	if kind == "" {
		kind = KindGeneral
	}
	return &Notification{
		Recipient: recipient,
		Kind:      kind,
		Subject:   subject,
		Body:      strings.TrimSpace(body),
	}, nil
}

// MarkRead flags the notification as seen.
func (n *Notification) MarkRead() {
	n.Read = true
}
