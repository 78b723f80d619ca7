package ports

import (
	"context"

	"github.com/azaconnect/maintenance-api/internal/domains/notifications/domain"
)

// NotifyInput carries the payload for raising a notification. When Emails is
// set the message is also delivered through the configured mailer.
type NotifyInput struct {
	Recipient string
	Kind      domain.Kind
	Subject   string
	Body      string
	Emails    []string
}

// Service exposes notification bounded context use cases to adapters.
type Service interface {
	Notify(ctx context.Context, input NotifyInput) (*domain.Notification, error)
	ListForRecipient(ctx context.Context, recipient string, unreadOnly bool) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id int64) (*domain.Notification, error)
}
