package ports

import (
	"context"
	"errors"

	"github.com/azaconnect/maintenance-api/internal/domains/notifications/domain"
)

var ErrNotFound = errors.New("notification not found")

type Repository interface {
	Save(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, recipient string, unreadOnly bool) ([]*domain.Notification, error)
}
