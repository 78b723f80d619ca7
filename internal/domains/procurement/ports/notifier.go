package ports

import (
	"context"

	"github.com/azaconnect/maintenance-api/internal/domains/procurement/domain"
)

// Notifier is told about order milestones so the purchasing team can be
// alerted. Implementations must not block order placement: failures are
// logged by the caller and never fail the operation.
type Notifier interface {
	OrderPlaced(ctx context.Context, order *domain.Order) error
}

// NoopNotifier is the default when no notification channel is configured.
var NoopNotifier Notifier = noopNotifier{}

type noopNotifier struct{}

func (noopNotifier) OrderPlaced(context.Context, *domain.Order) error { return nil }
