package ports

import (
	"context"

	"github.com/azaconnect/maintenance-api/internal/domains/maintenance/domain"
)

// Notifier is told about maintenance milestones. Implementations must not
// block the operation: failures are logged by the caller.
type Notifier interface {
	RequestCompleted(ctx context.Context, request *domain.Request) error
	ScheduleDue(ctx context.Context, schedule *domain.Schedule) error
}

// NoopNotifier is the default when no notification channel is configured.
var NoopNotifier Notifier = noopNotifier{}

type noopNotifier struct{}

func (noopNotifier) RequestCompleted(context.Context, *domain.Request) error { return nil }
func (noopNotifier) ScheduleDue(context.Context, *domain.Schedule) error     { return nil }
