package alerts

import (
	"context"
	"fmt"
	"strings"

	maintenancedomain "github.com/azaconnect/maintenance-api/internal/domains/maintenance/domain"
	maintenanceports "github.com/azaconnect/maintenance-api/internal/domains/maintenance/ports"
	notificationports "github.com/azaconnect/maintenance-api/internal/domains/notifications/ports"
	procurementdomain "github.com/azaconnect/maintenance-api/internal/domains/procurement/domain"
	procurementports "github.com/azaconnect/maintenance-api/internal/domains/procurement/ports"

	"github.com/azaconnect/maintenance-api/internal/domains/notifications/domain"
)

var (
	_ procurementports.Notifier = (*OrderAlerts)(nil)
	_ maintenanceports.Notifier = (*MaintenanceAlerts)(nil)
)

// OrderAlerts turns procurement milestones into in-app notifications and
// emails for the purchasing team.
type OrderAlerts struct {
	notifications notificationports.Service
	recipient     string
	emails        []string
}

// NewOrderAlerts wires the purchasing team channel. recipient is the in-app
// inbox the alerts land in; emails are the addresses copied on each one.
func NewOrderAlerts(notifications notificationports.Service, recipient string, emails []string) *OrderAlerts {
	return &OrderAlerts{notifications: notifications, recipient: recipient, emails: emails}
}

func (a *OrderAlerts) OrderPlaced(ctx context.Context, order *procurementdomain.Order) error {
	if a == nil || a.notifications == nil || order == nil {
		return nil
	}
	lines := make([]string, 0, len(order.Items)+1)
	lines = append(lines, fmt.Sprintf("Order %s was placed by %s (%s).", order.Number, order.RequestedBy, order.Sector))
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("- %s x%s %s", item.Code, item.OrderedQuantity.String(), item.Unit))
	}
	_, err := a.notifications.Notify(ctx, notificationports.NotifyInput{
		Recipient: a.recipient,
		Kind:      domain.KindOrderPlaced,
		Subject:   fmt.Sprintf("New accessory order %s", order.Number),
		Body:      strings.Join(lines, "\n"),
		Emails:    a.emails,
	})
	return err
}

// MaintenanceAlerts turns maintenance milestones into in-app notifications.
type MaintenanceAlerts struct {
	notifications notificationports.Service
	recipient     string
	emails        []string
}

// NewMaintenanceAlerts wires the maintenance team channel.
func NewMaintenanceAlerts(notifications notificationports.Service, recipient string, emails []string) *MaintenanceAlerts {
	return &MaintenanceAlerts{notifications: notifications, recipient: recipient, emails: emails}
}

func (a *MaintenanceAlerts) RequestCompleted(ctx context.Context, request *maintenancedomain.Request) error {
	if a == nil || a.notifications == nil || request == nil {
		return nil
	}
	recipient := request.RequestedBy
	if recipient == "" {
		recipient = a.recipient
	}
	_, err := a.notifications.Notify(ctx, notificationports.NotifyInput{
		Recipient: recipient,
		Kind:      domain.KindRequestCompleted,
		Subject:   fmt.Sprintf("Maintenance request #%d completed", request.ID),
		Body:      fmt.Sprintf("%s\nResolution: %s", request.Title, request.Resolution),
		Emails:    a.emails,
	})
	return err
}

func (a *MaintenanceAlerts) ScheduleDue(ctx context.Context, schedule *maintenancedomain.Schedule) error {
	if a == nil || a.notifications == nil || schedule == nil {
		return nil
	}
	_, err := a.notifications.Notify(ctx, notificationports.NotifyInput{
		Recipient: a.recipient,
		Kind:      domain.KindScheduleDue,
		Subject:   fmt.Sprintf("Preventive maintenance due: %s", schedule.Title),
		Body:      fmt.Sprintf("Asset #%d is due for %s since %s.", schedule.AssetID, schedule.Title, schedule.NextDueAt.Format("2006-01-02")),
		Emails:    a.emails,
	})
	return err
}
