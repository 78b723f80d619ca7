package maintenanceserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	notificationdomain "github.com/azaconnect/maintenance-api/internal/domains/notifications/domain"
	notificationports "github.com/azaconnect/maintenance-api/internal/domains/notifications/ports"
	apierrors "github.com/azaconnect/maintenance-api/internal/shared/errors"
)

// NotificationAPI wires HTTP transport with the notifications service.
type NotificationAPI struct {
	service notificationports.Service
}

// NewNotificationAPI creates a NotificationAPI backed by the provided service.
func NewNotificationAPI(service notificationports.Service) NotificationAPI {
	return NotificationAPI{service: service}
}

// Notification is the HTTP representation of an in-app message.
type Notification struct {
	ID        int64     `json:"id"`
	Recipient string    `json:"recipient"`
	Kind      string    `json:"kind"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

func fromDomainNotification(n *notificationdomain.Notification) Notification {
	return Notification{
		ID:        n.ID,
		Recipient: n.Recipient,
		Kind:      string(n.Kind),
		Subject:   n.Subject,
		Body:      n.Body,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// Get /v1/notifications/:recipient
// List notifications for a recipient, optionally unread only
func (api *NotificationAPI) ListNotifications(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	notifications, err := api.service.ListForRecipient(c.Request.Context(), c.Param("recipient"), unreadOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp := make([]Notification, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, fromDomainNotification(n))
	}
	c.JSON(http.StatusOK, resp)
}

// Post /v1/notifications/read/:notificationId
// Mark a notification as seen
func (api *NotificationAPI) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "notificationId")
	if !ok {
		return
	}
	notification, err := api.service.MarkRead(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainNotification(notification))
}

// notificationProblems classifies notifications service errors.
func notificationProblems(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, notificationports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, notificationdomain.ErrEmptyRecipient),
		errors.Is(err, notificationdomain.ErrEmptySubject):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
