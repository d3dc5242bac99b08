package primary

import (
	corenotification "github.com/example/missionctl/internal/core/notification"
)

// Notification is a derived alert at the port boundary.
type Notification = corenotification.Notification

// NotificationService defines the primary port for the in-memory alert list.
type NotificationService interface {
	// List returns the notifications, most recent first.
	List() []Notification

	// UnreadCount returns the number of unread notifications.
	UnreadCount() int

	// MarkAsRead marks one notification read. Unknown IDs report false.
	MarkAsRead(notificationID string) bool

	// MarkAllAsRead marks every notification read.
	MarkAllAsRead()

	// ClearNotifications empties the list.
	ClearNotifications()

	// AddNotification prepends a directly injected notification.
	AddNotification(req AddNotificationRequest) Notification

	// Evaluate runs the derivation rules against the latest mission snapshot
	// and returns the notifications it added.
	Evaluate() []Notification
}

// AddNotificationRequest contains parameters for injecting a notification.
type AddNotificationRequest struct {
	Type    corenotification.Type
	Title   string
	Message string
}
