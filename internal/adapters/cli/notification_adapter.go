package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/example/missionctl/internal/ports/primary"
	"github.com/example/missionctl/pkg/errors"
)

// NotificationAdapter translates notification commands to NotificationService calls.
type NotificationAdapter struct {
	service primary.NotificationService
	out     io.Writer
}

// NewNotificationAdapter creates a new NotificationAdapter with the given service.
func NewNotificationAdapter(service primary.NotificationService, out io.Writer) *NotificationAdapter {
	return &NotificationAdapter{
		service: service,
		out:     out,
	}
}

// List shows every notification, most recent first, with an unread marker.
func (a *NotificationAdapter) List() {
	list := a.service.List()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No notifications")
		return
	}

	fmt.Fprintf(a.out, "\n%d notifications, %d unread\n", len(list), a.service.UnreadCount())
	fmt.Fprintln(a.out, rule)
	for _, n := range list {
		marker := " "
		if !n.Read {
			marker = "●"
		}
		typ := pad(notificationColor(n.Type), strings.ToUpper(string(n.Type)), 7)
		fmt.Fprintf(a.out, "%s %s %s %s\n", marker, typ, formatTime(n.Timestamp), n.Title)
		fmt.Fprintf(a.out, "          %s\n", n.Message)
		fmt.Fprintf(a.out, "          id: %s\n", n.ID)
	}
	fmt.Fprintln(a.out)
}

// Read marks one notification read.
func (a *NotificationAdapter) Read(notificationID string) error {
	if !a.service.MarkAsRead(notificationID) {
		return fmt.Errorf("notification %s: %w", notificationID, errors.ErrNotFound)
	}
	fmt.Fprintf(a.out, "✓ Notification %s marked as read\n", notificationID)
	return nil
}

// ReadAll marks every notification read.
func (a *NotificationAdapter) ReadAll() {
	a.service.MarkAllAsRead()
	fmt.Fprintln(a.out, "✓ All notifications marked as read")
}

// Clear empties the list.
func (a *NotificationAdapter) Clear() {
	a.service.ClearNotifications()
	fmt.Fprintln(a.out, "✓ Notifications cleared")
}
