package entity

import (
	"fmt"
	"time"
)

// Notification is derived from an application whose status left Applied.
// Its ID is the application ID.
type Notification struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	Read    bool      `json:"read"`
	Date    time.Time `json:"date"`
}

func NotificationMessage(title string, status ApplicationStatus) string {
	return fmt.Sprintf("Your application for '%s' was %s.", title, status)
}

// NotificationFor returns the notification for a, or false when the
// application is still in its initial state.
func NotificationFor(a Application, title string) (Notification, bool) {
	if a.Status == StatusApplied {
		return Notification{}, false
	}
	return Notification{
		ID:      a.ID,
		Message: NotificationMessage(title, a.Status),
		Read:    a.IsRead,
		Date:    a.AppliedOn,
	}, true
}
