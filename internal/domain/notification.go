package domain

import (
	"fmt"
	"strings"
	"time"
)

// NotificationType categorizes a notification for presentation.
type NotificationType string

const (
	NotificationInfo         NotificationType = "info"
	NotificationSuccess      NotificationType = "success"
	NotificationError        NotificationType = "error"
	NotificationAdd          NotificationType = "add"
	NotificationEdit         NotificationType = "edit"
	NotificationComplete     NotificationType = "complete"
	NotificationReopen       NotificationType = "reopen"
	NotificationDelete       NotificationType = "delete"
	NotificationNameUpdate   NotificationType = "name-update"
	NotificationLocaleChange NotificationType = "locale-change"
	NotificationThemeLight   NotificationType = "theme-light"
	NotificationThemeDark    NotificationType = "theme-dark"
	NotificationCitySaved    NotificationType = "city-saved"
)

var notificationTypes = []NotificationType{
	NotificationInfo,
	NotificationSuccess,
	NotificationError,
	NotificationAdd,
	NotificationEdit,
	NotificationComplete,
	NotificationReopen,
	NotificationDelete,
	NotificationNameUpdate,
	NotificationLocaleChange,
	NotificationThemeLight,
	NotificationThemeDark,
	NotificationCitySaved,
}

// NotificationTypes returns every known notification type.
func NotificationTypes() []NotificationType {
	out := make([]NotificationType, len(notificationTypes))
	copy(out, notificationTypes)
	return out
}

// IsValid checks if the notification type is known.
func (t NotificationType) IsValid() bool {
	for _, known := range notificationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the notification type.
func (t NotificationType) String() string {
	return string(t)
}

// ParseNotificationType parses a string into a NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	t := NotificationType(strings.ToLower(strings.TrimSpace(value)))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid notification type: %s", value)
	}
	return t, nil
}

// Notification is a transient user-facing message that expires after Duration.
type Notification struct {
	ID        int              `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Duration  time.Duration    `json:"duration"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ExpiresAt returns the instant the notification leaves the live list.
func (n Notification) ExpiresAt() time.Time {
	return n.CreatedAt.Add(n.Duration)
}
