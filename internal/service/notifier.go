package service

import (
	"time"

	"github.com/noah-isme/event-board/internal/models"
)

// Notifier builds the user facing notifications.
type Notifier struct {
	duration time.Duration
}

// NewNotifier uses duration for every notification unless overridden.
func NewNotifier(duration time.Duration) Notifier {
	if duration <= 0 {
		duration = 3 * time.Second
	}
	return Notifier{duration: duration}
}

// Success builds a success notification.
func (n Notifier) Success(title, description string) models.Notification {
	return models.NewNotification(models.NotificationSuccess, title, description, n.duration)
}

// SuccessFor builds a success notification shown for a custom duration.
func (n Notifier) SuccessFor(title, description string, duration time.Duration) models.Notification {
	return models.NewNotification(models.NotificationSuccess, title, description, duration)
}

// Error builds the generic "Error" notification.
func (n Notifier) Error(description string) models.Notification {
	return models.NewNotification(models.NotificationError, "Error", description, n.duration)
}
