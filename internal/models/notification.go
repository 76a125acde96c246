package models

import "time"

// NotificationStatus mirrors the toast severities shown to the user.
type NotificationStatus string

const (
	NotificationSuccess NotificationStatus = "success"
	NotificationError   NotificationStatus = "error"
)

// Notification is a transient, dismissible message flashed on the next
// rendered page.
type Notification struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      NotificationStatus `json:"status"`
	DurationMS  int64              `json:"duration"`
	Closable    bool               `json:"isClosable"`
}

// NewNotification builds a closable notification shown for duration.
func NewNotification(status NotificationStatus, title, description string, duration time.Duration) Notification {
	return Notification{
		Title:       title,
		Description: description,
		Status:      status,
		DurationMS:  duration.Milliseconds(),
		Closable:    true,
	}
}
