package dto

import "github.com/noah-isme/event-board/internal/models"

// EventCard is a list entry with its known category names. Dangling category
// ids are left out.
type EventCard struct {
	models.Event
	CategoryNames []string `json:"categories"`
}

// EventListView is the list page snapshot handed to the renderer.
type EventListView struct {
	Events        []EventCard           `json:"events"`
	Categories    []models.Category     `json:"categories"`
	Criteria      models.FilterCriteria `json:"criteria"`
	Loaded        int                   `json:"loaded"`
	Notifications []models.Notification `json:"notifications"`
}

// EventDetailView is the detail page snapshot.
type EventDetailView struct {
	Event         models.EventDetail    `json:"event"`
	ConfirmDelete bool                  `json:"confirmDelete,omitempty"`
	Notifications []models.Notification `json:"notifications"`
}

// EventFormView backs the create and edit pages.
type EventFormView struct {
	Mode          string                `json:"mode"`
	Action        string                `json:"action"`
	EventID       models.ID             `json:"eventId,omitempty"`
	Form          EventForm             `json:"form"`
	Categories    []models.Category     `json:"categories"`
	Users         []models.User         `json:"users"`
	Notifications []models.Notification `json:"notifications"`
}

// ErrorView is rendered when a page cannot be loaded at all.
type ErrorView struct {
	Status        int                   `json:"status"`
	Code          string                `json:"code"`
	Message       string                `json:"message"`
	Notifications []models.Notification `json:"notifications,omitempty"`
}
