package dto

import (
	"strings"

	"github.com/noah-isme/event-board/internal/models"
	appErrors "github.com/noah-isme/event-board/pkg/errors"
)

// Form modes.
const (
	FormModeCreate = "create"
	FormModeEdit   = "edit"
)

// EventForm captures the create/edit form state. Start and end times are kept
// as the raw strings the form submitted so the backend stores them verbatim.
type EventForm struct {
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description" validate:"required"`
	Image       string      `json:"image" validate:"required"`
	StartTime   string      `json:"startTime" validate:"required,timestamp"`
	EndTime     string      `json:"endTime" validate:"required,timestamp"`
	Location    string      `json:"location"`
	CreatedBy   models.ID   `json:"createdBy" validate:"required"`
	CategoryIDs []models.ID `json:"categoryIds"`
}

// NewEventFormFromEvent prefills the edit form.
func NewEventFormFromEvent(e models.Event) EventForm {
	categories := make([]models.ID, len(e.CategoryIDs))
	copy(categories, e.CategoryIDs)
	return EventForm{
		Title:       e.Title,
		Description: e.Description,
		Image:       e.Image,
		StartTime:   e.StartTime.String(),
		EndTime:     e.EndTime.String(),
		Location:    e.Location,
		CreatedBy:   e.CreatedBy,
		CategoryIDs: categories,
	}
}

// HasCategory reports whether id is currently selected.
func (f EventForm) HasCategory(id models.ID) bool {
	for _, selected := range f.CategoryIDs {
		if selected == id {
			return true
		}
	}
	return false
}

// ToggleCategory adds id when absent and removes it when present. The
// selection is replaced by a new slice; the previous one is left untouched.
func (f *EventForm) ToggleCategory(id models.ID) {
	next := make([]models.ID, 0, len(f.CategoryIDs)+1)
	if f.HasCategory(id) {
		for _, selected := range f.CategoryIDs {
			if selected != id {
				next = append(next, selected)
			}
		}
	} else {
		next = append(next, f.CategoryIDs...)
		next = append(next, id)
	}
	f.CategoryIDs = next
}

// SetCreatedBy coerces the creator select's value into a numeric id. The empty
// option clears the selection.
func (f *EventForm) SetCreatedBy(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		f.CreatedBy = 0
		return nil
	}
	id, err := models.ParseID(raw)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "createdBy must be a numeric user id")
	}
	f.CreatedBy = id
	return nil
}

// SetField applies a single input change by field name.
func (f *EventForm) SetField(name, value string) error {
	switch name {
	case "title":
		f.Title = value
	case "description":
		f.Description = value
	case "image":
		f.Image = value
	case "startTime":
		f.StartTime = value
	case "endTime":
		f.EndTime = value
	case "location":
		f.Location = value
	case "createdBy":
		return f.SetCreatedBy(value)
	}
	return nil
}

// CreatePayload is the POST /events body.
func (f EventForm) CreatePayload() EventPayload {
	payload := f.basePayload()
	payload.Location = f.Location
	return payload
}

// UpdatePayload is the PATCH /events/{id} body. Location is only sent when
// the form carries one so the stored value is otherwise preserved.
func (f EventForm) UpdatePayload() EventPayload {
	payload := f.basePayload()
	if strings.TrimSpace(f.Location) != "" {
		payload.Location = f.Location
	}
	return payload
}

func (f EventForm) basePayload() EventPayload {
	categories := make([]models.ID, len(f.CategoryIDs))
	copy(categories, f.CategoryIDs)
	return EventPayload{
		Title:       f.Title,
		Description: f.Description,
		Image:       f.Image,
		StartTime:   f.StartTime,
		EndTime:     f.EndTime,
		CreatedBy:   f.CreatedBy,
		CategoryIDs: categories,
	}
}

// EventPayload is the JSON body sent to the events API.
type EventPayload struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	StartTime   string      `json:"startTime"`
	EndTime     string      `json:"endTime"`
	Location    string      `json:"location,omitempty"`
	CreatedBy   models.ID   `json:"createdBy"`
	CategoryIDs []models.ID `json:"categoryIds"`
}
