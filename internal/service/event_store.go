package service

import (
	"github.com/noah-isme/event-board/internal/dto"
	"github.com/noah-isme/event-board/internal/models"
)

// EventStore is the list page's state: the full in-memory event list, the
// categories loaded with it and the active criteria. The visible subset is
// always derived from the full list, never stored.
type EventStore struct {
	Events     []models.Event        `json:"events"`
	Categories []models.Category     `json:"categories"`
	Criteria   models.FilterCriteria `json:"criteria"`
}

// NewEventStore builds a store over freshly loaded data with no criteria set.
func NewEventStore(events []models.Event, categories []models.Category) *EventStore {
	store := &EventStore{
		Events:     make([]models.Event, len(events)),
		Categories: make([]models.Category, len(categories)),
	}
	copy(store.Events, events)
	copy(store.Categories, categories)
	return store
}

// SetSearchText updates the title search criterion.
func (s *EventStore) SetSearchText(text string) {
	s.Criteria.SearchText = text
}

// SetCategory updates the category criterion; zero selects all categories.
func (s *EventStore) SetCategory(id models.ID) {
	s.Criteria.CategoryID = id
}

// Reset clears both criteria.
func (s *EventStore) Reset() {
	s.Criteria = models.FilterCriteria{}
}

// Add appends a record returned by the events API.
func (s *EventStore) Add(event models.Event) {
	s.Events = append(s.Events, event)
}

// Has reports whether an event with id is loaded.
func (s *EventStore) Has(id models.ID) bool {
	for _, event := range s.Events {
		if event.ID == id {
			return true
		}
	}
	return false
}

// Visible returns the events matching both criteria, in load order.
func (s *EventStore) Visible() []models.Event {
	visible := make([]models.Event, 0, len(s.Events))
	for _, event := range s.Events {
		if s.Criteria.Matches(event) {
			visible = append(visible, event)
		}
	}
	return visible
}

// Cards converts the visible events into list cards.
func (s *EventStore) Cards() []dto.EventCard {
	visible := s.Visible()
	cards := make([]dto.EventCard, 0, len(visible))
	for _, event := range visible {
		cards = append(cards, dto.EventCard{
			Event:         event,
			CategoryNames: knownCategoryNames(event.CategoryIDs, s.Categories),
		})
	}
	return cards
}

// View snapshots the store for rendering.
func (s *EventStore) View(notifications []models.Notification) dto.EventListView {
	categories := make([]models.Category, len(s.Categories))
	copy(categories, s.Categories)
	return dto.EventListView{
		Events:        s.Cards(),
		Categories:    categories,
		Criteria:      s.Criteria,
		Loaded:        len(s.Events),
		Notifications: nonNilNotifications(notifications),
	}
}

// DetailState is the detail page's state. Users and categories loaded with
// the event are kept so an updated record can be resolved without a re-fetch.
type DetailState struct {
	Event      models.Event      `json:"event"`
	Users      []models.User     `json:"users"`
	Categories []models.Category `json:"categories"`
}

// Detail resolves the creator and category names of the current event.
func (d *DetailState) Detail() models.EventDetail {
	return ResolveEventDetail(d.Event, d.Users, d.Categories)
}

// Replace swaps in the record returned by the events API.
func (d *DetailState) Replace(event models.Event) {
	d.Event = event
}

// View snapshots the detail state for rendering.
func (d *DetailState) View(confirmDelete bool, notifications []models.Notification) dto.EventDetailView {
	return dto.EventDetailView{
		Event:         d.Detail(),
		ConfirmDelete: confirmDelete,
		Notifications: nonNilNotifications(notifications),
	}
}

// ResolveEventDetail looks up the creator and categories by linear scan.
// Missing references resolve to "Unknown".
func ResolveEventDetail(event models.Event, users []models.User, categories []models.Category) models.EventDetail {
	detail := models.EventDetail{Event: event, CreatedByName: models.UnknownLabel}
	for _, user := range users {
		if user.ID == event.CreatedBy {
			if user.Name != "" {
				detail.CreatedByName = user.Name
			}
			detail.CreatedByImage = user.Image
			break
		}
	}

	detail.CategoryNames = make([]string, 0, len(event.CategoryIDs))
	for _, id := range event.CategoryIDs {
		name := models.UnknownLabel
		if category, ok := findCategory(categories, id); ok && category.Name != "" {
			name = category.Name
		}
		detail.CategoryNames = append(detail.CategoryNames, name)
	}
	return detail
}

func knownCategoryNames(ids []models.ID, categories []models.Category) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if category, ok := findCategory(categories, id); ok {
			names = append(names, category.Name)
		}
	}
	return names
}

func findCategory(categories []models.Category, id models.ID) (models.Category, bool) {
	for _, category := range categories {
		if category.ID == id {
			return category, true
		}
	}
	return models.Category{}, false
}

func nonNilNotifications(notifications []models.Notification) []models.Notification {
	if notifications == nil {
		return []models.Notification{}
	}
	return notifications
}
