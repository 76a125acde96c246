package service

import (
	"context"
	"sync"

	"github.com/noah-isme/event-board/internal/dto"
	"github.com/noah-isme/event-board/internal/models"
	appErrors "github.com/noah-isme/event-board/pkg/errors"
)

type stubEventsAPI struct {
	mu sync.Mutex

	events     []models.Event
	categories []models.Category
	users      []models.User

	eventsErr     error
	categoriesErr error
	usersErr      error
	writeErr      error

	nextID   models.ID
	created  []dto.EventPayload
	updated  []dto.EventPayload
	deleted  []models.ID
	requests int
}

func (s *stubEventsAPI) ListEvents(context.Context) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	if s.eventsErr != nil {
		return nil, s.eventsErr
	}
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *stubEventsAPI) GetEvent(_ context.Context, id models.ID) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	if s.eventsErr != nil {
		return nil, s.eventsErr
	}
	for _, event := range s.events {
		if event.ID == id {
			found := event
			return &found, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "/events/"+id.String()+" not found")
}

func (s *stubEventsAPI) ListCategories(context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	if s.categoriesErr != nil {
		return nil, s.categoriesErr
	}
	return s.categories, nil
}

func (s *stubEventsAPI) ListUsers(context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	if s.usersErr != nil {
		return nil, s.usersErr
	}
	return s.users, nil
}

func (s *stubEventsAPI) CreateEvent(_ context.Context, payload dto.EventPayload) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	s.created = append(s.created, payload)
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	event := eventFromPayload(s.nextID, payload)
	s.events = append(s.events, event)
	return &event, nil
}

func (s *stubEventsAPI) UpdateEvent(_ context.Context, id models.ID, payload dto.EventPayload) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	s.updated = append(s.updated, payload)
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	for i, existing := range s.events {
		if existing.ID == id {
			event := eventFromPayload(id, payload)
			if payload.Location == "" {
				event.Location = existing.Location
			}
			s.events[i] = event
			return &event, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "/events/"+id.String()+" not found")
}

func (s *stubEventsAPI) DeleteEvent(_ context.Context, id models.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	s.deleted = append(s.deleted, id)
	if s.writeErr != nil {
		return s.writeErr
	}
	for i, existing := range s.events {
		if existing.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "/events/"+id.String()+" not found")
}

func eventFromPayload(id models.ID, payload dto.EventPayload) models.Event {
	start, _ := models.ParseTimestamp(payload.StartTime)
	end, _ := models.ParseTimestamp(payload.EndTime)
	return models.Event{
		ID:          id,
		Title:       payload.Title,
		Description: payload.Description,
		Image:       payload.Image,
		StartTime:   start,
		EndTime:     end,
		Location:    payload.Location,
		CreatedBy:   payload.CreatedBy,
		CategoryIDs: payload.CategoryIDs,
	}
}

func sampleEvents() []models.Event {
	return []models.Event{
		{ID: 1, Title: "Jazz Night", CreatedBy: 1, CategoryIDs: []models.ID{1}},
		{ID: 2, Title: "Morning Yoga", CreatedBy: 2, CategoryIDs: []models.ID{2}},
		{ID: 3, Title: "Jazz Brunch", CreatedBy: 1, CategoryIDs: []models.ID{2, 9}},
	}
}

func sampleCategories() []models.Category {
	return []models.Category{{ID: 1, Name: "music"}, {ID: 2, Name: "wellness"}}
}

func sampleUsers() []models.User {
	return []models.User{{ID: 1, Name: "Ada", Image: "https://example.com/ada.png"}, {ID: 2, Name: "Linus"}}
}
