package backend

import (
	"context"
	"sync"

	"github.com/noah-isme/event-board/internal/models"
	appErrors "github.com/noah-isme/event-board/pkg/errors"
)

// MemoryStore keeps every collection in process, guarded by an RWMutex.
type MemoryStore struct {
	mu         sync.RWMutex
	events     []models.Event
	categories []models.Category
	users      []models.User
	nextID     models.ID
}

// NewMemoryStore builds a store from seed; a nil seed starts empty.
func NewMemoryStore(seed *Seed) *MemoryStore {
	store := &MemoryStore{nextID: 1}
	if seed == nil {
		return store
	}
	for _, event := range seed.Events {
		store.events = append(store.events, cloneEvent(event))
		if event.ID >= store.nextID {
			store.nextID = event.ID + 1
		}
	}
	store.categories = append(store.categories, seed.Categories...)
	store.users = append(store.users, seed.Users...)
	return store
}

// ListEvents returns every event in insertion order.
func (s *MemoryStore) ListEvents(context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Event, 0, len(s.events))
	for _, event := range s.events {
		out = append(out, cloneEvent(event))
	}
	return out, nil
}

// GetEvent returns one event.
func (s *MemoryStore) GetEvent(_ context.Context, id models.ID) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, eventNotFound(id)
	}
	event := cloneEvent(s.events[idx])
	return &event, nil
}

// CreateEvent assigns the next id and stores event.
func (s *MemoryStore) CreateEvent(_ context.Context, event models.Event) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event = cloneEvent(event)
	event.ID = s.nextID
	s.nextID++
	s.events = append(s.events, event)
	created := cloneEvent(event)
	return &created, nil
}

// PatchEvent merges patch into the stored event.
func (s *MemoryStore) PatchEvent(_ context.Context, id models.ID, patch EventPatch) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, eventNotFound(id)
	}
	patch.Apply(&s.events[idx])
	updated := cloneEvent(s.events[idx])
	return &updated, nil
}

// DeleteEvent removes the event.
func (s *MemoryStore) DeleteEvent(_ context.Context, id models.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return eventNotFound(id)
	}
	s.events = append(s.events[:idx], s.events[idx+1:]...)
	return nil
}

// ListCategories returns every category.
func (s *MemoryStore) ListCategories(context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category{}, s.categories...), nil
}

// GetCategory returns one category.
func (s *MemoryStore) GetCategory(_ context.Context, id models.ID) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, category := range s.categories {
		if category.ID == id {
			found := category
			return &found, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "category not found")
}

// ListUsers returns every user.
func (s *MemoryStore) ListUsers(context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User{}, s.users...), nil
}

// GetUser returns one user.
func (s *MemoryStore) GetUser(_ context.Context, id models.ID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.ID == id {
			found := user
			return &found, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
}

func (s *MemoryStore) indexOf(id models.ID) int {
	for i, event := range s.events {
		if event.ID == id {
			return i
		}
	}
	return -1
}

func cloneEvent(event models.Event) models.Event {
	ids := make([]models.ID, len(event.CategoryIDs))
	copy(ids, event.CategoryIDs)
	event.CategoryIDs = ids
	return event
}

func eventNotFound(id models.ID) error {
	return appErrors.Clone(appErrors.ErrNotFound, "event "+id.String()+" not found")
}
