// Package backend implements the events REST API the board consumes, with
// json-server compatible semantics.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/noah-isme/event-board/internal/models"
)

// Store persists events and serves the read only categories and users.
// Lookups of unknown ids return appErrors.ErrNotFound.
type Store interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id models.ID) (*models.Event, error)
	CreateEvent(ctx context.Context, event models.Event) (*models.Event, error)
	PatchEvent(ctx context.Context, id models.ID, patch EventPatch) (*models.Event, error)
	DeleteEvent(ctx context.Context, id models.ID) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id models.ID) (*models.Category, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id models.ID) (*models.User, error)
}

// EventPatch carries the fields supplied by a PATCH body. Nil fields are
// left unchanged.
type EventPatch struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Image       *string           `json:"image"`
	StartTime   *models.Timestamp `json:"startTime"`
	EndTime     *models.Timestamp `json:"endTime"`
	Location    *string           `json:"location"`
	CreatedBy   *models.ID        `json:"createdBy"`
	CategoryIDs *[]models.ID      `json:"categoryIds"`
}

// Apply merges the supplied fields into event.
func (p EventPatch) Apply(event *models.Event) {
	if p.Title != nil {
		event.Title = *p.Title
	}
	if p.Description != nil {
		event.Description = *p.Description
	}
	if p.Image != nil {
		event.Image = *p.Image
	}
	if p.StartTime != nil {
		event.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		event.EndTime = *p.EndTime
	}
	if p.Location != nil {
		event.Location = *p.Location
	}
	if p.CreatedBy != nil {
		event.CreatedBy = *p.CreatedBy
	}
	if p.CategoryIDs != nil {
		ids := make([]models.ID, len(*p.CategoryIDs))
		copy(ids, *p.CategoryIDs)
		event.CategoryIDs = ids
	}
}

// Seed is the db.json document: one array per collection.
type Seed struct {
	Events     []models.Event    `json:"events"`
	Categories []models.Category `json:"categories"`
	Users      []models.User     `json:"users"`
}

// LoadSeed reads a db.json file.
func LoadSeed(path string) (*Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", path, err)
	}
	return &seed, nil
}
