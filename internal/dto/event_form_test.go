package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/event-board/internal/models"
	appErrors "github.com/noah-isme/event-board/pkg/errors"
)

func TestToggleCategoryTwiceIsIdentity(t *testing.T) {
	form := EventForm{CategoryIDs: []models.ID{1, 2}}
	original := form.CategoryIDs

	form.ToggleCategory(5)
	assert.Equal(t, []models.ID{1, 2, 5}, form.CategoryIDs)
	form.ToggleCategory(5)

	assert.Equal(t, []models.ID{1, 2}, form.CategoryIDs)
	assert.Equal(t, []models.ID{1, 2}, original)
}

func TestToggleCategoryDoesNotMutatePreviousSelection(t *testing.T) {
	form := EventForm{CategoryIDs: []models.ID{1, 2, 3}}
	before := form.CategoryIDs

	form.ToggleCategory(2)

	assert.Equal(t, []models.ID{1, 3}, form.CategoryIDs)
	assert.Equal(t, []models.ID{1, 2, 3}, before)
}

func TestSetFieldCoercesCreatedBy(t *testing.T) {
	var form EventForm
	require.NoError(t, form.SetField("createdBy", "3"))
	require.NoError(t, form.SetField("title", "Launch Party"))
	require.NoError(t, form.SetField("unknown", "ignored"))
	assert.Equal(t, models.ID(3), form.CreatedBy)
	assert.Equal(t, "Launch Party", form.Title)

	require.NoError(t, form.SetCreatedBy(""))
	assert.Equal(t, models.ID(0), form.CreatedBy)

	err := form.SetField("createdBy", "abc")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPayloads(t *testing.T) {
	form := EventForm{
		Title:       "Launch Party",
		Description: "Kickoff",
		Image:       "http://x/img.png",
		StartTime:   "2024-01-01T10:00",
		EndTime:     "2024-01-01T12:00",
		CreatedBy:   3,
	}

	created, err := json.Marshal(form.CreatePayload())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "Launch Party",
		"description": "Kickoff",
		"image": "http://x/img.png",
		"startTime": "2024-01-01T10:00",
		"endTime": "2024-01-01T12:00",
		"createdBy": 3,
		"categoryIds": []
	}`, string(created))

	form.Location = "Harbour"
	updated := form.UpdatePayload()
	assert.Equal(t, "Harbour", updated.Location)
	form.Location = "  "
	assert.Empty(t, form.UpdatePayload().Location)
}

func TestNewEventFormFromEvent(t *testing.T) {
	start, err := models.ParseTimestamp("2024-01-01T10:00")
	require.NoError(t, err)
	event := models.Event{ID: 9, Title: "Meetup", StartTime: start, CreatedBy: 2, CategoryIDs: []models.ID{4}}

	form := NewEventFormFromEvent(event)
	form.ToggleCategory(4)

	assert.Equal(t, "2024-01-01T10:00", form.StartTime)
	assert.Equal(t, models.ID(2), form.CreatedBy)
	assert.Empty(t, form.CategoryIDs)
	assert.Equal(t, []models.ID{4}, event.CategoryIDs)
}
