package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/event-board/internal/dto"
	"github.com/noah-isme/event-board/internal/models"
	"github.com/noah-isme/event-board/internal/repository"
	"github.com/noah-isme/event-board/pkg/config"
	appErrors "github.com/noah-isme/event-board/pkg/errors"
)

const seedJSON = `{
  "events": [
    {"id": 1, "title": "Jazz Night", "description": "Live", "image": "https://example.com/j.png",
     "startTime": "2024-01-01T10:00", "endTime": "2024-01-01T12:00", "location": "Berlin",
     "createdBy": 1, "categoryIds": [1, 2]},
    {"id": "4", "title": "Morning Yoga", "description": "Calm", "image": "",
     "startTime": "2024-02-01T07:00:00.000Z", "endTime": "2024-02-01T08:00:00.000Z",
     "createdBy": "2", "categoryIds": ["2"]}
  ],
  "categories": [{"id": 1, "name": "music"}, {"id": 2, "name": "wellness"}],
  "users": [{"id": 1, "name": "Ada", "image": "https://example.com/ada.png"}, {"id": 2, "name": "Linus"}]
}`

func writeSeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(seedJSON), 0o600))
	return path
}

func newBackendServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	seed, err := LoadSeed(writeSeed(t))
	require.NoError(t, err)

	r := gin.New()
	NewHandler(NewMemoryStore(seed), nil).Register(r)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func newClient(server *httptest.Server) *repository.EventsAPIRepository {
	return repository.NewEventsAPIRepository(config.EventsAPIConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, nil, nil)
}

func TestLoadSeedAcceptsStringIDs(t *testing.T) {
	seed, err := LoadSeed(writeSeed(t))
	require.NoError(t, err)
	require.Len(t, seed.Events, 2)
	assert.Equal(t, models.ID(4), seed.Events[1].ID)
	assert.Equal(t, models.ID(2), seed.Events[1].CreatedBy)
	assert.Equal(t, []models.ID{2}, seed.Events[1].CategoryIDs)
}

func TestBackendServesEventsBoardContract(t *testing.T) {
	client := newClient(newBackendServer(t))
	ctx := context.Background()

	events, err := client.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "2024-01-01T10:00", events[0].StartTime.String())
	assert.True(t, events[1].StartTime.HasOffset())
	assert.Equal(t, 7, events[1].StartTime.UTC().Hour())

	payload := dto.EventForm{
		Title: "Harbour Concert", Description: "Open air", Image: "https://example.com/h.png",
		StartTime: "2024-06-01T18:00", EndTime: "2024-06-01T21:00", Location: "Hamburg",
		CreatedBy: 1, CategoryIDs: []models.ID{1},
	}.CreatePayload()
	created, err := client.CreateEvent(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, models.ID(5), created.ID)
	assert.Equal(t, "Hamburg", created.Location)

	update := dto.EventForm{
		Title: "Harbour Concert II", Description: "Open air", Image: "https://example.com/h.png",
		StartTime: "2024-06-01T18:00", EndTime: "2024-06-01T22:00", CreatedBy: 2, CategoryIDs: []models.ID{2},
	}.UpdatePayload()
	updated, err := client.UpdateEvent(ctx, created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Harbour Concert II", updated.Title)
	assert.Equal(t, "Hamburg", updated.Location)
	assert.Equal(t, models.ID(2), updated.CreatedBy)

	require.NoError(t, client.DeleteEvent(ctx, created.ID))
	_, err = client.GetEvent(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)

	err = client.DeleteEvent(ctx, 999)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	categories, err := client.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	users, err := client.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", users[0].Name)
}

func TestBackendStatusCodes(t *testing.T) {
	server := newBackendServer(t)

	resp, err := http.Post(server.URL+"/events", "application/json", strings.NewReader(`{"title":"x","categoryIds":[]}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, path := range []string{"/events/999", "/events/abc", "/categories/9", "/users/9"} {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/events/1", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEventPatchLeavesMissingFields(t *testing.T) {
	title := "New"
	event := models.Event{Title: "Old", Location: "Berlin", CategoryIDs: []models.ID{1}}
	ids := []models.ID{2, 3}

	EventPatch{Title: &title, CategoryIDs: &ids}.Apply(&event)
	assert.Equal(t, "New", event.Title)
	assert.Equal(t, "Berlin", event.Location)
	assert.Equal(t, []models.ID{2, 3}, event.CategoryIDs)

	ids[0] = 99
	assert.Equal(t, models.ID(2), event.CategoryIDs[0])
}
